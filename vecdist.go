package vecdist

import (
	"context"
	"fmt"

	"github.com/hupe1980/vecdist/distance"
	"github.com/hupe1980/vecdist/features"
)

// NewCosine returns a CosineDistance bound to lhs and rhs.
func NewCosine(lhs, rhs features.Provider, optFns ...Option) (*distance.CosineDistance, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	cd := distance.NewCosineDistance()
	logger := o.logger.WithDistance(cd.Name())

	err := cd.Setup(lhs, rhs)
	logger.LogSetup(context.Background(), cd.NumLHS(), cd.NumRHS(), err)
	if err != nil {
		return nil, fmt.Errorf("vecdist: %w", err)
	}

	logger.WithDimension(lhs.Dimension()).Info("cosine distance ready")

	return cd, nil
}
