package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float64()*span
	}
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// UniformRangeVectors generates random vectors with values in range [-1, 1).
func (r *RNG) UniformRangeVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()*2 - 1
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVector generates a single L2-normalized random vector.
// Uses a Gaussian distribution so directions are uniform on the sphere.
func (r *RNG) UnitVector(dimensions int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vec := make([]float64, dimensions)
	var norm float64
	for j := range vec {
		v := r.rand.NormFloat64()
		vec[j] = v
		norm += v * v
	}

	if norm == 0 {
		norm = 1
	}

	inv := 1 / math.Sqrt(norm)
	for j := range vec {
		vec[j] *= inv
	}
	return vec
}

// Negate returns the elementwise negation of v.
func Negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

// Scale returns v multiplied by s.
func Scale(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * s
	}
	return out
}
