// Package distance computes the cosine distance between feature vectors.
//
// # Formula
//
//	d(a, b) = 1 - (a·b) / (‖a‖ ‖b‖)
//
// Two numeric policies apply:
//
//   - If either vector has zero L2 norm (including empty vectors) the
//     distance is 0.
//   - A negative result, which only rounding can produce, is clamped to 0.
//
// There is no upper clamp: vectors pointing in opposite directions have
// distance 2.
//
// # Usage
//
//	d := distance.Cosine(a, b)
//
// Or bound to two feature collections:
//
//	cd := distance.NewCosineDistance()
//	if err := cd.Setup(lhs, rhs); err != nil {
//	    return err
//	}
//	d := cd.Compute(i, j)
//
// # Contract violations
//
// Vectors of different length and computing on an unbound CosineDistance are
// programming errors. They panic instead of returning an error.
package distance
