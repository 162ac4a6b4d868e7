package seminorm

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ProjectL1Ball writes the Euclidean projection of x onto
// {z : ‖z‖₁ ≤ radius} into dst (nil allocates; dst may alias x).
// Simplex-type algorithm: sort |x| once, find the largest support whose
// uniform shrinkage lands on the ball, soft-threshold at that level.
// O(n·log n) time, O(n) extra memory. A non-positive radius projects
// onto the origin.
func ProjectL1Ball(dst, x []float64, radius float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if radius <= 0 {
		for i := range dst {
			dst[i] = 0
		}

		return dst
	}
	if floats.Norm(x, 1) <= radius {
		copy(dst, x)

		return dst
	}

	abs := make([]float64, len(x))
	for i, v := range x {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)

	// Walk magnitudes in decreasing order; theta is the shrinkage level
	// at the last support size still consistent with its own cut.
	var (
		cum   float64
		theta float64
	)
	n := len(abs)
	for j := 1; j <= n; j++ {
		u := abs[n-j]
		cum += u
		cut := (cum - radius) / float64(j)
		if u <= cut {
			break
		}
		theta = cut
	}
	for i, v := range x {
		dst[i] = softThreshold(v, theta)
	}

	return dst
}

// ProjectL2Ball writes the projection of x onto {z : ‖z‖₂ ≤ radius}:
// radial scaling when outside, identity inside. dst may alias x.
func ProjectL2Ball(dst, x []float64, radius float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if radius <= 0 {
		for i := range dst {
			dst[i] = 0
		}

		return dst
	}
	nrm := floats.Norm(x, 2)
	if nrm <= radius {
		copy(dst, x)

		return dst
	}
	c := radius / nrm
	for i, v := range x {
		dst[i] = c * v
	}

	return dst
}

// ProjectBox writes the projection of x onto {z : ‖z‖∞ ≤ radius}, the
// coordinatewise clamp to [−radius, radius]. dst may alias x.
func ProjectBox(dst, x []float64, radius float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if radius < 0 {
		radius = 0
	}
	for i, v := range x {
		switch {
		case v > radius:
			dst[i] = radius
		case v < -radius:
			dst[i] = -radius
		default:
			dst[i] = v
		}
	}

	return dst
}

// softThreshold is the scalar prox of t·|·|: sign(v)·max(|v|−t, 0).
func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}
