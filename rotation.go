package orrery

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PQW2Ecliptic converts a vector from the perifocal frame to the heliocentric ecliptic frame.
func PQW2Ecliptic(i, ω, Ω float64, vI []float64) []float64 {
	var nodeM, mulM mat.Dense
	nodeM.Mul(R3(-Ω), R1(-i))
	mulM.Mul(&nodeM, R3(-ω))
	return MxV33(&mulM, vI)
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) (o []float64) {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
