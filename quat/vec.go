package quat

import "github.com/golang/geo/r3"

// A field of quaternions kept as four parallel component slices, so that
// operations over many samples stay contiguous per component.
type Vec struct {
	W []float64
	X []float64
	Y []float64
	Z []float64
}

// Create a field of n zero quaternions.
func NewVec(n int) Vec {
	return Vec{
		W: make([]float64, n),
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
}

// Create a field of n copies of q.
func Repeat(q Quat, n int) Vec {
	v := NewVec(n)
	for i := 0; i < n; i++ {
		v.Set(i, q)
	}
	return v
}

func (v Vec) Len() int {
	return len(v.W)
}

func (v Vec) At(i int) Quat {
	return Quat{W: v.W[i], X: v.X[i], Y: v.Y[i], Z: v.Z[i]}
}

func (v Vec) Set(i int, q Quat) {
	v.W[i], v.X[i], v.Y[i], v.Z[i] = q.W, q.X, q.Y, q.Z
}

// Conjugate of every element. The receiver is left untouched.
func (v Vec) Conj() Vec {
	out := NewVec(v.Len())
	copy(out.W, v.W)
	for i := range v.W {
		out.X[i] = -v.X[i]
		out.Y[i] = -v.Y[i]
		out.Z[i] = -v.Z[i]
	}
	return out
}

// Element-wise product v[i]*r[i].
func (v Vec) Mul(r Vec) Vec {
	mustMatch(v, r)
	out := NewVec(v.Len())
	for i := range v.W {
		out.Set(i, v.At(i).Mul(r.At(i)))
	}
	return out
}

// Product of every element with q on the right, v[i]*q.
func (v Vec) MulQuat(q Quat) Vec {
	out := NewVec(v.Len())
	for i := range v.W {
		out.Set(i, v.At(i).Mul(q))
	}
	return out
}

// Product of q with every element of v on the left, q*v[i].
func (q Quat) MulVec(v Vec) Vec {
	out := NewVec(v.Len())
	for i := range v.W {
		out.Set(i, q.Mul(v.At(i)))
	}
	return out
}

// Replaces every element v[i] with v[i]*q.
func (v *Vec) MulAssign(q Quat) {
	for i := range v.W {
		v.Set(i, v.At(i).Mul(q))
	}
}

// Replaces every element v[i] with v[i]*r[i].
func (v *Vec) MulAssignVec(r Vec) {
	mustMatch(*v, r)
	for i := range v.W {
		v.Set(i, v.At(i).Mul(r.At(i)))
	}
}

// Rotate the i-th vector by the i-th quaternion of the field.
func (v Vec) Rotate(points []r3.Vector) []r3.Vector {
	if len(points) != v.Len() {
		panic("quat: rotation field and point count differ")
	}
	out := make([]r3.Vector, len(points))
	for i, p := range points {
		out[i] = v.At(i).Rotate(p)
	}
	return out
}

func mustMatch(a Vec, b Vec) {
	if a.Len() != b.Len() {
		panic("quat: quaternion field lengths differ")
	}
}
