// Package quat implements the quaternion algebra used to rotate points on the
// celestial sphere, for single quaternions and for fields of quaternions stored
// component-wise.
package quat

import (
	"math"

	"github.com/golang/geo/r3"
)

// A quaternion w + xi + yj + zk.
type Quat struct {
	W float64
	X float64
	Y float64
	Z float64
}

// The multiplicative identity.
var Identity = Quat{W: 1}

// Create the unit quaternion rotating by angle (radians, right-handed) about
// the given axis. The axis does not need to be normalized.
func FromAxisAngle(axis r3.Vector, angle float64) Quat {
	n := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: s * n.X, Y: s * n.Y, Z: s * n.Z}
}

func (q Quat) Conj() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Hamilton product q*r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Replaces q with q*r. Every component is computed from the original q.
func (q *Quat) MulAssign(r Quat) {
	*q = q.Mul(r)
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Rotate the vector v by the unit quaternion q, computing q*v*conj(q).
func (q Quat) Rotate(v r3.Vector) r3.Vector {
	p := q.Mul(Quat{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conj())
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}
