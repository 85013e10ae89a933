package orient

import (
	"github.com/golang/geo/r3"
	"golang.org/x/image/math/f64"
	gonumquat "gonum.org/v1/gonum/num/quat"
)

// Conversions to and from the vector and quaternion types of other math packages, so rotations can be handed
// back and forth without copying components by hand.

// QuaternionFromNumber converts a gonum quaternion (Real being the scalar part) to a Quaternion.
func QuaternionFromNumber(n gonumquat.Number) Quaternion {
	return Quaternion{X: n.Imag, Y: n.Jmag, Z: n.Kmag, W: n.Real}
}

// Number returns the Quaternion as a gonum quaternion.
func (quat Quaternion) Number() gonumquat.Number {
	return gonumquat.Number{Real: quat.W, Imag: quat.X, Jmag: quat.Y, Kmag: quat.Z}
}

// QuaternionFromVec4 converts a 4-component array laid out as (x, y, z, w), like glTF stores rotations, to a Quaternion.
func QuaternionFromVec4(v f64.Vec4) Quaternion {
	return Quaternion{v[0], v[1], v[2], v[3]}
}

// Vec4 returns the Quaternion's components as an (x, y, z, w) array.
func (quat Quaternion) Vec4() f64.Vec4 {
	return f64.Vec4{quat.X, quat.Y, quat.Z, quat.W}
}

// VectorFromVec3 converts a 3-component array to a Vector.
func VectorFromVec3(v f64.Vec3) Vector {
	return Vector{v[0], v[1], v[2]}
}

// Vec3 returns the Vector's components as an array.
func (vec Vector) Vec3() f64.Vec3 {
	return f64.Vec3{vec.X, vec.Y, vec.Z}
}

// VectorFromR3 converts an r3.Vector to a Vector.
func VectorFromR3(v r3.Vector) Vector {
	return Vector{v.X, v.Y, v.Z}
}

// R3 returns the Vector as an r3.Vector.
func (vec Vector) R3() r3.Vector {
	return r3.Vector{X: vec.X, Y: vec.Y, Z: vec.Z}
}

// RotateR3 rotates an r3.Vector by the given Quaternion, in the same way RotateVector() does.
func RotateR3(q Quaternion, v r3.Vector) r3.Vector {
	return RotateVector(q, VectorFromR3(v)).R3()
}
