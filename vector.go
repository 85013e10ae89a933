package orient

import (
	"fmt"
	"math"
)

// VecX returns a unit vector pointing along +X on the right-handed coordinate system (right).
func VecX() Vector { return NewVector(1, 0, 0) }

// VecY returns a unit vector pointing along +Y on the right-handed coordinate system (upwards).
func VecY() Vector { return NewVector(0, 1, 0) }

// VecZ returns a unit vector pointing along +Z on the right-handed coordinate system (backwards, towards you).
func VecZ() Vector { return NewVector(0, 0, 1) }

// Vector represents a 3D Vector, the companion type Quaternions rotate and build axis-angle rotations from.
// Any Vector functions that would modify the calling Vector return modified copies instead, meaning you can
// do method-chaining easily and a Vector passed into a rotation is never altered by it.
type Vector struct {
	X float64 // The X (1st) component of the Vector
	Y float64 // The Y (2nd) component of the Vector
	Z float64 // The Z (3rd) component of the Vector
}

// NewVector creates a new Vector with the specified x, y, and z components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// NewVectorZero creates a new "zero-ed out" Vector.
func NewVectorZero() Vector {
	return Vector{}
}

// Add returns a copy of the calling vector, added together with the other Vector provided.
func (vec Vector) Add(other Vector) Vector {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector, with the other Vector subtracted from it.
func (vec Vector) Sub(other Vector) Vector {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale returns a copy of the Vector with each component multiplied by the scalar provided.
func (vec Vector) Scale(scalar float64) Vector {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Dot returns the dot product of the calling Vector and the other Vector provided.
func (vec Vector) Dot(other Vector) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns a new Vector, indicating the cross product of the calling Vector and the provided Other Vector.
func (vec Vector) Cross(other Vector) Vector {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Invert returns a copy of the Vector pointing the opposite way.
func (vec Vector) Invert() Vector {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Magnitude returns the length of the Vector.
func (vec Vector) Magnitude() float64 {
	return math.Sqrt(vec.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the Vector; this is faster than Magnitude() as it avoids using math.Sqrt().
func (vec Vector) MagnitudeSquared() float64 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Distance returns the distance between the calling Vector and the other Vector.
func (vec Vector) Distance(other Vector) float64 {
	return vec.Sub(other).Magnitude()
}

// Unit returns a copy of the Vector, normalized (set to be of unit length).
// A Vector shorter than Epsilon is returned unmodified.
func (vec Vector) Unit() Vector {
	l := vec.Magnitude()
	if l < Epsilon {
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// IsZero returns if the Vector's length is below Epsilon.
func (vec Vector) IsZero() bool {
	return vec.MagnitudeSquared() < Epsilon*Epsilon
}

func (vec Vector) String() string {
	return fmt.Sprintf("{%.2f, %.2f, %.2f}", vec.X, vec.Y, vec.Z)
}
