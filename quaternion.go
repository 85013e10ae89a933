package orient

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// SlerpLinearThreshold is how close (1 - cos(angle)) between two quaternions has to get before Slerp()
// switches from spherical to plain linear blending, to avoid dividing by a vanishing sine.
const SlerpLinearThreshold = 1e-6

// Quaternion represents a rotation in 3D space. X, Y, and Z are the imaginary (vector) part, while W is the real (scalar) part.
// Quaternions used as rotations should be of unit length; this isn't enforced, so use Normalize() or Normalized()
// when the value might have drifted (for example, after many multiplications).
// Quaternions are values; copying one is all it takes to clone it.
type Quaternion struct {
	X, Y, Z, W float64
}

// NewQuaternion creates a new Quaternion out of the raw components given. The result isn't normalized.
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionIdentity returns the identity Quaternion (0, 0, 0, 1), which represents no rotation at all.
// Note that the zero value of a Quaternion is not the identity.
func NewQuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternionFromAxisAngle creates a new unit Quaternion representing a right-handed rotation of angle radians
// around the given axis. The axis doesn't have to be of unit length; if it's shorter than Epsilon, there's no axis
// to rotate around and the identity Quaternion is returned.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {

	if axis.IsZero() {
		return NewQuaternionIdentity()
	}

	axis = axis.Unit()

	sin, cos := math.Sincos(angle / 2)

	quat := Quaternion{
		X: axis.X * sin,
		Y: axis.Y * sin,
		Z: axis.Z * sin,
		W: cos,
	}

	// The axis is unit length, so the magnitude is 1 (give or take rounding) and this can't fail.
	quat.normalize(quat.Magnitude())

	return quat

}

// Clone returns a copy of the Quaternion.
func (quat Quaternion) Clone() Quaternion {
	return quat
}

// Dot returns the 4-component dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// MagnitudeSquared returns the squared length of the Quaternion.
func (quat Quaternion) MagnitudeSquared() float64 {
	return quat.Dot(quat)
}

// Magnitude returns the length of the Quaternion.
func (quat Quaternion) Magnitude() float64 {
	return math.Sqrt(quat.MagnitudeSquared())
}

// Normalize scales the Quaternion in place so that it's of unit length.
// If the Quaternion's magnitude is below Epsilon, it's left as-is and an error wrapping ErrDegenerateQuaternion is returned.
func (quat *Quaternion) Normalize() error {
	mag := quat.Magnitude()
	if mag < Epsilon || math.IsNaN(mag) {
		return errors.Wrapf(ErrDegenerateQuaternion, "can't normalize %s (magnitude %g)", quat, mag)
	}
	quat.normalize(mag)
	return nil
}

func (quat *Quaternion) normalize(mag float64) {
	inv := 1 / mag
	quat.X *= inv
	quat.Y *= inv
	quat.Z *= inv
	quat.W *= inv
}

// Normalized returns a unit-length copy of the Quaternion, leaving the original untouched. See Normalize().
func (quat Quaternion) Normalized() (Quaternion, error) {
	if err := quat.Normalize(); err != nil {
		return quat, err
	}
	return quat, nil
}

// Negated returns the Quaternion with all four components negated. A Quaternion and its negation represent the same rotation.
func (quat Quaternion) Negated() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, -quat.W}
}

// Conjugate returns the Quaternion with its imaginary part negated; for a unit Quaternion, this is the inverse rotation.
func (quat Quaternion) Conjugate() Quaternion {
	return Quaternion{-quat.X, -quat.Y, -quat.Z, quat.W}
}

// Mult returns the Hamilton product of the calling Quaternion and the other one. See Multiply().
func (quat Quaternion) Mult(other Quaternion) Quaternion {
	return Multiply(quat, other)
}

// Multiply returns the Hamilton product a * b, composing the two rotations: rotating by the result
// is the same as rotating by b first, and then by a. The product is not commutative, and it's not
// normalized; if you chain a lot of multiplications, renormalize now and then to counter drift.
func Multiply(a, b Quaternion) Quaternion {
	return Quaternion{
		X: a.X*b.W + a.W*b.X + a.Y*b.Z - a.Z*b.Y,
		Y: a.Y*b.W + a.W*b.Y + a.Z*b.X - a.X*b.Z,
		Z: a.Z*b.W + a.W*b.Z + a.X*b.Y - a.Y*b.X,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// Slerp returns the spherical interpolation between the calling Quaternion and the other one. See Slerp().
func (quat Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	return Slerp(quat, other, t)
}

// Slerp spherically interpolates from a to b by t, following the shorter arc between them. t isn't clamped;
// values outside of 0 to 1 extrapolate. Both Quaternions should be normalized, as neither the inputs nor the
// result are normalized or checked here.
// If the dot product of a and b is negative, b is negated so the interpolation doesn't go the long way around;
// this means that in that case, a t of 1 returns -b, which is the same rotation as b.
func Slerp(a, b Quaternion, t float64) Quaternion {

	cosom := a.Dot(b)

	if cosom < 0 {
		cosom = -cosom
		b = b.Negated()
	}

	var scale0, scale1 float64

	if 1-cosom > SlerpLinearThreshold {
		omega := math.Acos(cosom)
		sinom := math.Sin(omega)
		scale0 = math.Sin(omega*(1-t)) / sinom
		scale1 = math.Sin(omega*t) / sinom
	} else {
		// a and b are very close, so the sine above would be too; a straight linear blend is good enough.
		scale0 = 1 - t
		scale1 = t
	}

	return Quaternion{
		X: scale0*a.X + scale1*b.X,
		Y: scale0*a.Y + scale1*b.Y,
		Z: scale0*a.Z + scale1*b.Z,
		W: scale0*a.W + scale1*b.W,
	}

}

// RotateVector returns the given Vector rotated by the calling Quaternion. See RotateVector().
func (quat Quaternion) RotateVector(vec Vector) Vector {
	return RotateVector(quat, vec)
}

// RotateVector rotates vec by the rotation quat represents, returning the rotated copy.
// This is the expanded form of quat * vec * conjugate(quat); a non-unit Quaternion also scales the Vector
// by its squared magnitude.
func RotateVector(quat Quaternion, vec Vector) Vector {

	u := Vector{quat.X, quat.Y, quat.Z}
	s := quat.W

	return u.Scale(2 * u.Dot(vec)).
		Add(vec.Scale(s*s - u.Dot(u))).
		Add(u.Cross(vec).Scale(2 * s))

}

// AlmostEqual returns if all four components of the two Quaternions are within tolerance of each other.
func (quat Quaternion) AlmostEqual(other Quaternion, tolerance float64) bool {
	return math.Abs(quat.X-other.X) <= tolerance &&
		math.Abs(quat.Y-other.Y) <= tolerance &&
		math.Abs(quat.Z-other.Z) <= tolerance &&
		math.Abs(quat.W-other.W) <= tolerance
}

// SameRotation returns if the two Quaternions represent the same rotation within tolerance, treating q and -q as equal.
func (quat Quaternion) SameRotation(other Quaternion, tolerance float64) bool {
	return quat.AlmostEqual(other, tolerance) || quat.AlmostEqual(other.Negated(), tolerance)
}

// IsIdentity returns if the Quaternion is the identity rotation (either (0, 0, 0, 1) or (0, 0, 0, -1)) within Epsilon.
func (quat Quaternion) IsIdentity() bool {
	return quat.SameRotation(NewQuaternionIdentity(), Epsilon)
}

func (quat Quaternion) String() string {
	return fmt.Sprintf("{%.4f, %.4f, %.4f, %.4f}", quat.X, quat.Y, quat.Z, quat.W)
}
