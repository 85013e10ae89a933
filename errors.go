package orient

import "github.com/pkg/errors"

// Epsilon is the magnitude below which a quaternion or an axis is considered degenerate and can't be normalized.
const Epsilon = 1e-9

var (
	// ErrDegenerateQuaternion is returned when normalizing a quaternion whose magnitude is (close to) zero.
	ErrDegenerateQuaternion = errors.New("degenerate quaternion")

	// ErrNoKeyframes is returned when sampling a RotationTrack that has no keyframes.
	ErrNoKeyframes = errors.New("rotation track has no keyframes")

	// ErrUnsupportedAccessor is returned when a glTF accessor holds data that can't be read as rotations or keyframe times.
	ErrUnsupportedAccessor = errors.New("unsupported accessor")

	// ErrUnknownInterpolation is returned for interpolation modes a RotationTrack doesn't understand.
	ErrUnknownInterpolation = errors.New("unknown interpolation")

	// ErrInvalidTime is returned when sampling a RotationTrack at a time that isn't a number.
	ErrInvalidTime = errors.New("invalid sample time")
)
