package orient

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

const (
	InterpolationLinear = iota // Spherically interpolate between keyframes
	InterpolationStep          // Hold each keyframe until the next one
)

// RotationKeyframe is a rotation at a point in time, in seconds.
type RotationKeyframe struct {
	Time     float64
	Rotation Quaternion
}

// RotationTrack is a timeline of rotations, like a rotation channel of an animation.
type RotationTrack struct {
	Name          string
	Interpolation int
	Keyframes     []RotationKeyframe // Keyframes, sorted by time
}

// NewRotationTrack creates a new, empty RotationTrack that interpolates linearly.
func NewRotationTrack(name string) *RotationTrack {
	return &RotationTrack{
		Name:          name,
		Interpolation: InterpolationLinear,
	}
}

// AddKeyframe adds a rotation keyframe at the given time, keeping the keyframes sorted. A keyframe added at the time
// of an existing one is placed after it.
func (track *RotationTrack) AddKeyframe(time float64, rotation Quaternion) {

	i := sort.Search(len(track.Keyframes), func(i int) bool { return track.Keyframes[i].Time > time })

	track.Keyframes = append(track.Keyframes, RotationKeyframe{})
	copy(track.Keyframes[i+1:], track.Keyframes[i:])
	track.Keyframes[i] = RotationKeyframe{Time: time, Rotation: rotation}

}

// Length returns the time of the last keyframe in the track, or 0 if it has none.
func (track *RotationTrack) Length() float64 {
	if len(track.Keyframes) == 0 {
		return 0
	}
	return track.Keyframes[len(track.Keyframes)-1].Time
}

// Sample returns the rotation of the track at the given time. Before the first keyframe, the first keyframe's rotation
// is returned; after the last, the last keyframe's. A NaN time is an error.
func (track *RotationTrack) Sample(time float64) (Quaternion, error) {

	if len(track.Keyframes) == 0 {
		return Quaternion{}, errors.Wrapf(ErrNoKeyframes, "sampling track %q", track.Name)
	}

	if math.IsNaN(time) {
		return Quaternion{}, errors.Wrapf(ErrInvalidTime, "sampling track %q at %v", track.Name, time)
	}

	if first := track.Keyframes[0]; time <= first.Time {
		return first.Rotation, nil
	} else if last := track.Keyframes[len(track.Keyframes)-1]; time >= last.Time {
		return last.Rotation, nil
	}

	// The index of the first keyframe after the time given; the checks above guarantee 0 < next < len.
	next := sort.Search(len(track.Keyframes), func(i int) bool { return track.Keyframes[i].Time > time })

	first := track.Keyframes[next-1]
	last := track.Keyframes[next]

	switch track.Interpolation {

	case InterpolationStep:
		return first.Rotation, nil

	case InterpolationLinear:
		if time == first.Time {
			return first.Rotation, nil
		}
		t := (time - first.Time) / (last.Time - first.Time)
		return Slerp(first.Rotation, last.Rotation, t), nil

	}

	return Quaternion{}, errors.Wrapf(ErrUnknownInterpolation, "track %q has interpolation %d", track.Name, track.Interpolation)

}
