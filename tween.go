package orient

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OrientationTween eases from one orientation to another over a duration, in seconds. The easing function drives
// the interpolation percentage, which is then used to Slerp() between the two rotations; easing functions that
// overshoot (like ease.OutBack) extrapolate past the ending orientation.
type OrientationTween struct {
	From, To Quaternion
	progress *gween.Tween
}

// NewOrientationTween creates a new OrientationTween. If easing is nil, ease.Linear is used.
func NewOrientationTween(from, to Quaternion, duration float32, easing ease.TweenFunc) *OrientationTween {
	if easing == nil {
		easing = ease.Linear
	}
	return &OrientationTween{
		From:     from,
		To:       to,
		progress: gween.New(0, 1, duration, easing),
	}
}

// Update advances the tween by dt seconds, returning the current orientation and if the tween is finished.
func (tween *OrientationTween) Update(dt float32) (Quaternion, bool) {
	percent, finished := tween.progress.Update(dt)
	return tween.at(percent, finished), finished
}

// Set moves the tween to the given time, returning the orientation there and if the tween is finished.
func (tween *OrientationTween) Set(time float32) (Quaternion, bool) {
	percent, finished := tween.progress.Set(time)
	return tween.at(percent, finished), finished
}

// Reset rewinds the tween back to the start.
func (tween *OrientationTween) Reset() {
	tween.progress.Reset()
}

func (tween *OrientationTween) at(percent float32, finished bool) Quaternion {
	if finished {
		// Land exactly on the target, rather than on the (possibly sign-flipped) end of the arc.
		return tween.To
	}
	return Slerp(tween.From, tween.To, float64(percent))
}
