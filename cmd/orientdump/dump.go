package main

import (
	"fmt"
	"io"

	"github.com/tanema/gween/ease"

	"github.com/solarlune/orient"
)

func writeSample(w io.Writer, name string, time float64, q orient.Quaternion, probe orient.Vector) {
	v := q.RotateVector(probe)
	fmt.Fprintf(w, "%s\t%.4f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n", name, time, q.X, q.Y, q.Z, q.W, v.X, v.Y, v.Z)
}

// sampleTimes returns 0, step, 2*step... up to and including length. Time is computed by multiplication so
// rounding doesn't pile up over long tracks.
func sampleTimes(length, step float64) []float64 {
	times := []float64{}
	for i := 0; ; i++ {
		t := float64(i) * step
		if t > length+step*1e-6 {
			break
		}
		times = append(times, t)
	}
	if len(times) > 0 && times[len(times)-1] < length {
		times = append(times, length)
	}
	return times
}

func dumpTrack(w io.Writer, track *orient.RotationTrack, step float64, probe orient.Vector) error {
	for _, t := range sampleTimes(track.Length(), step) {
		q, err := track.Sample(t)
		if err != nil {
			return err
		}
		writeSample(w, track.Name, t, q, probe)
	}
	return nil
}

func dumpTween(w io.Writer, track *orient.RotationTrack, easing ease.TweenFunc, step float64, probe orient.Vector) {
	if len(track.Keyframes) == 0 {
		return
	}
	first := track.Keyframes[0]
	last := track.Keyframes[len(track.Keyframes)-1]
	duration := last.Time - first.Time

	tween := orient.NewOrientationTween(first.Rotation, last.Rotation, float32(duration), easing)
	for _, t := range sampleTimes(duration, step) {
		q, _ := tween.Set(float32(t))
		writeSample(w, track.Name+"/tween", first.Time+t, q, probe)
	}
}
