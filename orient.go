// Package orient is a small rotation library built around unit quaternions: composing rotations, building them from
// an axis and an angle, spherically interpolating between orientations (directly, along keyframed tracks, or eased
// over time), and rotating vectors.
//
// Quaternions and Vectors are plain values. Everything here is a pure function of its arguments except
// Quaternion.Normalize(), which scales its receiver in place, so values can be used from multiple goroutines as long as
// each one owns what it normalizes.
package orient
