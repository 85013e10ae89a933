// Package config loads the keyframe scripts orientdump samples.
package config

import (
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"

	"github.com/solarlune/orient"
)

// Config is a keyframe script: how to sample, what to rotate with each sample, and the tracks to sample.
type Config struct {
	Step   float64     `yaml:"step"`
	Probe  [3]float64  `yaml:"probe"`
	Easing string      `yaml:"easing"`
	Tracks []TrackSpec `yaml:"tracks"`
}

// TrackSpec is one named rotation track of a Config.
type TrackSpec struct {
	Name          string         `yaml:"name"`
	Interpolation string         `yaml:"interpolation"`
	Keyframes     []KeyframeSpec `yaml:"keyframes"`
}

// KeyframeSpec is a rotation at a time, given either as an axis and an angle in degrees, or as raw
// quaternion components (x, y, z, w). Raw components win if both are set.
type KeyframeSpec struct {
	Time         float64     `yaml:"time"`
	Axis         [3]float64  `yaml:"axis"`
	AngleDegrees float64     `yaml:"angle_degrees"`
	Quaternion   *[4]float64 `yaml:"quaternion,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_back":     ease.OutBack,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,
}

var interpolations = map[string]int{
	"linear": orient.InterpolationLinear,
	"step":   orient.InterpolationStep,
}

// Load reads the YAML keyframe script at path. An empty path gives the defaults: a half turn around +Y over one second.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// Tracks from the file replace the default track rather than adding to it.
	cfg.Tracks = nil
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "%s", path)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Step:   0.25,
		Probe:  [3]float64{1, 0, 0},
		Easing: "linear",
		Tracks: []TrackSpec{
			{
				Name:          "spin",
				Interpolation: "linear",
				Keyframes: []KeyframeSpec{
					{Time: 0, Axis: [3]float64{0, 1, 0}, AngleDegrees: 0},
					{Time: 1, Axis: [3]float64{0, 1, 0}, AngleDegrees: 180},
				},
			},
		},
	}
}

// Normalize fills in defaults for anything left unset, lower-cases the easing and interpolation names, and sorts
// each track's keyframes by time.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	if c.Step <= 0 {
		c.Step = 0.25
	}
	if c.Probe == ([3]float64{}) {
		c.Probe = [3]float64{1, 0, 0}
	}
	c.Easing = strings.ToLower(strings.TrimSpace(c.Easing))
	if c.Easing == "" {
		c.Easing = "linear"
	}
	for i := range c.Tracks {
		tr := &c.Tracks[i]
		tr.Name = strings.TrimSpace(tr.Name)
		tr.Interpolation = strings.ToLower(strings.TrimSpace(tr.Interpolation))
		if tr.Interpolation == "" {
			tr.Interpolation = "linear"
		}
		sort.SliceStable(tr.Keyframes, func(a, b int) bool { return tr.Keyframes[a].Time < tr.Keyframes[b].Time })
	}
}

// Validate reports the first problem that would keep the script from building tracks. It expects a normalized Config.
func (c Config) Validate() error {
	if _, ok := easings[c.Easing]; !ok {
		return errors.Errorf("unknown easing %q", c.Easing)
	}
	if len(c.Tracks) == 0 {
		return errors.New("no tracks")
	}
	seen := map[string]bool{}
	for i, tr := range c.Tracks {
		if tr.Name == "" {
			return errors.Errorf("track %d has no name", i)
		}
		if seen[tr.Name] {
			return errors.Errorf("duplicate track %q", tr.Name)
		}
		seen[tr.Name] = true
		if _, ok := interpolations[tr.Interpolation]; !ok {
			return errors.Wrapf(orient.ErrUnknownInterpolation, "track %q: %q", tr.Name, tr.Interpolation)
		}
		if len(tr.Keyframes) == 0 {
			return errors.Wrapf(orient.ErrNoKeyframes, "track %q", tr.Name)
		}
		for _, k := range tr.Keyframes {
			if math.IsNaN(k.Time) || math.IsInf(k.Time, 0) {
				return errors.Wrapf(orient.ErrInvalidTime, "track %q: keyframe time %v", tr.Name, k.Time)
			}
			if k.Quaternion != nil {
				q := orient.NewQuaternion(k.Quaternion[0], k.Quaternion[1], k.Quaternion[2], k.Quaternion[3])
				if _, err := q.Normalized(); err != nil {
					return errors.Wrapf(err, "track %q at %g", tr.Name, k.Time)
				}
			}
		}
	}
	return nil
}

// EasingFunc returns the gween easing function the config names.
func (c Config) EasingFunc() (ease.TweenFunc, error) {
	fn, ok := easings[c.Easing]
	if !ok {
		return nil, errors.Errorf("unknown easing %q", c.Easing)
	}
	return fn, nil
}

// ProbeVector returns the vector each sampled rotation is applied to.
func (c Config) ProbeVector() orient.Vector {
	return orient.NewVector(c.Probe[0], c.Probe[1], c.Probe[2])
}

// Rotation returns the unit quaternion the keyframe describes.
func (k KeyframeSpec) Rotation() (orient.Quaternion, error) {
	if k.Quaternion != nil {
		return orient.NewQuaternion(k.Quaternion[0], k.Quaternion[1], k.Quaternion[2], k.Quaternion[3]).Normalized()
	}
	axis := orient.NewVector(k.Axis[0], k.Axis[1], k.Axis[2])
	return orient.NewQuaternionFromAxisAngle(axis, k.AngleDegrees*math.Pi/180), nil
}

// BuildTracks turns the track specs into rotation tracks, in config order.
func (c Config) BuildTracks() ([]*orient.RotationTrack, error) {
	tracks := make([]*orient.RotationTrack, 0, len(c.Tracks))
	for _, spec := range c.Tracks {
		interpolation, ok := interpolations[spec.Interpolation]
		if !ok {
			return nil, errors.Wrapf(orient.ErrUnknownInterpolation, "track %q: %q", spec.Name, spec.Interpolation)
		}
		track := orient.NewRotationTrack(spec.Name)
		track.Interpolation = interpolation
		for _, k := range spec.Keyframes {
			q, err := k.Rotation()
			if err != nil {
				return nil, errors.Wrapf(err, "track %q at %g", spec.Name, k.Time)
			}
			track.AddKeyframe(k.Time, q)
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}
