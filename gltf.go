package orient

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// GLTFLoadOptions alters how rotations are loaded from glTF files.
type GLTFLoadOptions struct {
	// Logger receives warnings about channels that are skipped or loaded with a changed interpolation.
	// If nil, nothing is logged.
	Logger *zap.SugaredLogger
	// If SkipUnnamed is true, rotation channels targeting nodes without a name are skipped rather than named after the node index.
	SkipUnnamed bool
}

// DefaultGLTFLoadOptions creates an instance of GLTFLoadOptions with some sensible defaults.
func DefaultGLTFLoadOptions() *GLTFLoadOptions {
	return &GLTFLoadOptions{
		Logger: zap.NewNop().Sugar(),
	}
}

// LoadGLTFFile loads the rotation channels of all animations in the .gltf or .glb file at the path given. External buffers
// are resolved relative to the file. Passing nil for options loads the file using default load options.
func LoadGLTFFile(path string, options *GLTFLoadOptions) ([]*RotationTrack, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return LoadRotationTracks(doc, options)
}

// LoadGLTFData loads the rotation channels of all animations in the .glb (or self-contained .gltf) data given.
func LoadGLTFData(data []byte, options *GLTFLoadOptions) ([]*RotationTrack, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))
	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decoding glTF data")
	}

	return LoadRotationTracks(doc, options)

}

// NodeRotation returns the local rotation of a glTF node. Nodes without a rotation are at the identity.
func NodeRotation(node *gltf.Node) Quaternion {
	r := node.RotationOrDefault()
	return NewQuaternion(r[0], r[1], r[2], r[3])
}

// LoadRotationTracks creates a RotationTrack for each channel animating a node's rotation in the document. Tracks are
// named "<animation>/<node>"; channels targeting no node are named after the animation alone.
func LoadRotationTracks(doc *gltf.Document, options *GLTFLoadOptions) ([]*RotationTrack, error) {

	if options == nil {
		options = DefaultGLTFLoadOptions()
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	tracks := []*RotationTrack{}

	for animIndex, gltfAnim := range doc.Animations {

		for _, channel := range gltfAnim.Channels {

			if channel.Target.Path != gltf.TRSRotation {
				continue
			}

			if channel.Sampler < 0 || channel.Sampler >= len(gltfAnim.Samplers) {
				logger.Warnw("skipping rotation channel with no valid sampler", "animation", gltfAnim.Name, "sampler", channel.Sampler)
				continue
			}

			sampler := gltfAnim.Samplers[channel.Sampler]

			name := gltfAnim.Name
			if name == "" {
				name = "animation" + strconv.Itoa(animIndex)
			}

			if channel.Target.Node != nil {

				if *channel.Target.Node < 0 || *channel.Target.Node >= len(doc.Nodes) {
					logger.Warnw("skipping rotation channel targeting a missing node", "animation", name, "node", *channel.Target.Node)
					continue
				}

				node := doc.Nodes[*channel.Target.Node]
				nodeName := node.Name
				if nodeName == "" {
					if options.SkipUnnamed {
						logger.Debugw("skipping rotation channel of unnamed node", "animation", name, "node", *channel.Target.Node)
						continue
					}
					nodeName = "node" + strconv.Itoa(*channel.Target.Node)
				}
				name += "/" + nodeName

			}

			times, err := readKeyframeTimes(doc, sampler.Input)
			if err != nil {
				return nil, errors.Wrapf(err, "reading keyframe times of %s", name)
			}

			rotations, err := readRotations(doc, sampler.Output)
			if err != nil {
				return nil, errors.Wrapf(err, "reading rotations of %s", name)
			}

			track := NewRotationTrack(name)

			switch sampler.Interpolation {
			case gltf.InterpolationStep:
				track.Interpolation = InterpolationStep
			case gltf.InterpolationCubicSpline:
				// Each keyframe is stored as an (in-tangent, value, out-tangent) triplet; only the values are kept.
				logger.Warnw("cubic spline rotation channel loaded with linear interpolation", "track", name)
				values := make([]Quaternion, 0, len(rotations)/3)
				for i := 1; i < len(rotations); i += 3 {
					values = append(values, rotations[i])
				}
				rotations = values
			}

			if len(times) != len(rotations) {
				return nil, errors.Wrapf(ErrUnsupportedAccessor, "%s has %d keyframe times but %d rotations", name, len(times), len(rotations))
			}

			for i, t := range times {
				track.AddKeyframe(t, rotations[i])
			}

			tracks = append(tracks, track)

		}

	}

	return tracks, nil

}

func readKeyframeTimes(doc *gltf.Document, accessorIndex int) ([]float64, error) {

	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return nil, errors.Wrapf(ErrUnsupportedAccessor, "accessor %d doesn't exist", accessorIndex)
	}

	data, err := modeler.ReadAccessor(doc, doc.Accessors[accessorIndex], nil)
	if err != nil {
		return nil, err
	}

	input, ok := data.([]float32)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAccessor, "keyframe times are %T, not []float32", data)
	}

	times := make([]float64, len(input))
	for i, t := range input {
		times[i] = float64(t)
	}

	return times, nil

}

func readRotations(doc *gltf.Document, accessorIndex int) ([]Quaternion, error) {

	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return nil, errors.Wrapf(ErrUnsupportedAccessor, "accessor %d doesn't exist", accessorIndex)
	}

	data, err := modeler.ReadAccessor(doc, doc.Accessors[accessorIndex], nil)
	if err != nil {
		return nil, err
	}

	var rotations []Quaternion

	// Integer rotations are normalized as the glTF specification lays out for animation samplers.
	switch output := data.(type) {
	case [][4]float32:
		rotations = make([]Quaternion, len(output))
		for i, p := range output {
			rotations[i] = NewQuaternion(float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3]))
		}
	case [][4]int8:
		rotations = make([]Quaternion, len(output))
		for i, p := range output {
			rotations[i] = NewQuaternion(snorm(float64(p[0]), 127), snorm(float64(p[1]), 127), snorm(float64(p[2]), 127), snorm(float64(p[3]), 127))
		}
	case [][4]int16:
		rotations = make([]Quaternion, len(output))
		for i, p := range output {
			rotations[i] = NewQuaternion(snorm(float64(p[0]), 32767), snorm(float64(p[1]), 32767), snorm(float64(p[2]), 32767), snorm(float64(p[3]), 32767))
		}
	case [][4]uint8:
		rotations = make([]Quaternion, len(output))
		for i, p := range output {
			rotations[i] = NewQuaternion(float64(p[0])/255, float64(p[1])/255, float64(p[2])/255, float64(p[3])/255)
		}
	case [][4]uint16:
		rotations = make([]Quaternion, len(output))
		for i, p := range output {
			rotations[i] = NewQuaternion(float64(p[0])/65535, float64(p[1])/65535, float64(p[2])/65535, float64(p[3])/65535)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedAccessor, "rotations are %T", data)
	}

	return rotations, nil

}

// snorm converts a normalized signed integer component to a float in the -1 to 1 range.
func snorm(value, maxValue float64) float64 {
	f := value / maxValue
	if f < -1 {
		return -1
	}
	return f
}
