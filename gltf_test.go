package orient

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.viam.com/test"
)

// newWaveDocument builds a document with one node, "arm", turning a quarter turn around +Y over one second,
// plus a translation channel that should be ignored.
func newWaveDocument(interpolation gltf.Interpolation, rotations any) *gltf.Document {

	doc := gltf.NewDocument()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "arm", Rotation: [4]float64{0, 0, 0, 1}})

	input := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1})
	output := modeler.WriteAccessor(doc, gltf.TargetNone, rotations)
	translation := modeler.WriteAccessor(doc, gltf.TargetNone, [][3]float32{{0, 0, 0}, {0, 1, 0}})

	doc.Animations = append(doc.Animations, &gltf.Animation{
		Name: "wave",
		Samplers: []*gltf.AnimationSampler{
			{Input: input, Output: output, Interpolation: interpolation},
			{Input: input, Output: translation, Interpolation: gltf.InterpolationLinear},
		},
		Channels: []*gltf.AnimationChannel{
			{Sampler: 1, Target: gltf.AnimationChannelTarget{Node: gltf.Index(0), Path: gltf.TRSTranslation}},
			{Sampler: 0, Target: gltf.AnimationChannelTarget{Node: gltf.Index(0), Path: gltf.TRSRotation}},
		},
	})

	return doc

}

var quarterTurnY = [][4]float32{
	{0, 0, 0, 1},
	{0, float32(math.Sin(math.Pi / 4)), 0, float32(math.Cos(math.Pi / 4))},
}

func TestNodeRotation(t *testing.T) {
	test.That(t, NodeRotation(&gltf.Node{}), test.ShouldResemble, NewQuaternionIdentity())
	q := NodeRotation(&gltf.Node{Rotation: [4]float64{0, math.Sin(math.Pi / 4), 0, math.Cos(math.Pi / 4)}})
	test.That(t, q.SameRotation(rot90Y, 1e-9), test.ShouldBeTrue)
}

func TestLoadRotationTracks(t *testing.T) {
	tracks, err := LoadRotationTracks(newWaveDocument(gltf.InterpolationLinear, quarterTurnY), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 1)

	track := tracks[0]
	test.That(t, track.Name, test.ShouldEqual, "wave/arm")
	test.That(t, track.Interpolation, test.ShouldEqual, InterpolationLinear)
	test.That(t, track.Length(), test.ShouldEqual, 1.0)

	q, err := track.Sample(0.5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.SameRotation(NewQuaternionFromAxisAngle(VecY(), math.Pi/4), 1e-6), test.ShouldBeTrue)
}

func TestLoadRotationTracksStep(t *testing.T) {
	tracks, err := LoadRotationTracks(newWaveDocument(gltf.InterpolationStep, quarterTurnY), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks[0].Interpolation, test.ShouldEqual, InterpolationStep)

	q, err := tracks[0].Sample(0.9)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldResemble, NewQuaternionIdentity())
}

func TestLoadRotationTracksNormalizedIntegers(t *testing.T) {
	rotations := [][4]int16{{0, 0, 0, 32767}, {0, 0, 32767, 0}}
	tracks, err := LoadRotationTracks(newWaveDocument(gltf.InterpolationLinear, rotations), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks[0].Keyframes[0].Rotation, test.ShouldResemble, NewQuaternionIdentity())
	test.That(t, tracks[0].Keyframes[1].Rotation, test.ShouldResemble, NewQuaternion(0, 0, 1, 0))

	bytesRotations := [][4]int8{{0, 0, 0, 127}, {-128, 0, 0, 0}}
	tracks, err = LoadRotationTracks(newWaveDocument(gltf.InterpolationLinear, bytesRotations), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks[0].Keyframes[1].Rotation, test.ShouldResemble, NewQuaternion(-1, 0, 0, 0))
}

func TestLoadRotationTracksCubicSpline(t *testing.T) {
	// Each keyframe is an in-tangent, a value, and an out-tangent.
	rotations := [][4]float32{
		{}, quarterTurnY[0], {},
		{}, quarterTurnY[1], {},
	}

	core, logs := observer.New(zap.WarnLevel)
	options := &GLTFLoadOptions{Logger: zap.New(core).Sugar()}

	tracks, err := LoadRotationTracks(newWaveDocument(gltf.InterpolationCubicSpline, rotations), options)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks[0].Keyframes, test.ShouldHaveLength, 2)
	test.That(t, tracks[0].Interpolation, test.ShouldEqual, InterpolationLinear)
	test.That(t, tracks[0].Keyframes[1].Rotation.SameRotation(rot90Y, 1e-6), test.ShouldBeTrue)
	test.That(t, logs.FilterMessageSnippet("cubic spline").Len(), test.ShouldEqual, 1)
}

func TestLoadRotationTracksBadData(t *testing.T) {
	doc := newWaveDocument(gltf.InterpolationLinear, [][3]float32{{0, 0, 0}, {1, 1, 1}})
	_, err := LoadRotationTracks(doc, nil)
	test.That(t, errors.Is(err, ErrUnsupportedAccessor), test.ShouldBeTrue)

	doc = newWaveDocument(gltf.InterpolationLinear, quarterTurnY[:1])
	_, err = LoadRotationTracks(doc, nil)
	test.That(t, errors.Is(err, ErrUnsupportedAccessor), test.ShouldBeTrue)

	doc = newWaveDocument(gltf.InterpolationLinear, quarterTurnY)
	doc.Animations[0].Samplers[0].Output = -1
	_, err = LoadRotationTracks(doc, nil)
	test.That(t, errors.Is(err, ErrUnsupportedAccessor), test.ShouldBeTrue)

	doc = newWaveDocument(gltf.InterpolationLinear, quarterTurnY)
	doc.Animations[0].Samplers[0].Input = len(doc.Accessors)
	_, err = LoadRotationTracks(doc, nil)
	test.That(t, errors.Is(err, ErrUnsupportedAccessor), test.ShouldBeTrue)
}

func TestLoadRotationTracksNaming(t *testing.T) {
	doc := newWaveDocument(gltf.InterpolationLinear, quarterTurnY)
	doc.Animations[0].Name = ""
	doc.Nodes[0].Name = ""

	tracks, err := LoadRotationTracks(doc, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks[0].Name, test.ShouldEqual, "animation0/node0")

	tracks, err = LoadRotationTracks(doc, &GLTFLoadOptions{SkipUnnamed: true})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 0)

	doc.Animations[0].Channels[1].Target.Node = gltf.Index(7)
	core, logs := observer.New(zap.WarnLevel)
	tracks, err = LoadRotationTracks(doc, &GLTFLoadOptions{Logger: zap.New(core).Sugar()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 0)
	test.That(t, logs.Len(), test.ShouldEqual, 1)

	doc.Animations[0].Channels[1].Target.Node = gltf.Index(-1)
	core, logs = observer.New(zap.WarnLevel)
	tracks, err = LoadRotationTracks(doc, &GLTFLoadOptions{Logger: zap.New(core).Sugar()})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 0)
	test.That(t, logs.FilterMessageSnippet("missing node").Len(), test.ShouldEqual, 1)
}

func TestLoadRotationTracksBadSampler(t *testing.T) {
	for _, sampler := range []int{5, -1} {
		doc := newWaveDocument(gltf.InterpolationLinear, quarterTurnY)
		doc.Animations[0].Channels[1].Sampler = sampler

		core, logs := observer.New(zap.WarnLevel)
		tracks, err := LoadRotationTracks(doc, &GLTFLoadOptions{Logger: zap.New(core).Sugar()})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tracks, test.ShouldHaveLength, 0)
		test.That(t, logs.FilterMessageSnippet("no valid sampler").Len(), test.ShouldEqual, 1)
	}
}

func TestLoadGLTFDataAndFile(t *testing.T) {
	doc := newWaveDocument(gltf.InterpolationLinear, quarterTurnY)

	var buf bytes.Buffer
	encoder := gltf.NewEncoder(&buf)
	encoder.AsBinary = true
	test.That(t, encoder.Encode(doc), test.ShouldBeNil)

	tracks, err := LoadGLTFData(buf.Bytes(), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 1)
	test.That(t, tracks[0].Keyframes[1].Rotation.SameRotation(rot90Y, 1e-6), test.ShouldBeTrue)

	path := filepath.Join(t.TempDir(), "wave.glb")
	test.That(t, os.WriteFile(path, buf.Bytes(), 0o644), test.ShouldBeNil)

	tracks, err = LoadGLTFFile(path, DefaultGLTFLoadOptions())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tracks, test.ShouldHaveLength, 1)
	test.That(t, tracks[0].Name, test.ShouldEqual, "wave/arm")

	_, err = LoadGLTFFile(filepath.Join(t.TempDir(), "missing.glb"), nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func BenchmarkLoadRotationTracks(b *testing.B) {
	doc := newWaveDocument(gltf.InterpolationLinear, quarterTurnY)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := LoadRotationTracks(doc, nil); err != nil {
			b.Fatal(err)
		}
	}
}
