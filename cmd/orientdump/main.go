// Command orientdump samples rotation tracks from a YAML keyframe script or a glTF file and prints each sampled
// quaternion along with a probe vector rotated by it.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/solarlune/orient"
	"github.com/solarlune/orient/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML keyframe script (optional; defaults to a half turn around +Y)")
		gltfPath   = flag.String("gltf", "", "glTF/GLB file whose rotation channels replace the script's tracks (optional)")
		step       = flag.Float64("step", 0, "sampling step in seconds (overrides the script)")
		tween      = flag.Bool("tween", false, "ease between the first track's first and last keyframes instead of sampling tracks")
		verbose    = flag.Bool("verbose", false, "log at debug level")
	)
	flag.Parse()

	if *step < 0 {
		fmt.Fprintln(os.Stderr, "-step must not be negative")
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorw("load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *step > 0 {
		cfg.Step = *step
	}

	tracks, err := cfg.BuildTracks()
	if err != nil {
		logger.Errorw("build tracks", "error", err)
		os.Exit(1)
	}

	if *gltfPath != "" {
		options := orient.DefaultGLTFLoadOptions()
		options.Logger = logger.Named("gltf")
		tracks, err = orient.LoadGLTFFile(*gltfPath, options)
		if err != nil {
			logger.Errorw("load glTF", "path", *gltfPath, "error", err)
			os.Exit(1)
		}
		if len(tracks) == 0 {
			logger.Errorw("no rotation channels", "path", *gltfPath)
			os.Exit(1)
		}
	}

	logger.Debugw("sampling", "tracks", len(tracks), "step", cfg.Step, "probe", cfg.ProbeVector().String())

	if *tween {
		easing, err := cfg.EasingFunc()
		if err != nil {
			logger.Errorw("easing", "error", err)
			os.Exit(1)
		}
		dumpTween(os.Stdout, tracks[0], easing, cfg.Step, cfg.ProbeVector())
		return
	}

	for _, track := range tracks {
		if err := dumpTrack(os.Stdout, track, cfg.Step, cfg.ProbeVector()); err != nil {
			logger.Errorw("sample track", "track", track.Name, "error", err)
			os.Exit(1)
		}
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
