// Package bake orchestrates a full vertex-animation bake: preprocess the
// rest mesh, plan the texture layout, sample every frame, and export the
// resulting maps and playback mesh.
package bake

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/vatbake/internal/export"
	"github.com/Faultbox/vatbake/internal/layout"
	"github.com/Faultbox/vatbake/internal/logger"
	"github.com/Faultbox/vatbake/internal/mesh"
	"github.com/Faultbox/vatbake/internal/sampler"
	"github.com/Faultbox/vatbake/internal/scene"
)

// Stage names the pipeline phase a failure happened in.
type Stage string

// Pipeline stages, in run order.
const (
	StagePreprocess Stage = "preprocess"
	StageLayout     Stage = "layout"
	StageSample     Stage = "sample"
	StageExport     Stage = "export"
)

// StageError wraps a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Options controls a bake run.
type Options struct {
	// FrameStart, FrameEnd, FrameStep define the sampled frame range. The
	// end frame is always sampled, even when the step overshoots it.
	FrameStart int
	FrameEnd   int
	FrameStep  int
	// ZCurve selects morton pixel ordering; otherwise rows are linear.
	ZCurve bool
	// NormalEpsilon is the corner-split angle threshold in radians.
	NormalEpsilon float32
	// MaxImageArea caps the output pixel count; <= 0 uses the default.
	MaxImageArea int
	// GenerateMesh also exports the remapped playback mesh.
	GenerateMesh bool
	// Preview also exports lossy 8-bit PNG renderings of both maps.
	Preview bool
}

// Result describes a completed bake.
type Result struct {
	Layout *layout.Layout
	Frames []int
	// Paths lists every file written, in write order.
	Paths []string
}

// Run executes the pipeline against a scene and writes artifacts through
// the exporter. The scene's frame cursor is restored on every exit path.
// On export failure, artifacts already written by this run are removed
// so a failed bake leaves nothing behind.
func Run(sc scene.Scene, exp *export.Exporter, opts Options) (*Result, error) {
	origin := sc.Frame()
	defer func() {
		if err := sc.SetFrame(origin); err != nil {
			logger.Warn("could not restore scene frame", zap.Int("frame", origin), zap.Error(err))
		}
	}()

	frames := sampler.FrameRange(opts.FrameStart, opts.FrameEnd, opts.FrameStep)
	logger.Info("bake started",
		zap.Int("frame_start", opts.FrameStart),
		zap.Int("frame_end", opts.FrameEnd),
		zap.Int("frame_step", opts.FrameStep),
		zap.Int("frames", len(frames)),
		zap.Bool("zcurve", opts.ZCurve))

	pm, err := preprocess(sc, frames[0], opts.NormalEpsilon)
	if err != nil {
		return nil, &StageError{Stage: StagePreprocess, Err: err}
	}
	logger.Info("rest mesh preprocessed",
		zap.Int("points", pm.PointCount()),
		zap.Int("triangles", len(pm.Triangles)))

	mode := layout.Linear
	if opts.ZCurve {
		mode = layout.Morton
	}
	lay, err := layout.Plan(pm.PointCount(), len(frames), mode, opts.MaxImageArea)
	if err != nil {
		return nil, &StageError{Stage: StageLayout, Err: err}
	}
	logger.Info("layout planned",
		zap.Stringer("mode", lay.Mode),
		zap.Int("width", lay.Width),
		zap.Int("height", lay.Height))

	res, err := sampler.New(sc, pm, lay).Run(frames)
	if err != nil {
		return nil, &StageError{Stage: StageSample, Err: err}
	}
	logger.Info("sampling finished", zap.Int("frames", len(res.Frames)))

	paths, err := exportAll(exp, pm, res, opts)
	if err != nil {
		cleanup(paths)
		return nil, &StageError{Stage: StageExport, Err: err}
	}
	logger.Info("bake finished", zap.Strings("paths", paths))

	return &Result{Layout: lay, Frames: frames, Paths: paths}, nil
}

// preprocess evaluates the rest frame and splits it into points.
func preprocess(sc scene.Scene, restFrame int, normalEps float32) (*mesh.PointMesh, error) {
	if err := sc.SetFrame(restFrame); err != nil {
		return nil, err
	}
	m, err := sc.Evaluate()
	if err != nil {
		return nil, err
	}
	return mesh.Split(m, normalEps)
}

// exportAll writes every requested artifact. It returns the paths written
// so far even on failure, so the caller can clean them up.
func exportAll(exp *export.Exporter, pm *mesh.PointMesh, res *sampler.Result, opts Options) ([]string, error) {
	var paths []string
	lay := res.Layout

	p, err := exp.WriteImage("map", res.Displacement, lay.Width, lay.Height)
	if err != nil {
		return paths, err
	}
	paths = append(paths, p)

	p, err = exp.WriteImage("normal", res.Rotation, lay.Width, lay.Height)
	if err != nil {
		return paths, err
	}
	paths = append(paths, p)

	if opts.GenerateMesh {
		p, err = exp.WriteMesh(pm, lay)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}

	if opts.Preview {
		p, err = exp.WritePreview("map", res.Displacement, lay.Width, lay.Height)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)

		p, err = exp.WritePreview("normal", res.Rotation, lay.Width, lay.Height)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// cleanup removes artifacts written before an export failure.
func cleanup(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			logger.Warn("could not remove partial artifact", zap.String("path", p), zap.Error(err))
		}
	}
}
