// Package sampler walks a scene through a frame range and scatters
// per-point displacement and rotation samples into texture buffers laid
// out by the layout package.
package sampler

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/Faultbox/vatbake/internal/layout"
	"github.com/Faultbox/vatbake/internal/mesh"
	"github.com/Faultbox/vatbake/internal/scene"
	"github.com/Faultbox/vatbake/pkg/math"
)

// Result holds the two baked RGBA float buffers, each Width*Height*4
// values in row-major pixel order. Pixels that carry no data are zero.
type Result struct {
	Layout *layout.Layout
	// Frames lists the sampled scene frames, in bake order.
	Frames []int
	// Displacement stores (dx, dy, dz, 1) per data pixel.
	Displacement []float32
	// Rotation stores quaternion (x, y, z, w) per data pixel.
	Rotation []float32
	// Rest holds the rest-pose samples, evaluated at Frames[0].
	Rest []mesh.Sample
}

// Sampler bakes one PointMesh against one Scene.
type Sampler struct {
	scene scene.Scene
	mesh  *mesh.PointMesh
	lay   *layout.Layout
}

// New creates a Sampler. The layout must have been planned for the
// mesh's point count and the intended frame count.
func New(sc scene.Scene, pm *mesh.PointMesh, lay *layout.Layout) *Sampler {
	return &Sampler{scene: sc, mesh: pm, lay: lay}
}

// FrameRange expands (start, end, step) into the list of frames to
// sample. Frames run start, start+step, ... and the end frame is always
// included, so a step that overshoots still samples both boundaries.
// A step below 1 is treated as 1.
func FrameRange(start, end, step int) []int {
	if step < 1 {
		step = 1
	}
	if end <= start {
		return []int{start}
	}
	frames := make([]int, 0, (end-start)/step+2)
	for f := start; f <= end; f += step {
		frames = append(frames, f)
	}
	if frames[len(frames)-1] != end {
		frames = append(frames, end)
	}
	return frames
}

// Run samples every frame and returns the filled buffers. The first
// frame is the rest pose: its displacement is exactly zero and its
// rotation exactly identity. The scene's frame cursor is left at the
// last sampled frame; restoring it is the caller's job.
func (s *Sampler) Run(frames []int) (*Result, error) {
	if len(frames) != s.lay.Frames {
		return nil, errors.Errorf("layout planned for %d frames, got %d", s.lay.Frames, len(frames))
	}
	if s.mesh.PointCount() != s.lay.Points {
		return nil, errors.Errorf("layout planned for %d points, got %d", s.lay.Points, s.mesh.PointCount())
	}

	n := s.lay.Width * s.lay.Height * 4
	res := &Result{
		Layout:       s.lay,
		Frames:       frames,
		Displacement: make([]float32, n),
		Rotation:     make([]float32, n),
	}

	// The header pixel carries the point and frame counts in both maps.
	hx, hy := s.lay.HeaderCoord()
	header := layout.EncodeHeader(s.lay.Points, s.lay.Frames)
	writeTexel(res.Displacement, s.lay.Width, hx, hy, header)
	writeTexel(res.Rotation, s.lay.Width, hx, hy, header)

	// prev carries the previous frame's quaternion per point so each
	// point stays on a continuous hemisphere across frames.
	prev := make([]math.Quat, s.mesh.PointCount())
	for i := range prev {
		prev[i] = math.QuatIdentity()
	}

	for fi, frame := range frames {
		if err := s.scene.SetFrame(frame); err != nil {
			return nil, errors.Wrapf(err, "setting frame %d", frame)
		}
		m, err := s.scene.Evaluate()
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating frame %d", frame)
		}
		if err := s.mesh.CheckTopology(m); err != nil {
			return nil, &TopologyChangedError{Frame: frame, Err: err}
		}

		cur := s.mesh.FrameGeometry(m)
		if fi == 0 {
			res.Rest = cur
		}
		if err := s.scatterFrame(res, cur, prev, frame, fi); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// scatterFrame derives and writes every point's texels for one frame.
// Frame evaluation is strictly sequential, but within a frame each point
// is independent (the hemisphere state is per point), so the scatter fans
// out across a bounded worker pool. Every pixel has exactly one writer.
func (s *Sampler) scatterFrame(res *Result, cur []mesh.Sample, prev []math.Quat, frame, fi int) error {
	workers := runtime.NumCPU()
	if workers > len(cur) {
		workers = len(cur)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	chunk := (len(cur) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(cur) {
			hi = len(cur)
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			for p := lo; p < hi; p++ {
				disp, quat, err := s.samplePoint(p, frame, fi, res.Rest[p], cur[p], prev[p])
				if err != nil {
					errs[w] = err
					return
				}
				prev[p] = quat

				x, y := s.lay.Coord(p, fi)
				writeTexel(res.Displacement, s.lay.Width, x, y, [4]float32{disp.X, disp.Y, disp.Z, 1})
				writeTexel(res.Rotation, s.lay.Width, x, y, [4]float32{quat.X, quat.Y, quat.Z, quat.W})
			}
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// samplePoint derives the displacement and rotation of one point at one
// frame. Frame index 0 is the rest pose and is forced to exact zero and
// identity so decoders can rely on a bitwise-clean first frame.
func (s *Sampler) samplePoint(p, frame, fi int, rest, cur mesh.Sample, prev math.Quat) (math.Vec3, math.Quat, error) {
	if fi == 0 {
		return math.Vec3{}, math.QuatIdentity(), nil
	}

	if !cur.Position.IsFinite() {
		return math.Vec3{}, math.Quat{}, &SampleError{Point: p, Frame: frame, Detail: "non-finite position"}
	}
	if cur.Normal.IsZero() || !cur.Normal.IsFinite() {
		return math.Vec3{}, math.Quat{}, &SampleError{Point: p, Frame: frame, Detail: "degenerate geometry, no usable normal"}
	}

	disp := cur.Position.Sub(rest.Position)
	if !disp.IsFinite() {
		return math.Vec3{}, math.Quat{}, &SampleError{Point: p, Frame: frame, Detail: "non-finite displacement"}
	}

	quat := math.RotationBetween(rest.Basis, cur.Basis)
	if !quat.IsFinite() {
		return math.Vec3{}, math.Quat{}, &SampleError{Point: p, Frame: frame, Detail: "non-finite rotation"}
	}
	// q and -q encode the same rotation; stay on the hemisphere of the
	// previous frame so interpolation never takes the long way around.
	if quat.Dot(prev) < 0 {
		quat = quat.Neg()
	}
	return disp, quat, nil
}

func writeTexel(buf []float32, width, x, y int, v [4]float32) {
	off := (y*width + x) * 4
	buf[off+0] = v[0]
	buf[off+1] = v[1]
	buf[off+2] = v[2]
	buf[off+3] = v[3]
}

// Texel reads back one RGBA texel from a buffer produced by Run.
func Texel(buf []float32, width, x, y int) [4]float32 {
	off := (y*width + x) * 4
	return [4]float32{buf[off], buf[off+1], buf[off+2], buf[off+3]}
}
