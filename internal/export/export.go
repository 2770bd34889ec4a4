// Package export writes baked texture buffers and remapped meshes to
// disk. Every write goes through a temp file plus rename, so a crash or
// a full disk never leaves a half-written artifact behind.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/vatbake/internal/layout"
	"github.com/Faultbox/vatbake/internal/mesh"
	"github.com/Faultbox/vatbake/pkg/formats"
	"github.com/Faultbox/vatbake/pkg/math"
	"github.com/Faultbox/vatbake/pkg/obj"
)

// Error reports a failed export and the path it was headed for.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exporting %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Exporter writes bake artifacts into one directory under a common
// filename prefix.
type Exporter struct {
	// Dir is the output directory, created on first write.
	Dir string
	// Prefix is prepended to every artifact filename.
	Prefix string
}

// ImagePath returns the output path for a named texture.
func (e *Exporter) ImagePath(name string) string {
	return filepath.Join(e.Dir, fmt.Sprintf("%s_%s.vatf", e.Prefix, name))
}

// MeshPath returns the output path for the remapped mesh.
func (e *Exporter) MeshPath() string {
	return filepath.Join(e.Dir, fmt.Sprintf("%s_mesh.obj", e.Prefix))
}

// PreviewPath returns the output path for a named preview image.
func (e *Exporter) PreviewPath(name string) string {
	return filepath.Join(e.Dir, fmt.Sprintf("%s_%s_preview.png", e.Prefix, name))
}

// WriteImage writes an RGBA float buffer as a named texture and returns
// the path it landed on.
func (e *Exporter) WriteImage(name string, buf []float32, width, height int) (string, error) {
	path := e.ImagePath(name)
	err := e.atomic(path, func(f *os.File) error {
		w := bufio.NewWriter(f)
		if err := formats.WriteVATF(w, width, height, 4, buf); err != nil {
			return err
		}
		return w.Flush()
	})
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return path, nil
}

// WriteMesh writes the remapped playback mesh: one OBJ vertex per point,
// with the texture coordinate of each vertex pointing at the center of
// that point's frame-0 pixel. A shader samples the baked maps at exactly
// that texel for any frame by offsetting the coordinate.
func (e *Exporter) WriteMesh(pm *mesh.PointMesh, lay *layout.Layout) (string, error) {
	out := &obj.Mesh{
		Positions: make([]math.Vec3, pm.PointCount()),
		UVs:       make([]math.Vec2, pm.PointCount()),
		Normals:   make([]math.Vec3, pm.PointCount()),
	}
	w := float32(lay.Width)
	h := float32(lay.Height)
	for i, pt := range pm.Points {
		x, y := lay.Coord(i, 0)
		out.Positions[i] = pt.Position
		out.UVs[i] = math.Vec2{X: (float32(x) + 0.5) / w, Y: (float32(y) + 0.5) / h}
		out.Normals[i] = pt.Normal
	}
	for _, tri := range pm.Triangles {
		out.Triangles = append(out.Triangles, obj.Triangle{
			obj.Corner{Position: tri[0], UV: tri[0], Normal: tri[0]},
			obj.Corner{Position: tri[1], UV: tri[1], Normal: tri[1]},
			obj.Corner{Position: tri[2], UV: tri[2], Normal: tri[2]},
		})
	}

	path := e.MeshPath()
	err := e.atomic(path, func(f *os.File) error {
		bw := bufio.NewWriter(f)
		if err := obj.Write(bw, out); err != nil {
			return err
		}
		return bw.Flush()
	})
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return path, nil
}

// atomic runs write against a temp file in the target directory and
// renames it over path only after write succeeds.
func (e *Exporter) atomic(path string, write func(f *os.File) error) error {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(e.Dir, "."+filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
