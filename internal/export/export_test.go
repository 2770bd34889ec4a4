package export

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/vatbake/internal/layout"
	"github.com/Faultbox/vatbake/internal/mesh"
	"github.com/Faultbox/vatbake/pkg/formats"
	"github.com/Faultbox/vatbake/pkg/math"
	"github.com/Faultbox/vatbake/pkg/obj"
)

func quad() *obj.Mesh {
	m := &obj.Mesh{
		Positions: []math.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		UVs: []math.Vec2{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Normals: []math.Vec3{{Z: 1}},
	}
	m.Triangles = []obj.Triangle{
		{
			obj.Corner{Position: 0, UV: 0, Normal: 0},
			obj.Corner{Position: 1, UV: 1, Normal: 0},
			obj.Corner{Position: 2, UV: 2, Normal: 0},
		},
		{
			obj.Corner{Position: 0, UV: 0, Normal: 0},
			obj.Corner{Position: 2, UV: 2, Normal: 0},
			obj.Corner{Position: 3, UV: 3, Normal: 0},
		},
	}
	return m
}

func TestWriteImageRoundTrip(t *testing.T) {
	e := &Exporter{Dir: t.TempDir(), Prefix: "VAT"}

	buf := make([]float32, 2*2*4)
	for i := range buf {
		buf[i] = float32(i) * 0.25
	}
	path, err := e.WriteImage("map", buf, 2, 2)
	if err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}
	if filepath.Base(path) != "VAT_map.vatf" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	img, err := formats.ParseVATF(data)
	if err != nil {
		t.Fatalf("ParseVATF failed: %v", err)
	}
	if img.Width != 2 || img.Height != 2 || img.Channels != 4 {
		t.Errorf("dimensions %dx%dx%d, want 2x2x4", img.Width, img.Height, img.Channels)
	}
	for i := range buf {
		if img.Data[i] != buf[i] {
			t.Fatalf("sample %d: %v != %v", i, img.Data[i], buf[i])
		}
	}
}

func TestWriteImageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Prefix: "VAT"}
	if _, err := e.WriteImage("map", make([]float32, 4), 1, 1); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, ent := range entries {
		if strings.Contains(ent.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", ent.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 output file, found %d", len(entries))
	}
}

func TestWriteImageError(t *testing.T) {
	// Using a regular file as the output directory must fail with a typed
	// error naming the intended path.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "out")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	e := &Exporter{Dir: blocker, Prefix: "VAT"}
	_, err := e.WriteImage("map", make([]float32, 4), 1, 1)
	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if exErr.Path != e.ImagePath("map") {
		t.Errorf("error path %q, want %q", exErr.Path, e.ImagePath("map"))
	}
}

func TestWriteMesh(t *testing.T) {
	pm, err := mesh.Split(quad(), 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	lay, err := layout.Plan(pm.PointCount(), 2, layout.Morton, 0)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	e := &Exporter{Dir: t.TempDir(), Prefix: "VAT"}
	path, err := e.WriteMesh(pm, lay)
	if err != nil {
		t.Fatalf("WriteMesh failed: %v", err)
	}

	out, err := obj.ParseFile(path)
	if err != nil {
		t.Fatalf("parsing exported mesh: %v", err)
	}
	if len(out.Positions) != pm.PointCount() {
		t.Fatalf("expected %d vertices, got %d", pm.PointCount(), len(out.Positions))
	}
	if len(out.Triangles) != len(pm.Triangles) {
		t.Fatalf("expected %d triangles, got %d", len(pm.Triangles), len(out.Triangles))
	}

	// Every vertex UV must sit on the center of its frame-0 pixel.
	for i := range out.Positions {
		x, y := lay.Coord(i, 0)
		want := math.Vec2{
			X: (float32(x) + 0.5) / float32(lay.Width),
			Y: (float32(y) + 0.5) / float32(lay.Height),
		}
		got := out.UVs[i]
		if absf(got.X-want.X) > 1e-6 || absf(got.Y-want.Y) > 1e-6 {
			t.Errorf("point %d UV = %v, want %v", i, got, want)
		}
	}
}

func TestWritePreview(t *testing.T) {
	e := &Exporter{Dir: t.TempDir(), Prefix: "VAT"}

	buf := make([]float32, 4*2*4)
	buf[0], buf[3] = -1, 1
	buf[4], buf[7] = 2, 0.5
	path, err := e.WritePreview("map", buf, 4, 2)
	if err != nil {
		t.Fatalf("WritePreview failed: %v", err)
	}
	if filepath.Base(path) != "VAT_map_preview.png" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding preview: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("preview is %dx%d, want 4x2", b.Dx(), b.Dy())
	}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
