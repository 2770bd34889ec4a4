package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write writes the mesh as OBJ text. Corners with UV or Normal set to -1
// omit the respective reference.
func Write(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, v := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", v.X, v.Y)
	}
	for _, v := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, tri := range m.Triangles {
		bw.WriteString("f")
		for _, c := range tri {
			bw.WriteByte(' ')
			bw.WriteString(formatCorner(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the mesh to an OBJ file.
func WriteFile(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCorner(c Corner) string {
	switch {
	case c.UV >= 0 && c.Normal >= 0:
		return fmt.Sprintf("%d/%d/%d", c.Position+1, c.UV+1, c.Normal+1)
	case c.UV >= 0:
		return fmt.Sprintf("%d/%d", c.Position+1, c.UV+1)
	case c.Normal >= 0:
		return fmt.Sprintf("%d//%d", c.Position+1, c.Normal+1)
	default:
		return fmt.Sprintf("%d", c.Position+1)
	}
}
