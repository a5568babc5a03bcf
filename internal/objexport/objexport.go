// Package objexport writes ribbon meshes as Wavefront OBJ text so they can be
// inspected in other tools. Vertex colors use the common "v x y z r g b" extension.
package objexport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"polyline-engine/internal/ribbon"
)

// Write encodes m to w. Face indices are 1-based and keep the builder's winding.
func Write(w io.Writer, m ribbon.Mesh) error {
	if len(m.Colors) != 0 && len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("objexport: %d colors for %d vertices", len(m.Colors), len(m.Vertices))
	}
	if len(m.Triangles)%3 != 0 {
		return fmt.Errorf("objexport: triangle index count %d is not a multiple of 3", len(m.Triangles))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# ribbon: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	for i, v := range m.Vertices {
		if len(m.Colors) == 0 {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
			continue
		}
		c := m.Colors[i]
		fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n", v.X, v.Y, v.Z,
			float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
	}
	for i := 0; i < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		for _, idx := range [3]uint32{a, b, c} {
			if int(idx) >= len(m.Vertices) {
				return fmt.Errorf("objexport: triangle %d references vertex %d of %d", i/3, idx, len(m.Vertices))
			}
		}
		fmt.Fprintf(bw, "f %d %d %d\n", a+1, b+1, c+1)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("objexport: %w", err)
	}
	return nil
}

// WriteFile writes m to path, creating parent directories.
func WriteFile(path string, m ribbon.Mesh) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("objexport: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("objexport: %w", err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
