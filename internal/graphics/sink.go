package graphics

import (
	"errors"
	"fmt"
	"unsafe"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"polyline-engine/internal/polyline"
	"polyline-engine/internal/resource"
	"polyline-engine/internal/ribbon"
)

// maxVertices is the largest mesh raylib can index with its 16-bit index buffer.
const maxVertices = 1 << 16

// ErrMeshTooLarge is returned when a mesh has more vertices than a 16-bit index can address.
var ErrMeshTooLarge = errors.New("mesh too large for 16-bit indices")

// Stats describes what a sink currently holds.
type Stats struct {
	Vertices  int
	Triangles int
	Material  string
}

// section is one mesh+material slot. pending holds buffers not yet uploaded.
type section struct {
	pending  *ribbon.Mesh
	mesh     rl.Mesh
	uploaded bool

	def *polyline.MaterialDef
	// mtl is loaded once per section and reconfigured in place when def changes.
	mtl        *resource.Slot[rl.Material]
	baseShader rl.Shader
	mtlDirty   bool

	stats Stats
}

// MeshSink receives ribbon buffers from a polyline actor and draws them with raylib.
// Buffers may arrive before the window exists; uploads are deferred to the first Draw
// after each change so they run with a live OpenGL context.
type MeshSink struct {
	sections map[int]*section
	shaders  *ShaderCache
}

// NewMeshSink returns an empty sink that builds materials from shaders.
func NewMeshSink(shaders *ShaderCache) *MeshSink {
	return &MeshSink{sections: make(map[int]*section), shaders: shaders}
}

func (s *MeshSink) section(i int) *section {
	sec, ok := s.sections[i]
	if !ok {
		sec = &section{mtlDirty: true}
		sec.mtl = resource.NewSlot(func() rl.Material {
			m := rl.LoadMaterialDefault()
			sec.baseShader = m.Shader
			return m
		}, func(m rl.Material) {
			// UnloadMaterial frees any non-default shader; the cached ones belong to ShaderCache.
			m.Shader = sec.baseShader
			rl.UnloadMaterial(m)
		})
		s.sections[i] = sec
	}
	return sec
}

// SetMeshSection implements polyline.MeshSink. The previous mesh is released on the next Draw.
func (s *MeshSink) SetMeshSection(i int, m ribbon.Mesh) error {
	if len(m.Vertices) > maxVertices {
		return fmt.Errorf("%w: %d vertices", ErrMeshTooLarge, len(m.Vertices))
	}
	if len(m.Colors) != len(m.Vertices) {
		return fmt.Errorf("section %d: %d colors for %d vertices", i, len(m.Colors), len(m.Vertices))
	}
	sec := s.section(i)
	sec.pending = &m
	sec.stats.Vertices = m.VertexCount()
	sec.stats.Triangles = m.TriangleCount()
	return nil
}

// SetMaterial implements polyline.MeshSink. nil draws with raylib's default material,
// which still shows the vertex colors but ignores any tint.
func (s *MeshSink) SetMaterial(i int, def *polyline.MaterialDef) {
	sec := s.section(i)
	sec.def = def
	sec.mtlDirty = true
	sec.stats.Material = ""
	if def != nil {
		sec.stats.Material = def.Name
	}
}

// Stats returns the totals over all sections. Material is that of section 0.
func (s *MeshSink) Stats() Stats {
	var st Stats
	for i, sec := range s.sections {
		st.Vertices += sec.stats.Vertices
		st.Triangles += sec.stats.Triangles
		if i == 0 {
			st.Material = sec.stats.Material
		}
	}
	return st
}

// Draw uploads pending changes and draws every section with the given rotation and position.
// Must be called between BeginMode3D and EndMode3D.
func (s *MeshSink) Draw(rotation math32.Quat, position math32.Vector3) {
	rot := rl.QuaternionToMatrix(rl.Quaternion{X: rotation.X, Y: rotation.Y, Z: rotation.Z, W: rotation.W})
	transform := rl.MatrixMultiply(rot, rl.MatrixTranslate(position.X, position.Y, position.Z))

	// The ribbon is a single flat sheet; both faces must be visible.
	rl.DisableBackfaceCulling()
	defer rl.EnableBackfaceCulling()
	for _, sec := range s.sections {
		s.ensureUploaded(sec)
		s.ensureMaterial(sec)
		if !sec.uploaded {
			continue
		}
		rl.DrawMesh(sec.mesh, *sec.mtl.Get(), transform)
	}
}

// Unload releases all GPU resources held by the sink.
func (s *MeshSink) Unload() {
	for _, sec := range s.sections {
		if sec.uploaded {
			rl.UnloadMesh(&sec.mesh)
			sec.uploaded = false
		}
		sec.mtl.Release()
		sec.mtlDirty = true
	}
}

func (s *MeshSink) ensureUploaded(sec *section) {
	if sec.pending == nil {
		return
	}
	m := *sec.pending
	sec.pending = nil
	if sec.uploaded {
		rl.UnloadMesh(&sec.mesh)
		sec.uploaded = false
	}
	if m.TriangleCount() == 0 {
		return
	}
	sec.mesh = toRaylibMesh(m)
	rl.UploadMesh(&sec.mesh, false)
	sec.uploaded = true
}

func (s *MeshSink) ensureMaterial(sec *section) {
	if !sec.mtlDirty && sec.mtl.Loaded() {
		return
	}
	s.shaders.Configure(sec.mtl.Get(), sec.baseShader, sec.def)
	sec.mtlDirty = false
}

// toRaylibMesh copies m into raylib-allocated arrays so UnloadMesh can free them.
func toRaylibMesh(m ribbon.Mesh) rl.Mesh {
	n := len(m.Vertices)
	var out rl.Mesh
	out.VertexCount = int32(n)
	out.TriangleCount = int32(m.TriangleCount())

	verts := unsafe.Slice((*float32)(rl.MemAlloc(uint32(n*3*4))), n*3)
	for i, v := range m.Vertices {
		verts[i*3], verts[i*3+1], verts[i*3+2] = v.X, v.Y, v.Z
	}
	cols := unsafe.Slice((*uint8)(rl.MemAlloc(uint32(n*4))), n*4)
	for i, c := range m.Colors {
		cols[i*4], cols[i*4+1], cols[i*4+2], cols[i*4+3] = c.R, c.G, c.B, c.A
	}
	idx := unsafe.Slice((*uint16)(rl.MemAlloc(uint32(len(m.Triangles)*2))), len(m.Triangles))
	for i, t := range m.Triangles {
		idx[i] = uint16(t)
	}

	out.Vertices = &verts[0]
	out.Colors = &cols[0]
	out.Indices = &idx[0]
	return out
}
