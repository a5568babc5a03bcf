package polyline

import "polyline-engine/internal/ribbon"

// MemorySink keeps the latest buffers in memory. Used for headless builds
// (export, stats) where nothing is drawn.
type MemorySink struct {
	Sections  map[int]ribbon.Mesh
	Materials map[int]*MaterialDef
	// Builds counts SetMeshSection calls.
	Builds int
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{Sections: make(map[int]ribbon.Mesh), Materials: make(map[int]*MaterialDef)}
}

// SetMeshSection implements MeshSink.
func (s *MemorySink) SetMeshSection(section int, m ribbon.Mesh) error {
	s.Sections[section] = m
	s.Builds++
	return nil
}

// SetMaterial implements MeshSink.
func (s *MemorySink) SetMaterial(section int, def *MaterialDef) {
	s.Materials[section] = def
}
