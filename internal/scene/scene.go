package scene

import (
	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"polyline-engine/internal/graphics"
	"polyline-engine/internal/polyline"
)

const (
	gridExtent     = 20
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Entity is one actor placed in the scene together with the sink it builds into.
type Entity struct {
	Actor    *polyline.Actor
	Sink     *graphics.MeshSink
	Position math32.Vector3
}

// Scene holds a 3D camera and the placed polyline actors. The world is Z-up to
// match the ribbon builder's up axis.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
	Entities    []*Entity
}

// New returns a scene with a perspective camera orbiting the origin.
// Camera: position (12,-12,9), target (0,0,0), up (0,0,1), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{}
	s.Camera.Position = rl.NewVector3(12, -12, 9)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 0, 1)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// Add places an actor at position and starts it (BeginPlay). The built mesh is
// uploaded on the next Draw.
func (s *Scene) Add(actor *polyline.Actor, sink *graphics.MeshSink, position math32.Vector3) (*Entity, error) {
	e := &Entity{Actor: actor, Sink: sink, Position: position}
	s.Entities = append(s.Entities, e)
	return e, actor.BeginPlay()
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame: orbits the camera and ticks every actor.
func (s *Scene) Update(dt float32) {
	rl.UpdateCamera(&s.Camera, rl.CameraOrbital)
	for _, e := range s.Entities {
		e.Actor.Tick(dt)
	}
}

// Stats sums the mesh statistics of every entity.
func (s *Scene) Stats() graphics.Stats {
	var st graphics.Stats
	for i, e := range s.Entities {
		es := e.Sink.Stats()
		st.Vertices += es.Vertices
		st.Triangles += es.Triangles
		if i == 0 {
			st.Material = es.Material
		}
	}
	return st
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	for _, e := range s.Entities {
		e.Sink.Draw(e.Actor.Rotation(), e.Position)
	}
	rl.EndMode3D()
}

// Unload releases GPU resources of every entity.
func (s *Scene) Unload() {
	for _, e := range s.Entities {
		e.Sink.Unload()
	}
}

// drawEditorGrid draws a grid on the XY plane (Z=0) with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), float32(-gridExtent), 0
		end.X, end.Y, end.Z = float32(i), float32(gridExtent), 0
		rl.DrawLine3D(start, end, c)
		start.X, start.Y = float32(-gridExtent), float32(i)
		end.X, end.Y = float32(gridExtent), float32(i)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	axes := [3]struct {
		dir rl.Vector3
		col rl.Color
	}{
		{rl.NewVector3(1, 0, 0), rl.NewColor(220, 80, 80, axisLineAlpha)},
		{rl.NewVector3(0, 1, 0), rl.NewColor(80, 220, 80, axisLineAlpha)},
		{rl.NewVector3(0, 0, 1), rl.NewColor(80, 80, 220, axisLineAlpha)},
	}
	for _, a := range axes {
		rl.DrawLine3D(rl.Vector3Scale(a.dir, -gridExtent), rl.Vector3Scale(a.dir, gridExtent), a.col)
	}
}
