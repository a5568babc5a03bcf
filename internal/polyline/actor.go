package polyline

import (
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"

	"cogentcore.org/core/math32"

	"polyline-engine/internal/ribbon"
)

// MeshSink receives the built buffers. Every call fully replaces the section's
// previous contents.
type MeshSink interface {
	SetMeshSection(section int, m ribbon.Mesh) error
	// SetMaterial assigns a material to a section. nil means unshaded.
	SetMaterial(section int, def *MaterialDef)
}

// Property names passed to PostEditChangeProperty.
const (
	PropPoints        = "points"
	PropThickness     = "thickness"
	PropColor         = "color"
	PropRotationSpeed = "rotation_speed"
	PropMaterial      = "material"
	PropAsset         = "asset"
)

// Actor is a polyline placed in the scene: it owns the asset values, builds the
// ribbon into its sink whenever it is activated, loaded, or edited, and spins
// by RotationSpeed every Tick.
type Actor struct {
	asset     Asset
	rotation  math32.Quat
	sink      MeshSink
	materials fs.FS
	material  *MaterialDef
	log       *slog.Logger
	mesh      ribbon.Mesh
}

// NewActor returns an actor for asset that builds into sink. The material is
// resolved from materials now; a failure is logged and the ribbon stays unshaded.
// The mesh is not built until BeginPlay, PostLoad, or an edit.
func NewActor(asset Asset, sink MeshSink, materials fs.FS, log *slog.Logger) *Actor {
	if log == nil {
		log = slog.Default()
	}
	a := &Actor{
		asset:     asset.Clone(),
		rotation:  math32.NewQuat(0, 0, 0, 1),
		sink:      sink,
		materials: materials,
		log:       log,
	}
	a.resolveMaterial()
	return a
}

func (a *Actor) resolveMaterial() {
	a.material = nil
	path := a.asset.Material
	if path == "" {
		a.sink.SetMaterial(0, nil)
		return
	}
	def, err := LoadMaterial(a.materials, path)
	if err != nil {
		a.log.Error("failed to load material", "path", path, "err", err)
		a.sink.SetMaterial(0, nil)
		return
	}
	a.material = def
	a.sink.SetMaterial(0, def)
}

// BeginPlay is called when the actor is activated in a running scene.
func (a *Actor) BeginPlay() error {
	return a.Rebuild()
}

// PostLoad is called after the actor's asset has been deserialized.
func (a *Actor) PostLoad() error {
	return a.Rebuild()
}

// PostEditChangeProperty is called after an edit to the named property. An
// empty name (no specific property) leaves the mesh as is.
func (a *Actor) PostEditChangeProperty(name string) error {
	if name == "" {
		return nil
	}
	if name == PropMaterial || name == PropAsset {
		a.resolveMaterial()
	}
	return a.Rebuild()
}

// Rebuild builds the ribbon from the current asset and hands it to the sink.
func (a *Actor) Rebuild() error {
	c, err := a.asset.NRGBA()
	if err != nil {
		// Edits go through SetColor/ApplyAsset which validate, so this is a stale asset.
		a.log.Warn("invalid color, using white", "color", a.asset.Color, "err", err)
		c = color.NRGBA{255, 255, 255, 255}
	}
	a.mesh = ribbon.Build(a.asset.Vectors(), a.asset.Thickness, c)
	if err := a.sink.SetMeshSection(0, a.mesh); err != nil {
		a.log.Error("failed to update mesh section", "err", err)
		return fmt.Errorf("update mesh section: %w", err)
	}
	a.log.Debug("ribbon rebuilt", "points", len(a.asset.Points), "vertices", a.mesh.VertexCount(), "triangles", a.mesh.TriangleCount())
	return nil
}

// SetPoints replaces the polyline points and rebuilds.
func (a *Actor) SetPoints(points []math32.Vector3) error {
	a.asset.Points = PointsFrom(points)
	return a.PostEditChangeProperty(PropPoints)
}

// SetThickness sets the ribbon width and rebuilds.
func (a *Actor) SetThickness(thickness float32) error {
	a.asset.Thickness = thickness
	return a.PostEditChangeProperty(PropThickness)
}

// SetColor sets the uniform vertex color and rebuilds.
func (a *Actor) SetColor(c color.NRGBA) error {
	a.asset.Color = FormatColor(c)
	return a.PostEditChangeProperty(PropColor)
}

// SetRotationSpeed sets [roll, pitch, yaw] in degrees per second.
func (a *Actor) SetRotationSpeed(speed math32.Vector3) error {
	a.asset.RotationSpeed = [3]float32{speed.X, speed.Y, speed.Z}
	return a.PostEditChangeProperty(PropRotationSpeed)
}

// ApplyAsset replaces every property at once (e.g. after the asset file changed on disk) and rebuilds.
func (a *Actor) ApplyAsset(asset Asset) error {
	if _, err := asset.NRGBA(); err != nil {
		return err
	}
	a.asset = asset.Clone()
	return a.PostEditChangeProperty(PropAsset)
}

// Tick advances the rotation by RotationSpeed*dt, applied in the actor's local frame.
func (a *Actor) Tick(dt float32) {
	s := a.asset.RotationSpeed
	if s == [3]float32{} || dt == 0 {
		return
	}
	euler := math32.Vec3(s[0], s[1], s[2]).MulScalar(dt * math32.DegToRadFactor)
	var dq math32.Quat
	dq.SetFromEuler(euler)
	a.rotation.SetMul(dq)
	a.rotation.Normalize()
}

// Rotation returns the current orientation.
func (a *Actor) Rotation() math32.Quat {
	return a.rotation
}

// Mesh returns the most recently built mesh.
func (a *Actor) Mesh() ribbon.Mesh {
	return a.mesh
}

// Material returns the resolved material, or nil when unshaded.
func (a *Actor) Material() *MaterialDef {
	return a.material
}

// Asset returns a copy of the actor's current properties.
func (a *Actor) Asset() Asset {
	return a.asset.Clone()
}
