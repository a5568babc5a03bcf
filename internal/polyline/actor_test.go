package polyline

import (
	"errors"
	"image/color"
	"testing"
	"testing/fstest"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyline-engine/internal/logger"
	"polyline-engine/internal/ribbon"
)

type fakeSink struct {
	meshes    []ribbon.Mesh
	materials []*MaterialDef
	err       error
}

func (s *fakeSink) SetMeshSection(section int, m ribbon.Mesh) error {
	if s.err != nil {
		return s.err
	}
	s.meshes = append(s.meshes, m)
	return nil
}

func (s *fakeSink) SetMaterial(section int, def *MaterialDef) {
	s.materials = append(s.materials, def)
}

func (s *fakeSink) last() ribbon.Mesh {
	return s.meshes[len(s.meshes)-1]
}

var testMaterials = fstest.MapFS{
	"materials/polyline.yaml": {Data: []byte("name: polyline\nshader: vertex_color\ntint: \"#ffffff\"\n")},
}

func lineAsset() Asset {
	return Asset{
		Points:    [][3]float32{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		Thickness: 2,
		Color:     "#ff0000",
		Material:  "materials/polyline.yaml",
	}
}

func TestNewActorResolvesMaterial(t *testing.T) {
	sink := &fakeSink{}
	a := NewActor(lineAsset(), sink, testMaterials, logger.NewMemory().Slog())
	require.NotNil(t, a.Material())
	assert.Equal(t, "vertex_color", a.Material().Shader)
	require.Len(t, sink.materials, 1)
	assert.Same(t, a.Material(), sink.materials[0])
	assert.Empty(t, sink.meshes, "construction must not build")
}

func TestNewActorMissingMaterialLogs(t *testing.T) {
	log := logger.NewMemory()
	asset := lineAsset()
	asset.Material = "materials/missing.yaml"
	sink := &fakeSink{}
	a := NewActor(asset, sink, testMaterials, log.Slog())

	assert.Nil(t, a.Material())
	require.Len(t, sink.materials, 1)
	assert.Nil(t, sink.materials[0])
	assert.True(t, log.Contains("failed to load material"))
	assert.True(t, log.Contains("materials/missing.yaml"))

	// The mesh still builds without a material.
	require.NoError(t, a.BeginPlay())
	assert.Len(t, sink.last().Vertices, 6)
}

func TestBeginPlayAndPostLoadBuild(t *testing.T) {
	sink := &fakeSink{}
	a := NewActor(lineAsset(), sink, testMaterials, nil)
	require.NoError(t, a.BeginPlay())
	require.NoError(t, a.PostLoad())
	require.Len(t, sink.meshes, 2)
	assert.Equal(t, sink.meshes[0], sink.meshes[1])

	m := sink.last()
	assert.Len(t, m.Vertices, 6)
	assert.Len(t, m.Triangles, 12)
	for _, c := range m.Colors {
		assert.Equal(t, color.NRGBA{255, 0, 0, 255}, c)
	}
	assert.Equal(t, m, a.Mesh())
}

func TestEditsRebuild(t *testing.T) {
	sink := &fakeSink{}
	a := NewActor(lineAsset(), sink, testMaterials, nil)

	require.NoError(t, a.SetThickness(4))
	assert.InDelta(t, 2, sink.last().Vertices[0].Y, 1e-5)

	require.NoError(t, a.SetPoints([]math32.Vector3{math32.Vec3(0, 0, 0), math32.Vec3(0, 1, 0)}))
	assert.Len(t, sink.last().Vertices, 4)
	assert.Len(t, sink.last().Triangles, 6)

	blue := color.NRGBA{0, 0, 255, 255}
	require.NoError(t, a.SetColor(blue))
	assert.Equal(t, blue, sink.last().Colors[0])

	require.NoError(t, a.SetRotationSpeed(math32.Vec3(0, 0, 10)))
	assert.Equal(t, [3]float32{0, 0, 10}, a.Asset().RotationSpeed)
	assert.Len(t, sink.meshes, 4)

	require.NoError(t, a.PostEditChangeProperty(""))
	assert.Len(t, sink.meshes, 4, "unnamed edit must not rebuild")
}

func TestApplyAsset(t *testing.T) {
	sink := &fakeSink{}
	a := NewActor(lineAsset(), sink, testMaterials, nil)

	next := lineAsset()
	next.Points = append(next.Points, [3]float32{3, 1, 0})
	next.Material = ""
	require.NoError(t, a.ApplyAsset(next))
	assert.Len(t, sink.last().Vertices, 8)
	assert.Nil(t, a.Material())

	bad := lineAsset()
	bad.Color = "#zz"
	assert.Error(t, a.ApplyAsset(bad))
	assert.Len(t, sink.meshes, 1)
}

func TestActorOwnsPoints(t *testing.T) {
	asset := lineAsset()
	a := NewActor(asset, &fakeSink{}, testMaterials, nil)
	asset.Points[0] = [3]float32{9, 9, 9}
	assert.Equal(t, [3]float32{0, 0, 0}, a.Asset().Points[0])

	got := a.Asset()
	got.Points[1] = [3]float32{7, 7, 7}
	assert.Equal(t, [3]float32{1, 0, 0}, a.Asset().Points[1])
}

func TestRebuildSinkError(t *testing.T) {
	log := logger.NewMemory()
	sink := &fakeSink{err: errors.New("upload failed")}
	a := NewActor(lineAsset(), sink, testMaterials, log.Slog())
	err := a.BeginPlay()
	require.Error(t, err)
	assert.ErrorIs(t, err, sink.err)
	assert.True(t, log.Contains("upload failed"))
}

func TestTickRotates(t *testing.T) {
	asset := lineAsset()
	asset.RotationSpeed = [3]float32{0, 0, 90}
	a := NewActor(asset, &fakeSink{}, testMaterials, nil)

	a.Tick(0.5)
	a.Tick(0.5)
	v := math32.Vec3(1, 0, 0).MulQuat(a.Rotation())
	assert.InDelta(t, 0, v.X, 1e-4)
	assert.InDelta(t, 1, v.Y, 1e-4)
	assert.InDelta(t, 0, v.Z, 1e-4)
}

func TestTickWithoutSpeedKeepsIdentity(t *testing.T) {
	a := NewActor(lineAsset(), &fakeSink{}, testMaterials, nil)
	a.Tick(1)
	assert.Equal(t, math32.NewQuat(0, 0, 0, 1), a.Rotation())
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	var _ MeshSink = sink
	a := NewActor(lineAsset(), sink, testMaterials, nil)
	require.NoError(t, a.PostLoad())
	require.NoError(t, a.SetThickness(1))
	assert.Equal(t, 2, sink.Builds)
	assert.Equal(t, a.Mesh(), sink.Sections[0])
	assert.Equal(t, a.Material(), sink.Materials[0])
}

func TestTranslucentColorKeepsStraightAlpha(t *testing.T) {
	asset := lineAsset()
	asset.Color = "#ff000080"
	sink := NewMemorySink()
	a := NewActor(asset, sink, testMaterials, nil)
	require.NoError(t, a.PostLoad())
	for _, c := range sink.Sections[0].Colors {
		assert.Equal(t, color.NRGBA{255, 0, 0, 128}, c)
	}

	want := color.NRGBA{0x10, 0x20, 0x30, 0x40}
	require.NoError(t, a.SetColor(want))
	assert.Equal(t, "#10203040", a.Asset().Color)
	assert.Equal(t, want, sink.Sections[0].Colors[0])
}
