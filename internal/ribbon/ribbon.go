package ribbon

import (
	"image/color"

	"cogentcore.org/core/math32"
)

const (
	// MiterEpsilon is how close sin(angle/2) may get to zero before the joint
	// is treated as a full reversal.
	MiterEpsilon = 0.01
	// MiterCap is the offset scale used at a reversal in place of 1/sin(angle/2).
	MiterCap = 1000
)

// DefaultUp is the world up axis (Z). The ribbon always faces sideways relative to it.
var DefaultUp = math32.Vec3(0, 0, 1)

// Mesh is the output of a build: two vertices and two straight-alpha colors per input point,
// and a flat list of triangle index triples into Vertices.
type Mesh struct {
	Vertices  []math32.Vector3
	Colors    []color.NRGBA
	Triangles []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty returns true if the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the axis-aligned box around all vertices. Empty meshes return an empty box.
func (m *Mesh) Bounds() math32.Box3 {
	b := math32.B3Empty()
	b.ExpandByPoints(m.Vertices)
	return b
}

// Builder turns polylines into ribbon meshes. The zero value is not useful; use New
// or the package-level Build which uses DefaultUp.
type Builder struct {
	Up math32.Vector3
}

// New returns a builder using the given up axis.
func New(up math32.Vector3) *Builder {
	return &Builder{Up: up}
}

// Build builds a ribbon with the default up axis. See Builder.Build.
func Build(points []math32.Vector3, thickness float32, c color.NRGBA) Mesh {
	b := Builder{Up: DefaultUp}
	return b.Build(points, thickness, c)
}

// joint is the loop-carried state from the previous point.
type joint struct {
	point       math32.Vector3
	left, right uint32
}

// Build generates the ribbon for points. The point after the last one wraps to
// the first for direction lookup, but no closing segment is emitted. The first
// and last points use the plain edge normal; interior points use the mitered
// bisector. Degenerate input never fails: zero-length directions give a zero
// offset.
func (b *Builder) Build(points []math32.Vector3, thickness float32, c color.NRGBA) Mesh {
	n := len(points)
	if n == 0 {
		return Mesh{Vertices: []math32.Vector3{}, Colors: []color.NRGBA{}, Triangles: []uint32{}}
	}
	m := Mesh{
		Vertices:  make([]math32.Vector3, 0, 2*n),
		Colors:    make([]color.NRGBA, 0, 2*n),
		Triangles: make([]uint32, 0, 6*(n-1)),
	}
	half := thickness * 0.5

	var prev joint
	for i, point := range points {
		next := points[(i+1)%n]

		var outward math32.Vector3
		scale := float32(1)
		switch {
		case i == 0:
			outward = b.Up.Cross(safeNormal(next.Sub(point)))
		case i == n-1:
			outward = b.Up.Cross(safeNormal(point.Sub(prev.point)))
		default:
			prevDir := safeNormal(point.Sub(prev.point))
			nextDir := safeNormal(next.Sub(point))
			outward = safeNormal(b.Up.Cross(prevDir).Add(b.Up.Cross(nextDir)))
			scale = JointScale(prevDir, nextDir)
		}

		offset := outward.MulScalar(half * scale)
		cur := joint{point: point, left: uint32(len(m.Vertices)), right: uint32(len(m.Vertices) + 1)}
		m.Vertices = append(m.Vertices, point.Add(offset), point.Sub(offset))
		m.Colors = append(m.Colors, c, c)

		if i > 0 {
			m.Triangles = append(m.Triangles,
				cur.left, cur.right, prev.left,
				prev.right, prev.left, cur.right,
			)
		}
		prev = cur
	}
	return m
}

// JointScale returns the miter compensation for a joint between the incoming
// unit direction prevDir and the outgoing unit direction nextDir. A straight
// joint gives 1; a fold back onto itself gives MiterCap.
func JointScale(prevDir, nextDir math32.Vector3) float32 {
	cos := math32.Clamp(nextDir.Dot(prevDir.Negate()), -1, 1)
	s := math32.Sin(math32.Acos(cos) * 0.5)
	if math32.Abs(s) <= MiterEpsilon {
		return MiterCap
	}
	return 1 / s
}

// normalTolerance is the squared length at or below which a vector is treated as zero.
const normalTolerance = 1e-8

// safeNormal returns the unit vector of v, or the zero vector if v is too short
// to have a reliable direction.
func safeNormal(v math32.Vector3) math32.Vector3 {
	sq := v.Dot(v)
	if sq <= normalTolerance || math32.IsNaN(sq) {
		return math32.Vector3{}
	}
	return v.MulScalar(1 / math32.Sqrt(sq))
}
