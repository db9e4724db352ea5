// Package mesh assembles triangle meshes from hull cross sections: it
// stitches pairs of transverse section rings into strips and drives the
// stitcher along the full hull length.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is an unstructured facet soup. Facet order is insertion order and
// carries no further meaning; no connectivity structure is maintained.
type Mesh struct {
	Triangles []sdf.Triangle3
}

// Add appends facets to the mesh.
func (m *Mesh) Add(tris ...sdf.Triangle3) {
	m.Triangles = append(m.Triangles, tris...)
}

// Append appends every facet of other.
func (m *Mesh) Append(other *Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// TriangleCount returns the number of facets.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// BoundingBox returns the axis-aligned bounding box of all facet vertices.
// An empty mesh returns zero vectors.
func (m *Mesh) BoundingBox() (min, max v3.Vec) {
	if m.IsEmpty() {
		return v3.Vec{}, v3.Vec{}
	}
	min = m.Triangles[0][0]
	max = min
	for _, t := range m.Triangles {
		for _, v := range t {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}
	return min, max
}

// Translate shifts every facet vertex by delta, in place.
func (m *Mesh) Translate(delta v3.Vec) {
	for i := range m.Triangles {
		for j := range m.Triangles[i] {
			v := m.Triangles[i][j]
			m.Triangles[i][j] = v3.Vec{X: v.X + delta.X, Y: v.Y + delta.Y, Z: v.Z + delta.Z}
		}
	}
}

// Reversed returns a copy of the mesh with every facet's vertex order
// reversed, flipping all normals. Used for inner wall surfaces.
func (m *Mesh) Reversed() *Mesh {
	out := &Mesh{Triangles: make([]sdf.Triangle3, len(m.Triangles))}
	for i, t := range m.Triangles {
		out.Triangles[i] = sdf.Triangle3{t[2], t[1], t[0]}
	}
	return out
}
