// Package export serializes keelson geometry: triangle meshes as ASCII STL
// and cross-section curves as a parametric-solid script. The serializers
// receive exact double-precision coordinates from the core; any rounding
// happens here.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/keelson/pkg/mesh"
)

// WriteSTL writes the mesh as ASCII STL under the given solid name. Facet
// normals are recomputed from the vertex winding.
func WriteSTL(w io.Writer, name string, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range m.Triangles {
		n := t.Normal()
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range t {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}
