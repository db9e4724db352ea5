package export_test

import (
	"strings"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/keelson/pkg/export"
	"github.com/chazu/keelson/pkg/mesh"
)

func TestWriteSTL(t *testing.T) {
	m := &mesh.Mesh{}
	m.Add(sdf.Triangle3{
		v3.Vec{X: 0, Y: 0, Z: 0},
		v3.Vec{X: 1, Y: 0, Z: 0},
		v3.Vec{X: 0, Y: 1, Z: 0},
	})
	m.Add(sdf.Triangle3{
		v3.Vec{X: 0, Y: 0, Z: 0},
		v3.Vec{X: 0, Y: 1, Z: 0},
		v3.Vec{X: 0, Y: 0, Z: 1},
	})

	var sb strings.Builder
	if err := export.WriteSTL(&sb, "hull", m); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "solid hull\n") {
		t.Errorf("missing solid header:\n%s", out)
	}
	if !strings.Contains(out, "endsolid hull\n") {
		t.Errorf("missing endsolid footer")
	}
	if got := strings.Count(out, "facet normal"); got != m.TriangleCount() {
		t.Errorf("facet blocks = %d, want %d", got, m.TriangleCount())
	}
	if got := strings.Count(out, "vertex"); got != 3*m.TriangleCount() {
		t.Errorf("vertex lines = %d, want %d", got, 3*m.TriangleCount())
	}
	// The first facet lies in the z=0 plane; its winding normal is +z.
	if !strings.Contains(out, "facet normal 0 0 1") {
		t.Errorf("expected +z facet normal:\n%s", out)
	}
	if !strings.Contains(out, "vertex 1 0 0") {
		t.Errorf("expected exact vertex coordinates:\n%s", out)
	}
}

func TestWriteSTLEmptyMesh(t *testing.T) {
	var sb strings.Builder
	if err := export.WriteSTL(&sb, "empty", &mesh.Mesh{}); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	want := "solid empty\nendsolid empty\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}
