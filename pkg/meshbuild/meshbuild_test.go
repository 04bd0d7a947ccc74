package meshbuild

import "testing"

func TestBoxMesh(t *testing.T) {
	m, err := Box(1, 1, 1, 16)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if m.FaceCount() == 0 {
		t.Fatal("box mesh has no faces")
	}
	if m.IndexCount()%3 != 0 {
		t.Errorf("index count %d not divisible by 3", m.IndexCount())
	}
	if !m.OwnsBuffers() {
		t.Error("generated mesh should own its buffers")
	}

	// Marching cubes is approximate; the bounds must still be close
	// to the requested unit box.
	bb := m.AABB()
	for i := 0; i < 3; i++ {
		if bb.Min.At(i) > 0.2 || bb.Min.At(i) < -0.2 {
			t.Errorf("axis %d min = %v, want near 0", i, bb.Min.At(i))
		}
		if bb.Max.At(i) > 1.2 || bb.Max.At(i) < 0.8 {
			t.Errorf("axis %d max = %v, want near 1", i, bb.Max.At(i))
		}
	}
}

func TestCylinderMesh(t *testing.T) {
	m, err := Cylinder(2, 0.5, 16)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	if m.FaceCount() == 0 {
		t.Fatal("cylinder mesh has no faces")
	}
	dims := m.AABB().Dims()
	if dims.Z < 1.5 || dims.Z > 2.5 {
		t.Errorf("cylinder height = %v, want near 2", dims.Z)
	}
}

func TestDefaultCells(t *testing.T) {
	if _, err := Box(1, 1, 1, 0); err != nil {
		t.Fatalf("Box with default cells: %v", err)
	}
}
