package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/orbital-swarm/vmath"
)

func TestProjectOrigin(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.Project(vmath.Vec3{})
	if !ok {
		t.Fatal("Expected origin to be visible")
	}
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("Expected origin to project to image center, got (%v, %v)", x, y)
	}
	if math.Abs(depth-cam.Distance) > 1e-9 {
		t.Errorf("Expected origin depth to equal camera distance %v, got %v", cam.Distance, depth)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := &Camera{Azimuth: 0, Elevation: 0, Distance: 10, Focal: 1.8}

	// Eye sits at (10, 0, 0) looking at origin, so x=20 is behind it
	if _, _, _, ok := cam.Project(vmath.Vec3{X: 20}); ok {
		t.Error("Expected point behind the camera to be culled")
	}
}

func TestProjectDepthOrdering(t *testing.T) {
	cam := &Camera{Azimuth: 0, Elevation: 0, Distance: 10, Focal: 1.8}

	_, _, nearDepth, ok1 := cam.Project(vmath.Vec3{X: 5})
	_, _, farDepth, ok2 := cam.Project(vmath.Vec3{X: -5})
	if !ok1 || !ok2 {
		t.Fatal("Expected both probe points to be visible")
	}
	if nearDepth >= farDepth {
		t.Errorf("Expected near point depth %v to be less than far point depth %v", nearDepth, farDepth)
	}
}

func TestOrbitClampsElevation(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.Orbit(0, 0.5)
	}
	if cam.Elevation > 1.45 {
		t.Errorf("Expected elevation to be clamped at 1.45, got %v", cam.Elevation)
	}

	for i := 0; i < 200; i++ {
		cam.Orbit(0, -0.5)
	}
	if cam.Elevation < -1.45 {
		t.Errorf("Expected elevation to be clamped at -1.45, got %v", cam.Elevation)
	}
}

func TestZoomClamps(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam.Zoom(0.5)
	}
	if cam.Distance < 4 {
		t.Errorf("Expected distance to be clamped at 4, got %v", cam.Distance)
	}

	for i := 0; i < 50; i++ {
		cam.Zoom(2.0)
	}
	if cam.Distance > 200 {
		t.Errorf("Expected distance to be clamped at 200, got %v", cam.Distance)
	}
}
