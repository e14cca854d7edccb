package viz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flycam/internal/scene"
)

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.Project(mgl64.Vec3{0, 0, -10}, 101, 51)
	if !ok {
		t.Fatal("point ahead should be visible")
	}
	if x != 50 || y != 25 {
		t.Errorf("expected (50,25), got (%d,%d)", x, y)
	}
	if math.Abs(depth-10) > 1e-9 {
		t.Errorf("expected depth 10, got %f", depth)
	}

	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 10}, 101, 51); ok {
		t.Error("point behind should not project")
	}
	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, -2000}, 101, 51); ok {
		t.Error("point past far plane should not project")
	}
}

func TestCameraProjectUpIsUp(t *testing.T) {
	cam := NewCamera()

	_, y, _, _ := cam.Project(mgl64.Vec3{0, 1, -10}, 101, 51)
	if y >= 25 {
		t.Errorf("point above should land above centre, got y=%d", y)
	}
	x, _, _, _ := cam.Project(mgl64.Vec3{1, 0, -10}, 101, 51)
	if x <= 50 {
		t.Errorf("point right should land right of centre, got x=%d", x)
	}
}

func TestCameraFollow(t *testing.T) {
	n := scene.NewNode("rig")
	n.Position = mgl64.Vec3{5, 0, 0}
	n.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	n.UpdateWorld()

	cam := NewCamera()
	cam.Follow(n)

	if !cam.Position.ApproxEqualThreshold(mgl64.Vec3{5, 0, 0}, 1e-9) {
		t.Errorf("unexpected camera position %v", cam.Position)
	}

	// Rotated a quarter turn left, the rig looks down -X.
	x, y, _, ok := cam.Project(mgl64.Vec3{-5, 0, 0}, 101, 51)
	if !ok || x != 50 || y != 25 {
		t.Errorf("expected centre projection, got (%d,%d) ok=%v", x, y, ok)
	}
}

func TestRenderCube(t *testing.T) {
	c := NewCanvas(20, 10)
	cam := NewCamera()

	if n := Render(c, CubeWireframe(mgl64.Vec3{0, 0, -10}, 2), cam); n != 12 {
		t.Errorf("expected 12 edges drawn, got %d", n)
	}

	c.Clear()
	if n := Render(c, CubeWireframe(mgl64.Vec3{0, 0, 10}, 2), cam); n != 0 {
		t.Errorf("cube behind camera drew %d edges", n)
	}
}

func TestRenderClipsNearPlane(t *testing.T) {
	c := NewCanvas(20, 10)
	w := NewWireframe()
	w.AddEdge(mgl64.Vec3{1, 0, 5}, mgl64.Vec3{1, 0, -5})

	if n := Render(c, w, NewCamera()); n != 1 {
		t.Errorf("expected clipped edge to draw, got %d", n)
	}
}

func TestRenderNilInputs(t *testing.T) {
	if Render(nil, NewWireframe(), NewCamera()) != 0 {
		t.Error("nil canvas should draw nothing")
	}
	if Render(NewCanvas(0, 0), Scene(), NewCamera()) != 0 {
		t.Error("empty canvas should draw nothing")
	}
}

func TestClipRect(t *testing.T) {
	if _, _, _, _, ok := clipRect(-10, -10, -5, -5, 100, 100); ok {
		t.Error("segment outside should be rejected")
	}

	x1, y1, x2, y2, ok := clipRect(-50, 50, 150, 50, 100, 100)
	if !ok {
		t.Fatal("crossing segment rejected")
	}
	if x1 != 0 || x2 != 100 || y1 != 50 || y2 != 50 {
		t.Errorf("unexpected clip (%f,%f)-(%f,%f)", x1, y1, x2, y2)
	}
}

func TestSceneWireframe(t *testing.T) {
	tests := []struct {
		name string
		w    *Wireframe
		want int
	}{
		{"cube", CubeWireframe(mgl64.Vec3{}, 1), 12},
		{"axes", AxesWireframe(1), 3},
		{"grid", GridWireframe(40, 5, 0), 34},
		{"grid bad step", GridWireframe(40, 0, 0), 0},
		{"field", FieldWireframe(5, 12, 2), 300},
		{"scene", Scene(), 337},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.w.Edges); got != tt.want {
				t.Errorf("expected %d edges, got %d", tt.want, got)
			}
		})
	}
}
