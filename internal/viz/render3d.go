package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/flycam/internal/scene"
)

// Camera projects world points as seen from a pose looking down its local -Z.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	FOV      float64
	Near     float64
	Far      float64
}

func NewCamera() *Camera {
	return &Camera{Rotation: mgl64.QuatIdent(), FOV: mgl64.DegToRad(60), Near: 0.1, Far: 1000}
}

// Follow copies the node's world pose.
func (c *Camera) Follow(n *scene.Node) {
	w := n.WorldMatrix()
	c.Position = w.Col(3).Vec3()
	c.Rotation = mgl64.Mat4ToQuat(w).Normalize()
}

// View transforms a world point into camera space.
func (c *Camera) View(p mgl64.Vec3) mgl64.Vec3 {
	return c.Rotation.Conjugate().Rotate(p.Sub(c.Position))
}

// project maps a camera-space point to screen coordinates. ok is false for
// points at or behind the near plane.
func (c *Camera) project(v mgl64.Vec3, sw, sh int) (x, y float64, ok bool) {
	if -v.Z() < c.Near {
		return 0, 0, false
	}
	f := 1 / math.Tan(c.FOV/2)
	aspect := float64(sw) / float64(sh)
	nx := f * v.X() / -v.Z() / aspect
	ny := f * v.Y() / -v.Z()
	return (nx + 1) / 2 * float64(sw), (1 - ny) / 2 * float64(sh), true
}

// Project maps a world point to screen coordinates and reports its depth.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (x, y int, depth float64, ok bool) {
	v := c.View(p)
	fx, fy, ok := c.project(v, sw, sh)
	if !ok || -v.Z() > c.Far {
		return 0, 0, 0, false
	}
	return int(math.Floor(fx)), int(math.Floor(fy)), -v.Z(), true
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Merge(o *Wireframe)      { w.Edges = append(w.Edges, o.Edges...) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws the wireframe far to near and returns how many edges landed
// on the canvas.
func Render(c *Canvas, w *Wireframe, cam *Camera) int {
	if c == nil || w == nil || cam == nil {
		return 0
	}
	sw, sh := c.Dots()
	if sw == 0 || sh == 0 {
		return 0
	}

	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		a, b := cam.View(e.Start), cam.View(e.End)
		a, b, ok := clipNear(a, b, cam.Near)
		if !ok {
			continue
		}
		x1, y1, _ := cam.project(a, sw, sh)
		x2, y2, _ := cam.project(b, sw, sh)
		x1, y1, x2, y2, ok = clipRect(x1, y1, x2, y2, float64(sw-1), float64(sh-1))
		if !ok {
			continue
		}
		depth := -(a.Z() + b.Z()) / 2
		if depth > cam.Far {
			continue
		}
		proj = append(proj, projectedEdge{
			int(math.Round(x1)), int(math.Round(y1)),
			int(math.Round(x2)), int(math.Round(y2)),
			depth,
		})
	}

	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}
	return len(proj)
}

// clipNear trims a camera-space segment to the part in front of the near
// plane.
func clipNear(a, b mgl64.Vec3, near float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	da, db := -a.Z()-near, -b.Z()-near
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	case db < 0:
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	return a, b, true
}

// clipRect is Liang-Barsky against [0,maxX]x[0,maxY].
func clipRect(x1, y1, x2, y2, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x2-x1, y2-y1
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x1, maxX - x1, y1, maxY - y1}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func CubeWireframe(center mgl64.Vec3, size float64) *Wireframe {
	w, s := NewWireframe(), size/2
	v := make([]mgl64.Vec3, 0, 8)
	for _, d := range [][3]float64{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	} {
		v = append(v, center.Add(mgl64.Vec3(d)))
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}} {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

func AxesWireframe(l float64) *Wireframe {
	w := NewWireframe()
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{l, 0, 0})
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{0, l, 0})
	w.AddEdge(mgl64.Vec3{}, mgl64.Vec3{0, 0, l})
	return w
}

// GridWireframe is a square grid on the y=level plane centred on the origin.
func GridWireframe(half, step, level float64) *Wireframe {
	w := NewWireframe()
	if step <= 0 {
		return w
	}
	n := int(half / step)
	for i := -n; i <= n; i++ {
		o := float64(i) * step
		w.AddEdge(mgl64.Vec3{o, level, -half}, mgl64.Vec3{o, level, half})
		w.AddEdge(mgl64.Vec3{-half, level, o}, mgl64.Vec3{half, level, o})
	}
	return w
}

// FieldWireframe scatters n*n cubes over a lattice so motion has landmarks.
// Heights follow a fixed pattern, giving the same field every run.
func FieldWireframe(n int, spacing, size float64) *Wireframe {
	w := NewWireframe()
	off := float64(n-1) * spacing / 2
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h := float64((i*7+j*3)%5) * size
			w.Merge(CubeWireframe(mgl64.Vec3{float64(i)*spacing - off, h, float64(j)*spacing - off}, size))
		}
	}
	return w
}

// Scene is the default world: a ground grid, a cube field and the axes.
func Scene() *Wireframe {
	w := GridWireframe(40, 5, -2)
	w.Merge(FieldWireframe(5, 12, 2))
	w.Merge(AxesWireframe(4))
	return w
}
