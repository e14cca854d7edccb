package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Node is a scene-graph object with a position, an orientation and a cached
// world matrix. It satisfies the flight package's Transformable and Thruster.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	// One-shot pointer thrust flags.
	MoveForward  bool
	MoveBackward bool

	parent   *Node
	children []*Node
	local    mgl64.Mat4
	world    mgl64.Mat4
	dirty    bool
}

func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		local:    mgl64.Ident4(),
		world:    mgl64.Ident4(),
		dirty:    true,
	}
}

// Add reparents child under n.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	child.dirty = true
}

func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.dirty = true
			return
		}
	}
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }

// TranslateLocal moves the node along its own axes.
func (n *Node) TranslateLocal(dx, dy, dz float64) {
	n.Position = n.Position.Add(n.Rotation.Rotate(mgl64.Vec3{dx, dy, dz}))
}

// ComposeLocalRotation applies delta in the node's local frame.
func (n *Node) ComposeLocalRotation(delta mgl64.Quat) {
	n.Rotation = n.Rotation.Mul(delta)
}

func (n *Node) MarkWorldDirty() { n.dirty = true }
func (n *Node) WorldDirty() bool { return n.dirty }

func (n *Node) SetMoveForward(on bool)  { n.MoveForward = on }
func (n *Node) SetMoveBackward(on bool) { n.MoveBackward = on }

// Reset places the node at pos with orientation rot.
func (n *Node) Reset(pos mgl64.Vec3, rot mgl64.Quat) {
	n.Position = pos
	n.Rotation = rot.Normalize()
	n.MoveForward, n.MoveBackward = false, false
	n.dirty = true
}

// LookAt orients the node so its -Z axis points at target.
func (n *Node) LookAt(target, up mgl64.Vec3) {
	dir := target.Sub(n.Position)
	if dir.Len() == 0 {
		return
	}
	face := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, -1}, dir.Normalize())
	if right := dir.Cross(up); right.Len() > 1e-9 {
		trueUp := right.Cross(dir).Normalize()
		face = mgl64.QuatBetweenVectors(face.Rotate(mgl64.Vec3{0, 1, 0}), trueUp).Mul(face)
	}
	n.Rotation = face.Normalize()
	n.dirty = true
}

// LocalMatrix composes translation, rotation and scale.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z()).
		Mul4(n.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// UpdateWorld recomputes the world matrices of n and its descendants where
// needed. The rendering side calls this; the controller only marks.
func (n *Node) UpdateWorld() {
	n.updateWorld(false)
}

func (n *Node) updateWorld(force bool) {
	if n.dirty || force {
		n.local = n.LocalMatrix()
		if n.parent != nil {
			n.world = n.parent.world.Mul4(n.local)
		} else {
			n.world = n.local
		}
		n.dirty = false
		force = true
	}
	for _, c := range n.children {
		c.updateWorld(force)
	}
}

// WorldMatrix returns the matrix computed by the last UpdateWorld.
func (n *Node) WorldMatrix() mgl64.Mat4 { return n.world }

func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.world.Col(3).Vec3()
}

// Forward, Up and Right are the node's local axes in parent space.
func (n *Node) Forward() mgl64.Vec3 { return n.Rotation.Rotate(mgl64.Vec3{0, 0, -1}) }
func (n *Node) Up() mgl64.Vec3      { return n.Rotation.Rotate(mgl64.Vec3{0, 1, 0}) }
func (n *Node) Right() mgl64.Vec3   { return n.Rotation.Rotate(mgl64.Vec3{1, 0, 0}) }
