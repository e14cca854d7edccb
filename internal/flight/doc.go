// Package flight translates key and pointer input into incremental motion of a rig.
//
// A [Controller] listens on an input surface, keeps one activation level per
// [Axis] and derives two vectors from them after every event:
//
//	move     = (right-left, up-down, back-forward)
//	rotation = (pitchUp-pitchDown, yawLeft-yawRight, rollLeft-rollRight)
//
// The caller's render loop invokes [Controller.Tick] once per frame with the
// elapsed time; the controller translates the rig along its own axes and
// composes a delta rotation in the rig's local frame.
//
// # Thread Safety
//
// Controller instances are NOT thread-safe. Handlers and Tick are expected to
// run on the single goroutine that owns the input loop.
package flight
