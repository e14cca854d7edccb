// Package input models the host event system the flight controller listens to.
//
// The package defines:
//
//   - [Event]: a tagged union of pointer and key events, discriminated by [Kind]
//   - [Code] and [Button]: key codes (DOM numbering) and pointer buttons
//   - [Surface]: a synchronous dispatcher standing in for a display surface
//
// A surface is either a specific element created with [NewElement] or the
// process-wide default target returned by [Global]. Only specific elements
// carry a tab index and a rendered box; the default target reports the
// viewport size with a zero offset.
//
// # Key Names
//
//	w, a, s, d ...  - letters
//	0 ... 9         - digits
//	up, down, left, right
//	shift, ctrl, alt, space, enter, escape, tab, backspace
//	f1 ... f12
package input
