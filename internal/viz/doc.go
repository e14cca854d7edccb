// Package viz renders the flight scene into a braille [Canvas].
//
// A [Camera] follows a rig's pose and projects [Wireframe] edges with a
// perspective divide. Edges are clipped against the near plane and the
// screen before rasterising, so geometry behind or beside the viewer
// costs nothing.
//
// [Theme] values colour the terminal HUD drawn around the canvas.
package viz
