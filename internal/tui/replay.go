package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/flycam/internal/sim"
	"github.com/san-kum/flycam/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws replay samples to a terminal as they are produced. It
// implements sim.Observer.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
	world     *viz.Wireframe
	cam       *viz.Camera
	frames    int
}

// NewLiveRenderer draws at most frameRate frames per second; zero draws
// every step.
func NewLiveRenderer(out io.Writer, cols, rows, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    viz.NewCanvas(cols, rows),
		world:     viz.Scene(),
		cam:       viz.NewCamera(),
	}
}

func (r *LiveRenderer) OnStep(s sim.Sample) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.cam.Position = s.Position
	r.cam.Rotation = s.Rotation
	r.canvas.Clear()
	viz.Render(r.canvas, r.world, r.cam)

	if r.frames == 0 {
		fmt.Fprint(r.out, hideCursor)
	}
	r.frames++
	fmt.Fprint(r.out, clearScreen)
	fmt.Fprintln(r.out, r.canvas.String())
	fmt.Fprintf(r.out, "t=%6.2fs  pos %7.2f %7.2f %7.2f\n", s.Time, s.Position.X(), s.Position.Y(), s.Position.Z())
}

// Close restores the cursor.
func (r *LiveRenderer) Close() {
	if r.frames > 0 {
		fmt.Fprint(r.out, showCursor)
	}
}

func (r *LiveRenderer) Frames() int { return r.frames }
