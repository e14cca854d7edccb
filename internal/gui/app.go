package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/flycam/internal/config"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/session"
	"github.com/san-kum/flycam/internal/viz"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColWire    = rl.NewColor(180, 180, 180, 255)
)

// App is the windowed flight view. The session's surface covers the window.
type App struct {
	Session *session.Session
	Camera  rl.Camera3D
	Preset  string

	world  *viz.Wireframe
	pump   *pump
	watch  *config.Watcher
	log    *logrus.Entry
	status string
}

type raylibDevice struct{}

func (raylibDevice) KeyPressed(k int32) bool     { return rl.IsKeyPressed(k) }
func (raylibDevice) KeyReleased(k int32) bool    { return rl.IsKeyReleased(k) }
func (raylibDevice) KeyDown(k int32) bool        { return rl.IsKeyDown(k) }
func (raylibDevice) ButtonPressed(b int32) bool  { return rl.IsMouseButtonPressed(rl.MouseButton(b)) }
func (raylibDevice) ButtonReleased(b int32) bool { return rl.IsMouseButtonReleased(rl.MouseButton(b)) }
func (raylibDevice) MousePosition() (float64, float64) {
	p := rl.GetMousePosition()
	return float64(p.X), float64(p.Y)
}

func initWindow(w, h int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), "flycam")
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyEscape)
}

// Run opens a window and blocks until it is closed. watch may be nil.
func Run(sess *session.Session, preset string, watch *config.Watcher, log *logrus.Logger) {
	cfg := sess.Config()
	initWindow(cfg.Viewport.Width, cfg.Viewport.Height)
	defer rl.CloseWindow()

	app := NewApp(sess, preset, watch, log)
	app.RunLoop()
}

func NewApp(sess *session.Session, preset string, watch *config.Watcher, log *logrus.Logger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{
		Session: sess,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 30),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			60.0,
			rl.CameraPerspective,
		),
		Preset: preset,
		world:  viz.Scene(),
		pump:   newPump(),
		watch:  watch,
		log:    log.WithField("component", "gui"),
	}
}

func (a *App) RunLoop() {
	a.resize()
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize()
	}
	a.pollConfig()

	for _, e := range a.pump.poll(raylibDevice{}) {
		a.Session.Dispatch(e)
	}
	a.Session.Tick(float64(rl.GetFrameTime()))
	a.followRig()
}

func (a *App) resize() {
	a.Session.Surface.SetBounds(input.Rect{
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
	})
}

func (a *App) pollConfig() {
	if a.watch == nil {
		return
	}
	select {
	case path, ok := <-a.watch.Changes:
		if !ok {
			a.watch = nil
			return
		}
		cfg, err := config.Load(path)
		if err == nil {
			err = a.Session.Apply(cfg)
		}
		if err != nil {
			a.status = err.Error()
			a.log.WithError(err).Warn("config reload failed")
			return
		}
		a.status = "config reloaded"
		a.log.Info("configuration reloaded")
	case err, ok := <-a.watch.Errors:
		if ok {
			a.status = err.Error()
			a.log.WithError(err).Warn("config watcher error")
		}
	default:
	}
}

func (a *App) followRig() {
	rig := a.Session.Rig
	pos := rig.WorldPosition()
	a.Camera.Position = toVector3(pos)
	a.Camera.Target = toVector3(pos.Add(rig.Forward()))
	a.Camera.Up = toVector3(rig.Up())
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	for _, e := range a.world.Edges {
		rl.DrawLine3D(toVector3(e.Start), toVector3(e.End), ColWire)
	}
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	snap := a.Session.Snapshot()
	p := snap.Position
	h := int32(rl.GetScreenHeight())

	rl.DrawText("flycam", 30, 30, 24, ColSelect)
	rl.DrawText(":: "+a.Preset, 130, 34, 16, ColText)
	rl.DrawText(fmt.Sprintf("pos %7.2f %7.2f %7.2f", p.X(), p.Y(), p.Z()), 30, 64, 16, ColText)
	rl.DrawText(fmt.Sprintf("speed %.2f", a.Session.Controller.MovementSpeed), 30, 84, 16, ColText)

	x := int32(30)
	for _, f := range []struct {
		name string
		on   bool
	}{{"AUTO", snap.AutoForward}, {"DRAG", snap.DragToLook}, {"SLOW", snap.Slow}} {
		col := ColTextDim
		if f.on {
			col = ColSelect
		}
		rl.DrawText(f.name, x, 108, 16, col)
		x += rl.MeasureText(f.name, 16) + 12
	}

	if a.status != "" {
		rl.DrawText(a.status, 30, h-70, 14, ColText)
	}
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
	rl.DrawText("[WASD] MOVE  [R/F] RISE/SINK  [ARROWS/MOUSE] LOOK  [Q/E] ROLL  [ESC] QUIT", 200, h-40, 14, ColTextDim)
}
