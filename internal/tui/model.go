package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/flycam/internal/config"
	"github.com/san-kum/flycam/internal/input"
	"github.com/san-kum/flycam/internal/session"
	"github.com/san-kum/flycam/internal/viz"
)

const (
	frameInterval = time.Second / 60
	maxFrameDt    = 0.1

	// Rows taken by the title, the canvas frame and the HUD.
	chromeRows = 5
	chromeCols = 2
	canvasTop  = 2
	canvasLeft = 1
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// configMsg carries a reloaded configuration from the watcher.
type configMsg struct{ cfg *config.Config }

type watchErrMsg struct{ err error }

// Model is the terminal flight view.
type Model struct {
	sess   *session.Session
	held   *heldKeys
	world  *viz.Wireframe
	cam    *viz.Camera
	canvas *viz.Canvas
	styles viz.Styles
	log    *logrus.Entry
	watch  *config.Watcher
	now    func() time.Time

	preset    string
	status    string
	lastFrame time.Time
	button    input.Button
	pressed   bool
	fps       float64

	width  int
	height int
}

type Option func(*Model)

func WithTheme(name string) Option {
	return func(m *Model) { m.styles = viz.NewStyles(viz.GetTheme(name)) }
}

func WithWatcher(w *config.Watcher) Option {
	return func(m *Model) { m.watch = w }
}

func WithPreset(name string) Option {
	return func(m *Model) { m.preset = name }
}

func WithLogger(l *logrus.Logger) Option {
	return func(m *Model) { m.log = l.WithField("component", "tui") }
}

func withClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel wraps a session whose surface is an element; the model keeps its
// bounds on the canvas area.
func NewModel(sess *session.Session, opts ...Option) *Model {
	cfg := sess.Config()
	m := &Model{
		sess:   sess,
		world:  viz.Scene(),
		cam:    viz.NewCamera(),
		styles: viz.NewStyles(viz.GetTheme(viz.DefaultTheme)),
		log:    logrus.WithField("component", "tui"),
		now:    time.Now,
		preset: "custom",
		width:  80,
		height: 24,
	}
	m.held = newHeldKeys(repeatWindows(cfg))
	for _, opt := range opts {
		opt(m)
	}
	m.resize(m.width, m.height)
	return m
}

func repeatWindows(cfg *config.Config) (time.Duration, time.Duration) {
	return time.Duration(cfg.Terminal.FirstRepeatMs) * time.Millisecond,
		time.Duration(cfg.Terminal.RepeatMs) * time.Millisecond
}

func (m *Model) Init() tea.Cmd {
	m.lastFrame = m.now()
	return tea.Batch(tick(), m.waitForConfig())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.step()
		return m, tick()
	case configMsg:
		m.applyConfig(msg.cfg)
		return m, m.waitForConfig()
	case watchErrMsg:
		m.status = "config: " + msg.err.Error()
		m.log.WithError(msg.err).Warn("config reload failed")
		return m, m.waitForConfig()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.releaseKeys(m.held.releaseAll())
		return m, tea.Quit
	}

	ks, ok := translateKey(msg)
	if !ok {
		m.log.WithField("key", msg.String()).Debug("untranslated key")
		return m, nil
	}
	now := m.now()
	if ks.shift && m.held.press(input.KeyShift, now) {
		m.sess.Dispatch(input.NewKeyDown(input.KeyShift, false))
	}
	if m.held.press(ks.code, now) {
		m.sess.Dispatch(input.NewKeyDown(ks.code, ks.alt))
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		b, ok := translateButton(msg.Button)
		if !ok {
			return
		}
		m.button, m.pressed = b, true
		m.sess.Dispatch(input.NewPointerMove(x, y))
		m.sess.Dispatch(input.NewPointerDown(b))
	case tea.MouseActionRelease:
		// Most terminals do not say which button was released.
		if !m.pressed {
			return
		}
		m.pressed = false
		m.sess.Dispatch(input.NewPointerUp(m.button))
	case tea.MouseActionMotion:
		m.sess.Dispatch(input.NewPointerMove(x, y))
	}
}

func (m *Model) step() {
	now := m.now()
	dt := now.Sub(m.lastFrame).Seconds()
	m.lastFrame = now
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	if dt > 0 {
		m.fps = 0.9*m.fps + 0.1/dt
	}

	m.releaseKeys(m.held.expire(now))
	if dt > 0 {
		m.sess.Tick(dt)
	}
}

func (m *Model) releaseKeys(codes []input.Code) {
	for _, code := range codes {
		m.sess.Dispatch(input.NewKeyUp(code))
	}
}

func (m *Model) applyConfig(cfg *config.Config) {
	if err := m.sess.Apply(cfg); err != nil {
		m.status = "config: " + err.Error()
		m.log.WithError(err).Warn("rejected reloaded configuration")
		return
	}
	m.held.setWindows(repeatWindows(cfg))
	m.status = "config reloaded"
	m.log.Info("configuration reloaded")
}

func (m *Model) waitForConfig() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	w := m.watch
	return func() tea.Msg {
		select {
		case path, ok := <-w.Changes:
			if !ok {
				return nil
			}
			cfg, err := config.Load(path)
			if err != nil {
				return watchErrMsg{err}
			}
			return configMsg{cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err}
		}
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-chromeCols, 1)
	rows := max(h-chromeRows, 1)
	m.canvas = viz.NewCanvas(cols, rows)
	m.sess.Surface.SetBounds(input.Rect{
		X:      canvasLeft,
		Y:      canvasTop,
		Width:  float64(cols),
		Height: float64(rows),
	})
}
