package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/npcbrain/behavior"
	"github.com/pthm-cable/npcbrain/camera"
	"github.com/pthm-cable/npcbrain/game"
)

const panelWidth = 220

// Viewer is the interactive front end of a game. It must be created after
// the raylib window.
type Viewer struct {
	g     *game.Game
	cam   *camera.Camera
	theme Theme

	showCones bool
	showPaths bool
	showGrid  bool

	screenWidth, screenHeight float32
}

// NewViewer creates a viewer showing the whole world.
func NewViewer(g *game.Game) *Viewer {
	cfg := g.Config()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	return &Viewer{
		g:            g,
		cam:          camera.New(w, h, cfg.Derived.WorldW32, cfg.Derived.WorldD32),
		theme:        DefaultTheme(),
		showCones:    true,
		showPaths:    true,
		screenWidth:  w,
		screenHeight: h,
	}
}

// Update handles input and advances the simulation.
func (v *Viewer) Update() {
	v.handleInput()
	v.g.Update()
}

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Space is the alert-break signal
	if rl.IsKeyPressed(rl.KeySpace) {
		v.g.RequestAlertBreak()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		v.g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		v.g.ToggleTarget()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		v.showCones = !v.showCones
	}
	if rl.IsKeyPressed(rl.KeyN) {
		v.showPaths = !v.showPaths
	}
	if rl.IsKeyPressed(rl.KeyG) {
		v.showGrid = !v.showGrid
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.g.SetStepsPerUpdate(v.g.StepsPerUpdate() + 1)
	}

	v.handleCameraInput()
}

// handleResize propagates window size changes to the camera.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	v.screenWidth = float32(rl.GetScreenWidth())
	v.screenHeight = float32(rl.GetScreenHeight())
	v.cam.Resize(v.screenWidth, v.screenHeight)
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyRight) {
		v.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.cam.Pan(0, -panSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(v.theme.Background)

	cfg := v.g.Config()
	drawWorld(v.cam, v.theme, cfg, v.g.Route())
	if v.showGrid {
		drawNavGrid(v.cam, v.theme, v.g.Grid())
	}

	for _, a := range v.g.Agents() {
		if v.cam.IsVisible(float32(a.Position.X), float32(a.Position.Z), float32(cfg.Behavior.VisionDistance)) {
			drawAgent(v.cam, v.theme, cfg.Behavior, a, v.showCones, v.showPaths)
		}
	}
	if t, ok := v.g.Target(); ok {
		drawTarget(v.cam, v.theme, t)
	}

	v.drawPanel()
	rl.EndDrawing()
}

// drawPanel draws the status panel and its buttons.
func (v *Viewer) drawPanel() {
	th := v.theme
	x := th.Padding
	y := th.Padding

	counts := v.g.StateCounts()
	kinds := behavior.Kinds()
	height := th.LineHeight*int32(len(kinds)+4) + 2*th.Padding + 70

	rl.DrawRectangle(x, y, panelWidth, height, th.PanelBg)
	rl.DrawRectangleLines(x, y, panelWidth, height, th.PanelBorder)

	x += th.Padding
	y += th.Padding
	rl.DrawText("npcbrain", x, y, 20, rl.White)
	y += th.LineHeight + 6

	status := "running"
	if v.g.Paused() {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("tick %d  x%d  %s", v.g.Tick(), v.g.StepsPerUpdate(), status), x, y, th.FontSize, th.Label)
	y += th.LineHeight
	perf := v.g.PerfStats()
	rl.DrawText(fmt.Sprintf("fps %d  tps %.0f  %dus", rl.GetFPS(), perf.TicksPerSecond, perf.AvgTickDuration.Microseconds()),
		x, y, th.FontSize, th.Label)
	y += th.LineHeight + 4

	rl.DrawText("states", x, y, th.FontSize, th.Header)
	y += th.LineHeight
	for _, k := range kinds {
		rl.DrawRectangle(x, y+3, 10, 10, CueColor(k.Cue()))
		rl.DrawText(fmt.Sprintf("%-14s %d", k, counts[k]), x+16, y, th.FontSize, th.Label)
		y += th.LineHeight
	}
	y += 6

	bw := float32(panelWidth-3*th.Padding) / 2
	if gui.Button(rl.NewRectangle(float32(x), float32(y), bw, 26), "Blind [Space]") {
		v.g.RequestAlertBreak()
	}
	if gui.Button(rl.NewRectangle(float32(x)+bw+float32(th.Padding), float32(y), bw, 26), "Target [T]") {
		v.g.ToggleTarget()
	}
	y += 32
	if gui.Button(rl.NewRectangle(float32(x), float32(y), bw, 26), pauseLabel(v.g.Paused())) {
		v.g.TogglePause()
	}

	rl.DrawText("C cones  N paths  G grid  , . speed  Home reset", th.Padding, int32(v.screenHeight)-22, 12, rl.Gray)
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume [P]"
	}
	return "Pause [P]"
}
