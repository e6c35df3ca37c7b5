package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/camera"
	"github.com/pthm-cable/npcbrain/config"
	"github.com/pthm-cable/npcbrain/game"
	"github.com/pthm-cable/npcbrain/navigation"
	"github.com/pthm-cable/npcbrain/route"
)

// screenPos projects a ground-plane point.
func screenPos(cam *camera.Camera, p r3.Vec) rl.Vector2 {
	x, y := cam.WorldToScreen(float32(p.X), float32(p.Z))
	return rl.NewVector2(x, y)
}

// screenRect projects an axis-aligned box.
func screenRect(cam *camera.Camera, b config.Box) rl.Rectangle {
	// +Z is up on screen, so the max Z corner is the top-left
	tl := screenPos(cam, r3.Vec{X: b.Min.X, Z: b.Max.Z})
	br := screenPos(cam, r3.Vec{X: b.Max.X, Z: b.Min.Z})
	return rl.NewRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
}

// screenAngle returns the raylib angle (degrees, clockwise from +X on
// screen) of a ground-plane direction.
func screenAngle(dir r3.Vec) float32 {
	return float32(math.Atan2(-dir.Z, dir.X) * 180 / math.Pi)
}

// drawWorld draws the ground, obstacles and patrol route.
func drawWorld(cam *camera.Camera, th Theme, cfg *config.Config, rt *route.Route) {
	ground := config.Box{Max: r3.Vec{X: cfg.World.Width, Z: cfg.World.Depth}}
	rl.DrawRectangleRec(screenRect(cam, ground), th.Ground)

	for _, ob := range cfg.World.Obstacles {
		rl.DrawRectangleRec(screenRect(cam, ob), th.Obstacle)
	}

	n := rt.Len()
	for i := 0; i < n; i++ {
		a := screenPos(cam, rt.At(i))
		b := screenPos(cam, rt.At(rt.Next(i)))
		if n > 1 {
			rl.DrawLineEx(a, b, 2, th.Route)
		}
		rl.DrawCircleV(a, 4, th.Route)
	}
}

// drawNavGrid shades the grid cells agents cannot enter, obstacle inflation
// included.
func drawNavGrid(cam *camera.Camera, th Theme, grid *navigation.NavGrid) {
	w, d := grid.Size()
	cs := grid.CellSize()
	for gz := 0; gz < d; gz++ {
		for gx := 0; gx < w; gx++ {
			if !grid.IsBlocked(gx, gz) {
				continue
			}
			lo := r3.Vec{X: float64(gx) * cs, Z: float64(gz) * cs}
			cell := config.Box{Min: lo, Max: r3.Vec{X: lo.X + cs, Z: lo.Z + cs}}
			rl.DrawRectangleRec(screenRect(cam, cell), th.Blocked)
		}
	}
}

// drawAgent draws one agent with its vision cone and path.
func drawAgent(cam *camera.Camera, th Theme, params config.BehaviorConfig, a game.AgentView, showCone, showPath bool) {
	pos := screenPos(cam, a.Position)
	color := CueColor(a.Cue)

	if showPath && len(a.Path) > 0 {
		prev := pos
		for _, p := range a.Path {
			next := screenPos(cam, p)
			rl.DrawLineV(prev, next, th.Path)
			prev = next
		}
	}

	if showCone {
		heading := screenAngle(a.Forward)
		half := float32(params.VisionHalfAngle)
		rl.DrawCircleSector(pos, cam.ScaleLength(float32(params.VisionDistance)),
			heading-half, heading+half, 24, rl.Fade(color, 0.15))
	}

	radius := max(cam.ScaleLength(float32(a.Radius)), 3)
	rl.DrawCircleV(pos, radius, color)

	tip := screenPos(cam, r3.Add(a.Position, r3.Scale(a.Radius*2, a.Forward)))
	rl.DrawLineEx(pos, tip, 2, rl.Black)

	rl.DrawText(a.Name, int32(pos.X+radius+2), int32(pos.Y-radius), 10, th.Label)
}

// drawTarget draws the target and its roam goal.
func drawTarget(cam *camera.Camera, th Theme, t game.TargetView) {
	pos := screenPos(cam, t.Position)
	radius := max(cam.ScaleLength(float32(t.Radius)), 3)
	rl.DrawCircleV(pos, radius, th.Target)
	if t.HasGoal {
		goal := screenPos(cam, t.Goal)
		rl.DrawCircleLines(int32(goal.X), int32(goal.Y), 5, th.Target)
	}
}
