// Package renderer draws the simulation with raylib: the world, agents
// coloured by their visual cue, vision cones, paths and a small HUD.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background  rl.Color
	Ground      rl.Color
	Obstacle    rl.Color
	Blocked     rl.Color
	Route       rl.Color
	Path        rl.Color
	Target      rl.Color
	PanelBg     rl.Color
	PanelBorder rl.Color
	Header      rl.Color
	Label       rl.Color
	Padding     int32
	LineHeight  int32
	FontSize    int32
}

// DefaultTheme returns the default viewer theme.
func DefaultTheme() Theme {
	return Theme{
		Background:  rl.Color{R: 18, G: 20, B: 24, A: 255},
		Ground:      rl.Color{R: 34, G: 40, B: 36, A: 255},
		Obstacle:    rl.Color{R: 90, G: 84, B: 76, A: 255},
		Blocked:     rl.Color{R: 120, G: 60, B: 60, A: 70},
		Route:       rl.Color{R: 80, G: 140, B: 80, A: 160},
		Path:        rl.Color{R: 200, G: 200, B: 200, A: 90},
		Target:      rl.Gold,
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		Header:      rl.Yellow,
		Label:       rl.LightGray,
		Padding:     10,
		LineHeight:  18,
		FontSize:    14,
	}
}

// cueColors maps visual cue identifiers to draw colours.
var cueColors = map[string]rl.Color{
	"white":  rl.White,
	"green":  rl.Green,
	"orange": rl.Orange,
	"maroon": rl.Maroon,
	"purple": rl.Purple,
	"gray":   rl.Gray,
	"cyan":   rl.Color{R: 0, G: 220, B: 220, A: 255},
	"red":    rl.Red,
	"blue":   rl.Blue,
}

// CueColor returns the colour for a visual cue, magenta when unknown.
func CueColor(cue string) rl.Color {
	if c, ok := cueColors[cue]; ok {
		return c
	}
	return rl.Magenta
}
