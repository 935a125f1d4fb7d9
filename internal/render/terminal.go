package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pixil98/go-sol/internal/game"
	"github.com/pixil98/go-sol/internal/ui"
)

// DefaultScale is world units per terminal column at zoom 1.
const DefaultScale = 0.5

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePaused   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleTutorial = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stylePlanet   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleHero     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLaani    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleEhar     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTransit  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleGrid     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePoint    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
)

// Terminal draws frames onto a tcell screen. Rows are treated as twice
// as tall as columns are wide.
type Terminal struct {
	screen  tcell.Screen
	printer *message.Printer
	scale   float32

	view game.View
	dims *ui.DisplayDimensions
}

type TerminalOpt func(*Terminal)

func WithScale(scale float32) TerminalOpt {
	return func(t *Terminal) {
		t.scale = scale
	}
}

// WithLanguage sets the locale used for numbers in the HUD.
func WithLanguage(tag language.Tag) TerminalOpt {
	return func(t *Terminal) {
		t.printer = message.NewPrinter(tag)
	}
}

func NewTerminal(screen tcell.Screen, opts ...TerminalOpt) *Terminal {
	t := &Terminal{
		screen:  screen,
		printer: message.NewPrinter(language.English),
		scale:   DefaultScale,
		dims:    &ui.DisplayDimensions{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dimensions is the screen size in cells as of the last Begin.
func (t *Terminal) Dimensions() *ui.DisplayDimensions {
	return t.dims
}

func (t *Terminal) Begin(v game.View) {
	t.view = v
	if t.view.Zoom <= 0 {
		t.view.Zoom = game.DefaultZoom
	}
	t.screen.Clear()
	t.dims.Set(t.screen.Size())
}

// cell maps a world position to a screen cell.
func (t *Terminal) cell(p game.Vec2) (int, int, bool) {
	unit := t.scale * t.view.Zoom
	d := p.Sub(t.view.Center)
	x := t.dims.Width()/2 + int(math.Floor(float64(d.X/unit)))
	y := t.dims.Height()/2 - int(math.Ceil(float64(d.Y/(2*unit))))
	return x, y, x >= 0 && y >= 0 && x < t.dims.Width() && y < t.dims.Height()
}

func (t *Terminal) put(p game.Vec2, r rune, style tcell.Style) {
	if x, y, ok := t.cell(p); ok {
		t.screen.SetContent(x, y, r, nil, style)
	}
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.dims.Width() {
			return
		}
		if x >= 0 && y >= 0 && y < t.dims.Height() {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

func (t *Terminal) DrawPlanet(p *game.Planet) {
	t.put(p.Position(), 'O', stylePlanet)
	if x, y, ok := t.cell(p.Position()); ok {
		t.text(x+2, y, p.Name, stylePlanet)
	}
}

func (t *Terminal) DrawObject(o game.Object) {
	switch v := o.(type) {
	case *game.Ship:
		t.put(v.Position(), shipRune(v.Angle()), shipStyle(v.Pilot()))
	case *game.Transcendent:
		t.put(v.Position(), '*', styleTransit)
	default:
		t.put(o.Position(), '.', styleHUD)
	}
}

func shipStyle(p game.Pilot) tcell.Style {
	switch {
	case p == nil:
		return styleHUD
	case p.IsPlayer():
		return styleHero
	case p.Faction() == game.FactionEhar:
		return styleEhar
	default:
		return styleLaani
	}
}

// shipRune points the glyph along the nearest axis of angle.
func shipRune(angle float32) rune {
	a := game.NormAngle(angle)
	switch {
	case a < 45 || a >= 315:
		return '>'
	case a < 135:
		return '^'
	case a < 225:
		return '<'
	default:
		return 'v'
	}
}

func (t *Terminal) DrawGrid(size float32) {
	if size <= 0 {
		return
	}
	unit := t.scale * t.view.Zoom
	halfW := float32(t.dims.Width()) / 2 * unit
	halfH := float32(t.dims.Height()) * unit

	for x := floorTo(t.view.Center.X-halfW, size); x <= t.view.Center.X+halfW; x += size {
		for y := floorTo(t.view.Center.Y-halfH, size); y <= t.view.Center.Y+halfH; y += size {
			t.put(game.Vec2{X: x, Y: y}, '+', styleGrid)
		}
	}
}

func floorTo(v, step float32) float32 {
	return float32(math.Floor(float64(v/step))) * step
}

func (t *Terminal) DrawPoint(p game.Vec2, _ float32) {
	t.put(p, 'x', stylePoint)
}

// DrawHUD writes status on the top rows and the tutorial hint on the
// bottom row.
func (t *Terminal) DrawHUD(h game.HUD) {
	t.text(0, 0, t.printer.Sprintf("$%d  life %d/%d", int(h.Money), int(h.Life), int(h.MaxLife)), styleHUD)
	if h.Paused {
		const paused = "PAUSED"
		t.text(t.dims.Width()-len(paused), 0, paused, stylePaused)
	}
	if h.Target != "" {
		t.text(0, 1, "target: "+h.Target, styleHUD)
	}
	if h.Tutorial != "" {
		t.text(0, t.dims.Height()-1, h.Tutorial, styleTutorial)
	}
}

func (t *Terminal) End() error {
	t.screen.Show()
	return nil
}
