package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/flag-arena/asset"
	"github.com/lixenwraith/flag-arena/constants"
	"github.com/lixenwraith/flag-arena/engine"
	"github.com/lixenwraith/flag-arena/vmath"
)

// FlagSource supplies imagery by body handle; nil means draw a plain tint
type FlagSource interface {
	Flag(handle int) *asset.Flag
}

// TerminalRenderer draws snapshots onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	flags  FlagSource
	width  float64
	height float64
}

// NewTerminalRenderer creates a renderer for an arena of the given size in world units
func NewTerminalRenderer(screen tcell.Screen, flags FlagSource, width, height float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		flags:  flags,
		width:  width,
		height: height,
	}
}

// Render draws one frame
func (r *TerminalRenderer) Render(s engine.Snapshot) {
	cols, rows := r.screen.Size()
	vp := newViewport(cols, rows, r.width, r.height)
	defaultStyle := tcell.StyleDefault.Background(RgbBackground.Tcell())

	r.screen.Fill(' ', defaultStyle)

	r.drawRing(vp, &s, defaultStyle)

	for _, b := range s.Bodies {
		r.drawBody(vp, b, b.Position, 1, defaultStyle)
	}
	for _, b := range s.Bodies {
		r.drawLabel(vp, b, defaultStyle)
	}

	switch s.State {
	case engine.StateWin:
		r.drawWinner(vp, &s, defaultStyle)
	case engine.StateCountdown:
		r.drawCountdown(vp, &s)
	}

	r.drawStatusBar(cols, &s)
	r.screen.Show()
}

// drawRing plots evenly spaced dots, skipping those inside a gap
func (r *TerminalRenderer) drawRing(vp viewport, s *engine.Snapshot, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbRing.Tcell())
	for i := range constants.RingDotCount {
		a := float64(i) * vmath.TwoPi / constants.RingDotCount
		if inGap(a, s.GapCenters, s.GapHalfWidth) {
			continue
		}
		x, y := vp.cell(s.Center.Add(vmath.FromPolar(a, s.RingRadius)))
		if vp.visible(x, y) {
			r.screen.SetContent(x, y, '•', nil, style)
		}
	}
}

func inGap(a float64, centers []float64, halfWidth float64) bool {
	for _, g := range centers {
		if math.Abs(vmath.AngleDiff(a, g)) < halfWidth {
			return true
		}
	}
	return false
}

// drawBody paints the flag rectangle centered at `at`, magnified by zoom
// Bodies smaller than a cell still get one marker cell
func (r *TerminalRenderer) drawBody(vp viewport, b engine.BodyView, at vmath.Vec2, zoom float64, defaultStyle tcell.Style) {
	flag := r.flag(b.Handle)
	halfW, halfH := r.extent(b, flag)
	halfW *= zoom
	halfH *= zoom

	x0, y0 := vp.cell(at.Sub(vmath.V2(halfW, halfH)))
	x1, y1 := vp.cell(at.Add(vmath.V2(halfW, halfH)))

	drawn := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !vp.visible(x, y) {
				continue
			}
			w := vp.world(x, y)
			u := (w.X - (at.X - halfW)) / (2 * halfW)
			v := (w.Y - (at.Y - halfH)) / (2 * halfH)
			if u < 0 || u >= 1 || v < 0 || v >= 1 {
				continue
			}
			c := r.colorAt(flag, b.Handle, u, v)
			r.screen.SetContent(x, y, '█', nil, defaultStyle.Foreground(c.Tcell()))
			drawn++
		}
	}

	if drawn == 0 {
		x, y := vp.cell(at)
		if vp.visible(x, y) {
			c := fallbackColor(b.Handle)
			if flag != nil {
				c = FromRGBA(flag.Color)
			}
			r.screen.SetContent(x, y, '●', nil, defaultStyle.Foreground(c.Tcell()))
		}
	}
}

// extent is the half size of the drawn rectangle in world units
func (r *TerminalRenderer) extent(b engine.BodyView, flag *asset.Flag) (float64, float64) {
	if flag == nil || flag.Image == nil {
		return b.Radius, b.Radius
	}
	bounds := flag.Image.Bounds()
	return float64(bounds.Dx()) / 2, float64(bounds.Dy()) / 2
}

func (r *TerminalRenderer) colorAt(flag *asset.Flag, handle int, u, v float64) RGB {
	if flag == nil || flag.Image == nil {
		return fallbackColor(handle)
	}
	return FromRGBA(flag.Sample(u, v))
}

func (r *TerminalRenderer) flag(handle int) *asset.Flag {
	if r.flags == nil {
		return nil
	}
	return r.flags.Flag(handle)
}

// drawLabel writes the code under a contained body
func (r *TerminalRenderer) drawLabel(vp viewport, b engine.BodyView, defaultStyle tcell.Style) {
	if b.Escaped {
		return
	}
	x, y := vp.cell(b.Position.Add(vmath.V2(0, b.Radius)))
	r.drawCentered(vp, x, y+1, b.Code, defaultStyle.Foreground(RgbLabel.Tcell()))
}

// drawWinner shows the banner and the pulsing winner at the ring center with its name
func (r *TerminalRenderer) drawWinner(vp viewport, s *engine.Snapshot, defaultStyle tcell.Style) {
	w, ok := s.WinnerView()
	if !ok {
		return
	}

	pulse := 1 + constants.WinnerPulseAmplitude*math.Sin(s.WinTime*constants.WinnerPulseRate)
	zoom := constants.WinnerZoom * pulse
	r.drawBody(vp, w, s.Center, zoom, defaultStyle)

	cx, _ := vp.cell(s.Center)
	banner := defaultStyle.Foreground(RgbWinner.Tcell()).Bold(true)
	r.drawCentered(vp, cx, constants.StatusRows+1, "WINNER", banner)

	_, halfH := r.extent(w, r.flag(w.Handle))
	_, y := vp.cell(s.Center.Add(vmath.V2(0, halfH*zoom)))
	r.drawCentered(vp, cx, y+1, w.Label, defaultStyle.Foreground(RGBWhite.Tcell()).Bold(true))
}

func (r *TerminalRenderer) drawCountdown(vp viewport, s *engine.Snapshot) {
	if s.Countdown <= 0 {
		return
	}
	x, y := vp.cell(s.Center)
	style := tcell.StyleDefault.Background(RgbCountdown.Tcell()).Foreground(RgbCountdown.Contrast().Tcell()).Bold(true)
	r.drawCentered(vp, x, y, fmt.Sprintf(" %d ", s.Countdown), style)
}

func (r *TerminalRenderer) drawStatusBar(cols int, s *engine.Snapshot) {
	style := tcell.StyleDefault.Background(RgbStatusBar.Tcell()).Foreground(RgbStatusBar.Contrast().Tcell())
	for x := range cols {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
	text := fmt.Sprintf(" ROUND %d  %s  %d/%d  %.1fs ", s.Round, s.State, s.Contained, s.Total, s.Elapsed)
	for i, ch := range []rune(text) {
		if i >= cols {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, style)
	}
}

// drawCentered writes text centered on column cx, clipped to the viewport
func (r *TerminalRenderer) drawCentered(vp viewport, cx, y int, text string, style tcell.Style) {
	runes := []rune(text)
	start := cx - len(runes)/2
	for i, ch := range runes {
		if vp.visible(start+i, y) {
			r.screen.SetContent(start+i, y, ch, nil, style)
		}
	}
}
