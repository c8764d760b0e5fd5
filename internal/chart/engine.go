package chart

import (
	"fmt"
	"math"
	"strings"

	"TradePilot/internal/model"
)

// Margins inset the plot area within the virtual coordinate box.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Viewport is a fixed virtual coordinate box. All geometry is computed in
// this space; the rendering surface scales it to real pixels at draw time,
// so hover math is independent of the rendered size.
type Viewport struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Margins Margins `json:"margins"`
}

// DefaultViewport matches the dashboard's chart view box.
func DefaultViewport() Viewport {
	return Viewport{
		Width:   1000,
		Height:  420,
		Margins: Margins{Top: 20, Right: 20, Bottom: 40, Left: 60},
	}
}

// Direction is the binary trend classification that drives chart colors.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// Tick is one axis tick in virtual coordinates.
type Tick struct {
	Value float64 `json:"value"` // close price for Y ticks, bucket index for X ticks
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Geometry holds everything the rendering surface needs to draw one frame.
type Geometry struct {
	YTicks   []Tick `json:"y_ticks"`
	XTicks   []Tick `json:"x_ticks"`
	LinePath string `json:"line_path"`
	AreaPath string `json:"area_path"`
}

// Engine maps a series of aligned points into the virtual coordinate box and
// tracks the single hovered index. Everything except the hover index is
// recomputed per call, so a data change only requires building a new Engine.
type Engine struct {
	points []AlignedPoint
	tf     model.Timeframe
	vp     Viewport
	hover  int // -1 while idle
}

// NewEngine builds an engine over the aligned series.
func NewEngine(points []AlignedPoint, tf model.Timeframe, vp Viewport) *Engine {
	return &Engine{points: points, tf: tf, vp: vp, hover: -1}
}

// Len returns the number of points in the series.
func (e *Engine) Len() int { return len(e.points) }

// Renderable reports whether the series can be drawn at all. A series of
// fewer than two points has no index-to-x mapping, so rendering is disabled
// instead of dividing by zero.
func (e *Engine) Renderable() bool { return len(e.points) >= 2 }

func (e *Engine) plotArea() (left, top, width, height float64) {
	m := e.vp.Margins
	return m.Left, m.Top, e.vp.Width - m.Left - m.Right, e.vp.Height - m.Top - m.Bottom
}

// closeRange returns the close extrema and the guarded span used as the
// Y-axis denominator. The span defaults to 1 when the series is flat.
func (e *Engine) closeRange() (lo, hi, span float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range e.points {
		if p.Close < lo {
			lo = p.Close
		}
		if p.Close > hi {
			hi = p.Close
		}
	}
	span = hi - lo
	if span == 0 {
		span = 1
	}
	return lo, hi, span
}

// Project maps a bucket index to virtual coordinates. The index is clamped
// to the series bounds.
func (e *Engine) Project(i int) (x, y float64) {
	if len(e.points) == 0 {
		return 0, 0
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.points)-1 {
		i = len(e.points) - 1
	}
	left, top, w, h := e.plotArea()
	lo, _, span := e.closeRange()

	step := 0.0
	if len(e.points) > 1 {
		step = w / float64(len(e.points)-1)
	}
	x = left + float64(i)*step
	y = top + (1-(e.points[i].Close-lo)/span)*h
	return x, y
}

// Unproject maps a virtual X coordinate back to the nearest bucket index,
// clamped to [0, len-1].
func (e *Engine) Unproject(x float64) int {
	n := len(e.points)
	if n == 0 {
		return 0
	}
	left, _, w, _ := e.plotArea()
	if w <= 0 || n == 1 {
		return 0
	}
	i := int(math.Round((x - left) / w * float64(n-1)))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	return i
}

// Geometry computes axis ticks and the line/area paths for the current
// series. It returns nil when the series is not renderable.
func (e *Engine) Geometry() *Geometry {
	if !e.Renderable() {
		return nil
	}
	left, top, _, h := e.plotArea()
	lo, hi, span := e.closeRange()

	g := &Geometry{}

	// Five Y ticks evenly spaced across the close range. A flat series
	// collapses every tick onto the same value; the guarded span keeps the
	// positions finite.
	for k := 0; k < 5; k++ {
		v := lo + float64(k)*(hi-lo)/4
		g.YTicks = append(g.YTicks, Tick{
			Value: v,
			X:     left,
			Y:     top + (1-(v-lo)/span)*h,
		})
	}

	// Up to five X ticks across the index range.
	n := len(e.points)
	count := 5
	if n < count {
		count = n
	}
	for k := 0; k < count; k++ {
		idx := k * (n - 1) / (count - 1)
		x, _ := e.Project(idx)
		g.XTicks = append(g.XTicks, Tick{Value: float64(idx), X: x, Y: top + h})
	}

	var line strings.Builder
	for i := range e.points {
		x, y := e.Project(i)
		if i == 0 {
			fmt.Fprintf(&line, "M %.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&line, " L %.2f,%.2f", x, y)
		}
	}
	g.LinePath = line.String()

	firstX, _ := e.Project(0)
	lastX, _ := e.Project(n - 1)
	bottom := top + h
	g.AreaPath = fmt.Sprintf("%s L %.2f,%.2f L %.2f,%.2f Z", g.LinePath, lastX, bottom, firstX, bottom)

	return g
}

// SetHover resolves a real pointer X coordinate against the rendered width,
// rescales it into the virtual box, and updates the hover state. It returns
// the hovered index, or false when the pointer falls outside the plot's
// horizontal extent (which transitions the state back to idle).
func (e *Engine) SetHover(pointerX, renderedWidth float64) (int, bool) {
	if !e.Renderable() || renderedWidth <= 0 {
		e.hover = -1
		return 0, false
	}
	virtualX := pointerX / renderedWidth * e.vp.Width
	left, _, w, _ := e.plotArea()
	if virtualX < left || virtualX > left+w {
		e.hover = -1
		return 0, false
	}
	e.hover = e.Unproject(virtualX)
	return e.hover, true
}

// ClearHover transitions the hover state to idle (pointer leave, touch end).
func (e *Engine) ClearHover() { e.hover = -1 }

// Hover returns the hovered index, if any.
func (e *Engine) Hover() (int, bool) {
	if e.hover < 0 {
		return 0, false
	}
	return e.hover, true
}

// Trend classifies the series direction: UP when the last close is at or
// above the first, DOWN otherwise. Flat series count as UP.
func (e *Engine) Trend() Direction {
	if len(e.points) == 0 || e.points[len(e.points)-1].Close >= e.points[0].Close {
		return DirectionUp
	}
	return DirectionDown
}
