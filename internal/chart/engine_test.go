package chart

import (
	"math"
	"strings"
	"testing"
	"time"

	"TradePilot/internal/model"
)

func seriesFromCloses(closes ...float64) []AlignedPoint {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	points := make([]AlignedPoint, len(closes))
	for i, c := range closes {
		points[i] = AlignedPoint{PricePoint: model.PricePoint{
			Time:  base.AddDate(0, 0, i),
			Open:  c - 1, High: c + 2, Low: c - 2, Close: c,
			Volume: 1000000,
		}}
	}
	return points
}

func TestEngine_MonotonicProjection(t *testing.T) {
	e := NewEngine(seriesFromCloses(10, 12, 8, 15, 15), model.TimeframeDay, DefaultViewport())
	for i := 0; i < e.Len(); i++ {
		for j := i + 1; j < e.Len(); j++ {
			xi, _ := e.Project(i)
			xj, _ := e.Project(j)
			if xi >= xj {
				t.Errorf("project(%d).x=%.2f must be < project(%d).x=%.2f", i, xi, j, xj)
			}
		}
	}
}

func TestEngine_ProjectionRoundTrip(t *testing.T) {
	e := NewEngine(seriesFromCloses(10, 12, 8, 15, 15), model.TimeframeDay, DefaultViewport())
	for i := 0; i < e.Len(); i++ {
		x, _ := e.Project(i)
		if got := e.Unproject(x); got != i {
			t.Errorf("unproject(project(%d)) = %d", i, got)
		}
	}
}

func TestEngine_UnprojectClamps(t *testing.T) {
	e := NewEngine(seriesFromCloses(10, 12, 8), model.TimeframeDay, DefaultViewport())
	for _, x := range []float64{-1e9, -1, 0, 500, 1e9} {
		idx := e.Unproject(x)
		if idx < 0 || idx > e.Len()-1 {
			t.Errorf("unproject(%.0f) = %d, outside [0,%d]", x, idx, e.Len()-1)
		}
	}
}

func TestEngine_TrendAndTicks(t *testing.T) {
	e := NewEngine(seriesFromCloses(10, 12, 8, 15, 15), model.TimeframeDay, DefaultViewport())
	if e.Trend() != DirectionUp {
		t.Errorf("15 >= 10, expected UP, got %s", e.Trend())
	}

	g := e.Geometry()
	if g == nil {
		t.Fatal("expected geometry for a 5-point series")
	}
	want := []float64{8, 9.75, 11.5, 13.25, 15}
	if len(g.YTicks) != 5 {
		t.Fatalf("expected 5 Y ticks, got %d", len(g.YTicks))
	}
	for i, tick := range g.YTicks {
		if tick.Value != want[i] {
			t.Errorf("Y tick %d: expected %.2f, got %.2f", i, want[i], tick.Value)
		}
	}
	if len(g.XTicks) != 5 {
		t.Errorf("expected 5 X ticks, got %d", len(g.XTicks))
	}
	if !strings.HasPrefix(g.LinePath, "M ") {
		t.Errorf("line path must start with a move: %q", g.LinePath)
	}
	if !strings.HasSuffix(g.AreaPath, "Z") {
		t.Errorf("area path must be closed: %q", g.AreaPath)
	}

	down := NewEngine(seriesFromCloses(15, 10), model.TimeframeDay, DefaultViewport())
	if down.Trend() != DirectionDown {
		t.Errorf("expected DOWN, got %s", down.Trend())
	}
}

func TestEngine_FlatSeriesNoNaN(t *testing.T) {
	e := NewEngine(seriesFromCloses(10, 10, 10), model.TimeframeDay, DefaultViewport())
	if e.Trend() != DirectionUp {
		t.Errorf("flat series ties toward UP, got %s", e.Trend())
	}
	g := e.Geometry()
	if g == nil {
		t.Fatal("flat series must still render")
	}
	for i, tick := range g.YTicks {
		if tick.Value != 10 {
			t.Errorf("flat series Y tick %d: expected 10, got %.2f", i, tick.Value)
		}
		if math.IsNaN(tick.Y) || math.IsInf(tick.Y, 0) {
			t.Errorf("Y tick %d position is not finite: %v", i, tick.Y)
		}
	}
	for i := 0; i < e.Len(); i++ {
		_, y := e.Project(i)
		if math.IsNaN(y) {
			t.Errorf("project(%d) produced NaN", i)
		}
	}
}

func TestEngine_SetHover(t *testing.T) {
	vp := DefaultViewport()
	e := NewEngine(seriesFromCloses(10, 12, 8, 15, 15), model.TimeframeDay, vp)

	// Pointer left of the plot margin transitions to idle.
	if _, ok := e.SetHover(10, 1000); ok {
		t.Error("pointer inside the left margin must resolve to none")
	}
	if _, hovering := e.Hover(); hovering {
		t.Error("hover state must be idle after an out-of-bounds move")
	}

	// Mid-plot pointer resolves, regardless of rendered size.
	idx, ok := e.SetHover(500, 1000)
	if !ok {
		t.Fatal("mid-plot pointer must resolve to an index")
	}
	if got, hovering := e.Hover(); !hovering || got != idx {
		t.Errorf("hover state = (%d,%v), want (%d,true)", got, hovering, idx)
	}

	// Same relative position at a different rendered width maps identically.
	scaled, ok := e.SetHover(250, 500)
	if !ok || scaled != idx {
		t.Errorf("hover must be device independent: %d vs %d", scaled, idx)
	}

	e.ClearHover()
	if _, hovering := e.Hover(); hovering {
		t.Error("ClearHover must transition to idle")
	}
}

func TestEngine_DegenerateSeries(t *testing.T) {
	for _, points := range [][]AlignedPoint{nil, seriesFromCloses(10)} {
		e := NewEngine(points, model.TimeframeDay, DefaultViewport())
		if e.Renderable() {
			t.Errorf("%d-point series must not be renderable", len(points))
		}
		if g := e.Geometry(); g != nil {
			t.Errorf("%d-point series must yield nil geometry", len(points))
		}
		if _, ok := e.SetHover(500, 1000); ok {
			t.Errorf("%d-point series must not resolve hover", len(points))
		}
	}
}

func TestEngine_TooltipLabels(t *testing.T) {
	points := seriesFromCloses(10, 12)
	points[1].Buy = &TradeMark{TradeID: "T1", Price: 11.5, Quantity: 4}

	daily := NewEngine(points, model.TimeframeDay, DefaultViewport())
	tip, ok := daily.TooltipAt(1)
	if !ok {
		t.Fatal("expected tooltip")
	}
	if strings.Contains(tip.Label, ":") {
		t.Errorf("daily label must not carry a time component: %q", tip.Label)
	}
	if tip.Price != "$12.00" {
		t.Errorf("price format: %q", tip.Price)
	}
	if tip.Volume != "1,000,000" {
		t.Errorf("volume format: %q", tip.Volume)
	}
	if tip.Buy == nil || tip.Buy.TradeID != "T1" {
		t.Errorf("buy annotation must pass through: %+v", tip.Buy)
	}

	hourly := NewEngine(points, model.TimeframeHour, DefaultViewport())
	tip, _ = hourly.TooltipAt(0)
	if !strings.Contains(tip.Label, ":") {
		t.Errorf("sub-daily label must carry a time component: %q", tip.Label)
	}

	if _, ok := daily.TooltipAt(99); ok {
		t.Error("out-of-range index must not produce a tooltip")
	}
}
