package strategy

import (
	"testing"
	"time"

	"TradePilot/internal/model"
)

func testConfig() Config {
	return Config{Symbol: "AAPL", Capital: 10000}
}

func linearSeries(from, to float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	step := (to - from) / float64(count-1)
	for i := 0; i < count; i++ {
		p := from + step*float64(i)
		points[i] = model.PricePoint{
			Time:   time.Now().AddDate(0, 0, i-count),
			Open:   p,
			High:   p + 2,
			Low:    p - 2,
			Close:  p,
			Volume: 1000000,
		}
	}
	return points
}

func TestNew_KnownAndUnknown(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, testConfig())
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
		}
		if s.InPosition() {
			t.Errorf("%q must start without a position", name)
		}
	}
	if _, err := New("hodl", testConfig()); err == nil {
		t.Error("expected error for unknown strategy type")
	}
}

func TestQuantity(t *testing.T) {
	s, _ := New("momentum", testConfig())
	if q := s.Quantity(100); q != 100 {
		t.Errorf("10000/100 = 100 shares, got %d", q)
	}
	if q := s.Quantity(50000); q != 1 {
		t.Errorf("quantity is at least 1, got %d", q)
	}
}

func TestMomentum_BuyInUptrend(t *testing.T) {
	s, _ := New("momentum", testConfig())
	// Steep uptrend: short SMA well above long SMA.
	history := linearSeries(100, 140, 20)
	if !s.ShouldBuy(141, history) {
		t.Error("expected buy signal in a steep uptrend")
	}
	if s.ShouldBuy(90, history) {
		t.Error("price below short SMA must not trigger a buy")
	}
}

func TestMomentum_NoBuyWhileHolding(t *testing.T) {
	s, _ := New("momentum", testConfig())
	s.OpenPosition(10, 100)
	if s.ShouldBuy(141, linearSeries(100, 140, 20)) {
		t.Error("must not buy while holding a position")
	}
}

func TestMomentum_StopLossAndProfitTarget(t *testing.T) {
	s, _ := New("momentum", testConfig())
	history := linearSeries(100, 110, 20)

	s.OpenPosition(10, 100)
	if !s.ShouldSell(94, history) {
		t.Error("6% drawdown must trigger the -5% stop loss")
	}
	if !s.ShouldSell(104, history) {
		t.Error("4% gain must trigger the 3% profit target")
	}
}

func TestMomentum_SellOnReversal(t *testing.T) {
	s, _ := New("momentum", testConfig())
	s.OpenPosition(10, 120)
	downtrend := linearSeries(121, 119, 20)
	if !s.ShouldSell(119.5, downtrend) {
		t.Error("negative momentum must trigger a sell")
	}
}

func TestGrid_BuysBelowBaseAndSellsAboveEntry(t *testing.T) {
	s, _ := New("grid", testConfig())
	history := linearSeries(100, 100, 20)

	// First call lays the grid around 100; 1% spacing puts a level at 99.
	if s.ShouldBuy(100, history) {
		t.Error("base price itself is not a buy level")
	}
	if !s.ShouldBuy(99.0, history) {
		t.Error("expected buy at the 99.00 grid level")
	}

	s.OpenPosition(100, 99.0)
	if !s.ShouldSell(100.0, history) {
		t.Error("expected sell at the grid level above entry")
	}
	if s.ShouldSell(99.5, history) {
		t.Error("between levels must not trigger a sell")
	}
}

func TestMeanReversion_BollingerBands(t *testing.T) {
	s, _ := New("mean_reversion", testConfig())
	// Flat series: any meaningful drop goes below the lower band.
	history := linearSeries(110, 110, 20)
	if !s.ShouldBuy(105, history) {
		t.Error("price far below a flat mean must trigger a buy")
	}
	if s.ShouldBuy(111, history) {
		t.Error("price above the mean must not trigger a buy")
	}

	s.OpenPosition(10, 105)
	if !s.ShouldSell(110, history) {
		t.Error("return to the mean must trigger a sell")
	}
}

func TestMeanReversion_InsufficientHistory(t *testing.T) {
	s, _ := New("mean_reversion", testConfig())
	if s.ShouldBuy(90, linearSeries(100, 100, 5)) {
		t.Error("fewer points than the lookback must not signal")
	}
}

func TestBreakout_ResistanceAndSupport(t *testing.T) {
	s, _ := New("breakout", testConfig())
	history := linearSeries(100, 110, 20) // highs top out at 112

	if !s.ShouldBuy(115, history) {
		t.Error("price above resistance*(1+threshold) must trigger a buy")
	}
	if s.ShouldBuy(112, history) {
		t.Error("price at resistance must not trigger a buy")
	}

	s.OpenPosition(10, 115)
	// Lows bottom out at 98; support breach is below 98*(1-0.02).
	if !s.ShouldSell(95, history) {
		t.Error("price below support must trigger a sell")
	}
}
