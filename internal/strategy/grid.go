package strategy

import (
	"math"

	"TradePilot/internal/model"
)

// Grid trades around a base price at fixed percentage levels: buys when the
// price touches a level below the base, sells at levels above the entry.
type Grid struct {
	base
	basePrice  float64
	gridPrices []float64
}

func (s *Grid) Name() string { return "grid" }

// initGrid lays out levels symmetrically around the base price.
func (s *Grid) initGrid(basePrice float64) {
	s.basePrice = basePrice
	s.gridPrices = s.gridPrices[:0]
	for i := -s.cfg.GridLevels; i <= s.cfg.GridLevels; i++ {
		s.gridPrices = append(s.gridPrices, basePrice*(1+float64(i)*s.cfg.GridSpacing))
	}
}

// nearLevel reports whether price sits within 0.1% of the level.
func nearLevel(price, level float64) bool {
	if level == 0 {
		return false
	}
	return math.Abs(price-level)/level < 0.001
}

func (s *Grid) ShouldBuy(currentPrice float64, _ []model.PricePoint) bool {
	if s.InPosition() {
		return false
	}
	if len(s.gridPrices) == 0 {
		s.initGrid(currentPrice)
	}
	for _, level := range s.gridPrices {
		if level < s.basePrice && nearLevel(currentPrice, level) {
			return true
		}
	}
	return false
}

func (s *Grid) ShouldSell(currentPrice float64, _ []model.PricePoint) bool {
	if !s.InPosition() {
		return false
	}
	if s.stopLossHit(currentPrice) {
		return true
	}
	if s.entryPrice == 0 {
		return false
	}
	for _, level := range s.gridPrices {
		if level > s.entryPrice && nearLevel(currentPrice, level) {
			return true
		}
	}
	return false
}
