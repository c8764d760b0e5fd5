package strategy

import (
	"TradePilot/internal/calculator"
	"TradePilot/internal/model"
)

// Breakout buys when the price breaks above recent resistance and sells when
// it breaks below recent support.
type Breakout struct {
	base
}

func (s *Breakout) Name() string { return "breakout" }

func (s *Breakout) ShouldBuy(currentPrice float64, history []model.PricePoint) bool {
	if s.InPosition() || len(history) < s.cfg.LookbackPeriod {
		return false
	}
	resistance, err := calculator.RecentHigh(history, s.cfg.LookbackPeriod)
	if err != nil {
		return false
	}
	return currentPrice > resistance*(1+s.cfg.EntryThreshold)
}

func (s *Breakout) ShouldSell(currentPrice float64, history []model.PricePoint) bool {
	if !s.InPosition() {
		return false
	}
	if s.stopLossHit(currentPrice) {
		return true
	}
	if len(history) < s.cfg.LookbackPeriod {
		return false
	}
	if s.profitTargetHit(currentPrice) {
		return true
	}
	support, err := calculator.RecentLow(history, s.cfg.LookbackPeriod)
	if err != nil {
		return false
	}
	return currentPrice < support*(1-s.cfg.EntryThreshold)
}
