package strategy

import (
	"TradePilot/internal/calculator"
	"TradePilot/internal/model"
)

// Momentum buys when the short moving average pulls ahead of the long one
// and sells when momentum weakens or reverses.
type Momentum struct {
	base
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) ShouldBuy(currentPrice float64, history []model.PricePoint) bool {
	if s.InPosition() || len(history) < 10 {
		return false
	}
	closes := calculator.Closes(history)
	smaShort, err := calculator.SMA(closes, 5)
	if err != nil {
		return false
	}
	smaLong, err := calculator.SMA(closes, 10)
	if err != nil || smaLong == 0 {
		return false
	}
	momentum := (smaShort - smaLong) / smaLong
	return momentum > s.cfg.EntryThreshold && currentPrice > smaShort
}

func (s *Momentum) ShouldSell(currentPrice float64, history []model.PricePoint) bool {
	if !s.InPosition() {
		return false
	}
	if s.stopLossHit(currentPrice) {
		return true
	}
	if len(history) < 10 {
		return false
	}
	if s.profitTargetHit(currentPrice) {
		return true
	}
	closes := calculator.Closes(history)
	smaShort, err := calculator.SMA(closes, 5)
	if err != nil {
		return false
	}
	smaLong, err := calculator.SMA(closes, 10)
	if err != nil || smaLong == 0 {
		return false
	}
	momentum := (smaShort - smaLong) / smaLong
	return momentum < 0 || currentPrice < smaShort
}
