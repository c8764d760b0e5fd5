package strategy

import (
	"TradePilot/internal/calculator"
	"TradePilot/internal/model"
)

// MeanReversion buys when the price drops below the lower Bollinger band and
// sells when it returns to the mean.
type MeanReversion struct {
	base
}

func (s *MeanReversion) Name() string { return "mean_reversion" }

func (s *MeanReversion) bands(history []model.PricePoint) (sma, lower, upper float64, ok bool) {
	if len(history) < s.cfg.LookbackPeriod {
		return 0, 0, 0, false
	}
	window := calculator.Tail(calculator.Closes(history), s.cfg.LookbackPeriod)
	sma = calculator.Mean(window)
	std := calculator.StdDev(window)
	lower = sma - s.cfg.StdDevThreshold*std
	upper = sma + s.cfg.StdDevThreshold*std
	return sma, lower, upper, true
}

func (s *MeanReversion) ShouldBuy(currentPrice float64, history []model.PricePoint) bool {
	if s.InPosition() {
		return false
	}
	_, lower, _, ok := s.bands(history)
	return ok && currentPrice <= lower
}

func (s *MeanReversion) ShouldSell(currentPrice float64, history []model.PricePoint) bool {
	if !s.InPosition() {
		return false
	}
	if s.stopLossHit(currentPrice) {
		return true
	}
	sma, _, _, ok := s.bands(history)
	if !ok {
		return false
	}
	if currentPrice >= sma {
		return true
	}
	return s.profitTargetHit(currentPrice)
}
