package strategy

import (
	"fmt"
	"strings"

	"TradePilot/internal/model"
)

// Config holds the tunable parameters shared by all strategies.
type Config struct {
	Symbol          string
	Capital         float64
	EntryThreshold  float64
	ExitThreshold   float64
	StopLoss        float64 // negative fraction, e.g. -0.05
	GridLevels      int
	GridSpacing     float64
	LookbackPeriod  int
	StdDevThreshold float64
}

func (c *Config) applyDefaults() {
	if c.EntryThreshold == 0 {
		c.EntryThreshold = 0.02
	}
	if c.ExitThreshold == 0 {
		c.ExitThreshold = 0.03
	}
	if c.StopLoss == 0 {
		c.StopLoss = -0.05
	}
	if c.GridLevels == 0 {
		c.GridLevels = 5
	}
	if c.GridSpacing == 0 {
		c.GridSpacing = 0.01
	}
	if c.LookbackPeriod == 0 {
		c.LookbackPeriod = 20
	}
	if c.StdDevThreshold == 0 {
		c.StdDevThreshold = 2.0
	}
}

// Strategy decides when a bot enters and exits a position.
type Strategy interface {
	Name() string
	ShouldBuy(currentPrice float64, history []model.PricePoint) bool
	ShouldSell(currentPrice float64, history []model.PricePoint) bool
	Quantity(price float64) int
	OpenPosition(quantity int, entryPrice float64)
	ClosePosition()
	InPosition() bool
}

// base carries the position state and threshold helpers common to all strategies.
type base struct {
	cfg        Config
	position   int
	entryPrice float64
}

func (b *base) InPosition() bool { return b.position > 0 }

func (b *base) OpenPosition(quantity int, entryPrice float64) {
	b.position = quantity
	b.entryPrice = entryPrice
}

func (b *base) ClosePosition() {
	b.position = 0
	b.entryPrice = 0
}

// Quantity computes how many shares the configured capital affords, at least one.
func (b *base) Quantity(price float64) int {
	if price <= 0 {
		return 1
	}
	n := int(b.cfg.Capital / price)
	if n < 1 {
		n = 1
	}
	return n
}

// stopLossHit reports whether the open position has fallen past the stop.
func (b *base) stopLossHit(currentPrice float64) bool {
	if b.position == 0 || b.entryPrice == 0 {
		return false
	}
	return (currentPrice-b.entryPrice)/b.entryPrice <= b.cfg.StopLoss
}

// profitTargetHit reports whether the open position reached the exit threshold.
func (b *base) profitTargetHit(currentPrice float64) bool {
	if b.position == 0 || b.entryPrice == 0 {
		return false
	}
	return (currentPrice-b.entryPrice)/b.entryPrice >= b.cfg.ExitThreshold
}

// New creates a strategy instance by name.
func New(name string, cfg Config) (Strategy, error) {
	cfg.applyDefaults()
	switch strings.ToLower(name) {
	case "momentum":
		return &Momentum{base{cfg: cfg}}, nil
	case "grid":
		return &Grid{base: base{cfg: cfg}}, nil
	case "mean_reversion":
		return &MeanReversion{base{cfg: cfg}}, nil
	case "breakout":
		return &Breakout{base{cfg: cfg}}, nil
	default:
		return nil, fmt.Errorf("unknown strategy type: %s", name)
	}
}

// Names lists the available strategy types.
func Names() []string {
	return []string{"momentum", "grid", "mean_reversion", "breakout"}
}
