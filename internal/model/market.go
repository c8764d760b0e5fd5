package model

import "time"

// PricePoint is a single sampled price bucket as served by the history API.
type PricePoint struct {
	Time   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Quote is the latest traded price for a symbol.
type Quote struct {
	Symbol string    `json:"symbol"`
	Price  float64   `json:"price"`
	Time   time.Time `json:"timestamp"`
}

// Trend classifies the recent direction of a price series.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendNeutral Trend = "NEUTRAL"
)

// StockInfo is one row of the ranked stock table.
type StockInfo struct {
	Symbol         string  `json:"symbol"`
	Price          float64 `json:"price"`
	Change         float64 `json:"change"`
	Volume         int64   `json:"volume"`
	PotentialScore float64 `json:"potential_score"`
	Trend          Trend   `json:"trend"`
}
