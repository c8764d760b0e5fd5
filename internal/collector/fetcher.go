package collector

import "TradePilot/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchHistory(symbol string, tf model.Timeframe) ([]model.PricePoint, error)
	FetchQuote(symbol string) (model.Quote, error)
	Name() string
}
