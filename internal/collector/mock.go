package collector

import (
	"time"

	"TradePilot/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series []model.PricePoint
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ string, tf model.Timeframe) ([]model.PricePoint, error) {
	if m.Series != nil {
		return m.Series, nil
	}
	count, step := 30, 24*time.Hour
	if tf.SubDaily() {
		count, step = 60, time.Hour
	}
	return GenerateMockSeries(m.Price, count, step), nil
}

func (m *MockFetcher) FetchQuote(symbol string) (model.Quote, error) {
	return model.Quote{Symbol: symbol, Price: m.Price, Time: time.Now()}, nil
}

// GenerateMockSeries produces a gently trending series around a base price.
func GenerateMockSeries(basePrice float64, count int, step time.Duration) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Time:   time.Now().Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return points
}
