package rank

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"

	"TradePilot/internal/cache"
	"TradePilot/internal/calculator"
	"TradePilot/internal/collector"
	"TradePilot/internal/model"
)

// Analyzer scores and ranks stocks for the dashboard table. History fetches
// go through the series cache, which is replaced wholesale on expiry.
type Analyzer struct {
	fetcher collector.Fetcher
	cache   cache.SeriesCache
}

// NewAnalyzer creates an Analyzer backed by the given fetcher and cache.
func NewAnalyzer(f collector.Fetcher, c cache.SeriesCache) *Analyzer {
	return &Analyzer{fetcher: f, cache: c}
}

// History returns the cached series for (symbol, timeframe), fetching and
// caching it on a miss.
func (a *Analyzer) History(ctx context.Context, symbol string, tf model.Timeframe) ([]model.PricePoint, error) {
	if points, ok := a.cache.Get(ctx, symbol, tf); ok {
		return points, nil
	}
	points, err := a.fetcher.FetchHistory(symbol, tf)
	if err != nil {
		return nil, err
	}
	if err := a.cache.Set(ctx, symbol, tf, points); err != nil {
		log.Printf("[WARN] cache series %s/%s: %v", symbol, tf, err)
	}
	return points, nil
}

// Windows trimming the series before scoring, per timeframe.
var scoreWindow = map[model.Timeframe]int{
	model.TimeframeMinute: 60,
	model.TimeframeHour:   24,
	model.TimeframeDay:    5,
}

var trendWindow = map[model.Timeframe]int{
	model.TimeframeMinute: 30,
	model.TimeframeHour:   12,
	model.TimeframeDay:    5,
}

var trendThreshold = map[model.Timeframe]float64{
	model.TimeframeMinute: 0.2,
	model.TimeframeHour:   0.5,
	model.TimeframeDay:    1.0,
	model.TimeframeWeek:   2.0,
}

// PotentialScore blends momentum, volume trend, and volatility into a 0-100
// score. Series shorter than five points score zero.
func PotentialScore(points []model.PricePoint, tf model.Timeframe) float64 {
	if len(points) < 5 {
		return 0
	}
	if w, ok := scoreWindow[tf]; ok && len(points) > w {
		points = points[len(points)-w:]
	}

	closes := calculator.Closes(points)
	first, last := closes[0], closes[len(closes)-1]
	momentum := 0.0
	if first != 0 {
		momentum = (last - first) / first * 100
	}

	volatility := 0.0
	if mean := calculator.Mean(closes); mean != 0 {
		volatility = calculator.StdDev(closes) / mean
	}

	volTrend := 0.0
	if len(points) >= 3 {
		volumes := make([]float64, len(points))
		for i, p := range points {
			volumes[i] = p.Volume
		}
		if avg := calculator.Mean(volumes); avg != 0 {
			volTrend = calculator.Mean(calculator.Tail(volumes, 3))/avg - 1
		}
	}

	score := 50 + momentum*2 + volTrend*10 - volatility*20
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100
}

// Classify labels the series direction against the timeframe's threshold.
func Classify(points []model.PricePoint, tf model.Timeframe) model.Trend {
	if len(points) < 2 {
		return model.TrendNeutral
	}
	if w, ok := trendWindow[tf]; ok && len(points) > w {
		points = points[len(points)-w:]
	}
	first, last := points[0].Close, points[len(points)-1].Close
	if first == 0 {
		return model.TrendNeutral
	}
	change := (last - first) / first * 100

	threshold, ok := trendThreshold[tf]
	if !ok {
		threshold = 1.0
	}
	switch {
	case change > threshold:
		return model.TrendBullish
	case change < -threshold:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

// StockInfo assembles the ranked-table row for one symbol.
func (a *Analyzer) StockInfo(ctx context.Context, symbol string, tf model.Timeframe) (*model.StockInfo, error) {
	quote, err := a.fetcher.FetchQuote(symbol)
	if err != nil {
		return nil, err
	}
	points, err := a.History(ctx, symbol, tf)
	if err != nil {
		return nil, err
	}

	change := 0.0
	if len(points) > 0 {
		closes := calculator.Closes(points)
		reference := closes[0]
		// Hourly view compares against the previous completed bucket.
		if tf == model.TimeframeHour && len(closes) > 1 {
			reference = closes[len(closes)-2]
		}
		if reference != 0 {
			change = (quote.Price - reference) / reference * 100
		}
	}

	var volume int64
	if len(points) > 0 {
		volume = int64(points[len(points)-1].Volume)
	}

	return &model.StockInfo{
		Symbol:         symbol,
		Price:          quote.Price,
		Change:         change,
		Volume:         volume,
		PotentialScore: PotentialScore(points, tf),
		Trend:          Classify(points, tf),
	}, nil
}

// Analyze scores the symbols concurrently and returns up to limit rows
// ordered by potential score, best first. Symbols that fail to resolve are
// skipped rather than failing the batch.
func (a *Analyzer) Analyze(ctx context.Context, symbols []string, tf model.Timeframe, limit int) []model.StockInfo {
	results := make([]*model.StockInfo, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			info, err := a.StockInfo(ctx, symbol, tf)
			if err != nil {
				log.Printf("[WARN] analyze %s: %v", symbol, err)
				return
			}
			results[i] = info
		}(i, symbol)
	}
	wg.Wait()

	stocks := make([]model.StockInfo, 0, len(results))
	for _, r := range results {
		if r != nil {
			stocks = append(stocks, *r)
		}
	}
	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].PotentialScore > stocks[j].PotentialScore
	})
	if limit > 0 && len(stocks) > limit {
		stocks = stocks[:limit]
	}
	return stocks
}
