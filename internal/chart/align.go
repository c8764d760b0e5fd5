package chart

import (
	"fmt"
	"time"

	"TradePilot/internal/model"
)

// TradeMark is a buy or sell annotation attached to one price bucket.
type TradeMark struct {
	TradeID  string  `json:"trade_id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AlignedPoint is a price bucket plus at most one buy and one sell annotation.
type AlignedPoint struct {
	model.PricePoint
	Buy  *TradeMark `json:"buy,omitempty"`
	Sell *TradeMark `json:"sell,omitempty"`
}

// Result is the output of Align. Assigned maps every trade ID to the index of
// the bucket that carries it; Unassigned is non-empty only when the price
// series itself was empty, so there was no bucket to assign to.
type Result struct {
	Points     []AlignedPoint
	Assigned   map[string]int
	Unassigned []model.TradeEvent
}

// ValidationError reports a record with a missing or malformed timestamp.
// Alignment fails as a whole rather than producing a partial result.
type ValidationError struct {
	Record string // "price" or "trade"
	Index  int    // index within the input sequence
	ID     string // trade ID when Record == "trade"
}

func (e *ValidationError) Error() string {
	if e.Record == "trade" {
		return fmt.Sprintf("align: trade %q (index %d) has no timestamp", e.ID, e.Index)
	}
	return fmt.Sprintf("align: price point %d has no timestamp", e.Index)
}

// Align assigns every trade to exactly one price bucket under the given
// matching policy. The returned points mirror the input prices in length and
// order; alignment is purely additive. Trades that no bucket matches fall
// back to the bucket with the smallest absolute timestamp difference, so no
// trade is ever dropped.
func Align(prices []model.PricePoint, trades []model.TradeEvent, policy model.MatchPolicy) (*Result, error) {
	for i, p := range prices {
		if p.Time.IsZero() {
			return nil, &ValidationError{Record: "price", Index: i}
		}
	}
	for i, t := range trades {
		if t.Timestamp.IsZero() {
			return nil, &ValidationError{Record: "trade", Index: i, ID: t.ID}
		}
	}

	res := &Result{
		Points:   make([]AlignedPoint, len(prices)),
		Assigned: make(map[string]int, len(trades)),
	}
	for i, p := range prices {
		res.Points[i] = AlignedPoint{PricePoint: p}
	}

	for _, trade := range trades {
		// A trade ID already placed is skipped entirely, which makes
		// re-processing the same trade set idempotent.
		if _, done := res.Assigned[trade.ID]; done {
			continue
		}
		if len(prices) == 0 {
			res.Unassigned = append(res.Unassigned, trade)
			continue
		}

		idx := -1
		for i, p := range prices {
			if policy.Matches(trade.Timestamp, p.Time) {
				idx = i
				break
			}
		}
		if idx < 0 {
			idx = nearestBucket(prices, trade)
		}

		mark := &TradeMark{TradeID: trade.ID, Price: trade.Price, Quantity: trade.Quantity}
		// A bucket holds at most one annotation per action; a later trade in
		// the same slot overwrites the earlier one.
		switch trade.Action {
		case model.ActionSell:
			res.Points[idx].Sell = mark
		default:
			res.Points[idx].Buy = mark
		}
		res.Assigned[trade.ID] = idx
	}

	return res, nil
}

// nearestBucket returns the index of the bucket whose timestamp is closest to
// the trade's. Ties go to the earlier bucket.
func nearestBucket(prices []model.PricePoint, trade model.TradeEvent) int {
	best := 0
	bestDelta := absDuration(trade.Timestamp.Sub(prices[0].Time))
	for i := 1; i < len(prices); i++ {
		d := absDuration(trade.Timestamp.Sub(prices[i].Time))
		if d < bestDelta {
			best = i
			bestDelta = d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
