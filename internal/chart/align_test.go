package chart

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"TradePilot/internal/model"
)

func hourlyPrices(day time.Time, hours ...int) []model.PricePoint {
	prices := make([]model.PricePoint, len(hours))
	for i, h := range hours {
		prices[i] = model.PricePoint{
			Time:  day.Add(time.Duration(h) * time.Hour),
			Open:  100, High: 102, Low: 99, Close: 101,
			Volume: 1000000,
		}
	}
	return prices
}

func TestAlign_SameHourSharedBucket(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prices := hourlyPrices(day, 8, 9, 10, 11, 12)

	trades := []model.TradeEvent{
		{ID: "T1", Symbol: "AAPL", Action: model.ActionBuy, Price: 100.5, Quantity: 10, Timestamp: day.Add(10*time.Hour + 31*time.Minute)},
		{ID: "T2", Symbol: "AAPL", Action: model.ActionSell, Price: 101.2, Quantity: 10, Timestamp: day.Add(10*time.Hour + 59*time.Minute)},
	}

	res, err := Align(prices, trades, model.SameHour())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Assigned["T1"] != 2 || res.Assigned["T2"] != 2 {
		t.Fatalf("expected both trades in bucket 2, got %v", res.Assigned)
	}
	p := res.Points[2]
	if p.Buy == nil || p.Sell == nil {
		t.Fatal("expected both buy and sell annotations on the 10:00 bucket")
	}
	if p.Buy.Price != 100.5 || p.Buy.Quantity != 10 {
		t.Errorf("buy annotation mismatch: %+v", p.Buy)
	}
	if p.Sell.Price != 101.2 {
		t.Errorf("sell annotation mismatch: %+v", p.Sell)
	}
}

func TestAlign_NearestBucketFallback(t *testing.T) {
	// No bucket shares the trade's calendar day, so the trade must fall back
	// to the chronologically nearest bucket.
	base := time.Date(2025, 3, 3, 16, 0, 0, 0, time.UTC)
	prices := []model.PricePoint{
		{Time: base, Close: 100},
		{Time: base.AddDate(0, 0, 1), Close: 101},
		{Time: base.AddDate(0, 0, 2), Close: 102},
	}
	trade := model.TradeEvent{
		ID: "T9", Action: model.ActionBuy, Price: 101.5, Quantity: 3,
		Timestamp: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC),
	}

	res, err := Align(prices, []model.TradeEvent{trade}, model.CalendarDay())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := res.Assigned["T9"]
	if !ok {
		t.Fatal("trade was dropped")
	}

	// Recompute deltas against every bucket: the assigned one must minimize.
	bestDelta := absDuration(trade.Timestamp.Sub(prices[got].Time))
	for i, p := range prices {
		d := absDuration(trade.Timestamp.Sub(p.Time))
		if d < bestDelta {
			t.Errorf("bucket %d (delta %v) is closer than assigned bucket %d (delta %v)", i, d, got, bestDelta)
		}
	}
	if got != 2 {
		t.Errorf("expected nearest bucket 2, got %d", got)
	}
}

func TestAlign_FallbackTieBreaksEarlier(t *testing.T) {
	base := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	prices := []model.PricePoint{
		{Time: base, Close: 100},
		{Time: base.Add(2 * time.Hour), Close: 101},
	}
	// Exactly between the two buckets, and outside a 10-minute tolerance.
	trade := model.TradeEvent{ID: "T1", Action: model.ActionBuy, Timestamp: base.Add(time.Hour)}

	res, err := Align(prices, []model.TradeEvent{trade}, model.WithinTolerance(10*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Assigned["T1"] != 0 {
		t.Errorf("tie should break to the earlier bucket, got %d", res.Assigned["T1"])
	}
}

func TestAlign_ToleranceIsStrict(t *testing.T) {
	base := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	prices := []model.PricePoint{
		{Time: base, Close: 100},
		{Time: base.Add(time.Minute), Close: 101},
	}
	// Exactly 2 minutes from bucket 0: |delta| < d fails there, but the trade
	// is only 1 minute from bucket 1, which matches.
	trade := model.TradeEvent{ID: "T1", Action: model.ActionBuy, Timestamp: base.Add(2 * time.Minute)}

	res, err := Align(prices, []model.TradeEvent{trade}, model.WithinTolerance(2*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Assigned["T1"] != 1 {
		t.Errorf("expected bucket 1, got %d", res.Assigned["T1"])
	}
}

func TestAlign_Completeness(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prices := hourlyPrices(day, 8, 9, 10, 11, 12, 13)

	trades := []model.TradeEvent{
		{ID: "T1", Action: model.ActionBuy, Timestamp: day.Add(8*time.Hour + 5*time.Minute)},
		{ID: "T2", Action: model.ActionSell, Timestamp: day.Add(9*time.Hour + 40*time.Minute)},
		{ID: "T3", Action: model.ActionBuy, Timestamp: day.Add(22 * time.Hour)}, // needs fallback
		{ID: "T4", Action: model.ActionSell, Timestamp: day.Add(13*time.Hour + 59*time.Minute)},
	}

	res, err := Align(prices, trades, model.SameHour())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Assigned) != len(trades) {
		t.Fatalf("expected %d assignments, got %d", len(trades), len(res.Assigned))
	}
	if len(res.Unassigned) != 0 {
		t.Fatalf("no trade may remain unassigned with a non-empty series, got %d", len(res.Unassigned))
	}

	annotations := 0
	for _, p := range res.Points {
		if p.Buy != nil {
			annotations++
		}
		if p.Sell != nil {
			annotations++
		}
	}
	if annotations != len(trades) {
		t.Errorf("expected %d annotations across buckets, got %d", len(trades), annotations)
	}
}

func TestAlign_DeterministicAndIdempotent(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prices := hourlyPrices(day, 8, 9, 10)
	trades := []model.TradeEvent{
		{ID: "T1", Action: model.ActionBuy, Price: 100, Quantity: 1, Timestamp: day.Add(9 * time.Hour)},
		{ID: "T1", Action: model.ActionBuy, Price: 100, Quantity: 1, Timestamp: day.Add(9 * time.Hour)}, // re-processed duplicate
		{ID: "T2", Action: model.ActionSell, Price: 101, Quantity: 2, Timestamp: day.Add(10*time.Hour + 30*time.Minute)},
	}

	first, err := Align(prices, trades, model.SameHour())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Align(prices, trades, model.SameHour())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must yield identical outputs")
	}
	if len(first.Assigned) != 2 {
		t.Errorf("duplicate trade ID must be consumed once, got %d assignments", len(first.Assigned))
	}
}

func TestAlign_SameActionOverwrites(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prices := hourlyPrices(day, 10)
	trades := []model.TradeEvent{
		{ID: "T1", Action: model.ActionBuy, Price: 100, Quantity: 5, Timestamp: day.Add(10*time.Hour + 5*time.Minute)},
		{ID: "T2", Action: model.ActionBuy, Price: 104, Quantity: 7, Timestamp: day.Add(10*time.Hour + 45*time.Minute)},
	}

	res, err := Align(prices, trades, model.SameHour())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buy := res.Points[0].Buy
	if buy == nil || buy.TradeID != "T2" || buy.Price != 104 || buy.Quantity != 7 {
		t.Errorf("the later trade must overwrite the buy slot, got %+v", buy)
	}
	// Both trades still map to the bucket.
	if res.Assigned["T1"] != 0 || res.Assigned["T2"] != 0 {
		t.Errorf("unexpected assignments: %v", res.Assigned)
	}
}

func TestAlign_EmptyPrices(t *testing.T) {
	trades := []model.TradeEvent{
		{ID: "T1", Action: model.ActionBuy, Timestamp: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)},
	}
	res, err := Align(nil, trades, model.CalendarDay())
	if err != nil {
		t.Fatalf("empty prices must not fail: %v", err)
	}
	if len(res.Points) != 0 {
		t.Errorf("expected empty points, got %d", len(res.Points))
	}
	if len(res.Unassigned) != 1 || res.Unassigned[0].ID != "T1" {
		t.Errorf("expected T1 unassigned, got %v", res.Unassigned)
	}
}

func TestAlign_MissingTimestamp(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	prices := hourlyPrices(day, 10)
	trades := []model.TradeEvent{{ID: "T1", Action: model.ActionBuy}}

	_, err := Align(prices, trades, model.CalendarDay())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Record != "trade" || verr.ID != "T1" {
		t.Errorf("error must identify the offending record: %+v", verr)
	}

	_, err = Align([]model.PricePoint{{Close: 100}}, nil, model.CalendarDay())
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for price point, got %v", err)
	}
	if verr.Record != "price" || verr.Index != 0 {
		t.Errorf("error must identify the offending price point: %+v", verr)
	}
}
