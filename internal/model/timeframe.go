package model

import (
	"fmt"
	"time"
)

// Timeframe is a named sampling granularity. It fixes both the fetched
// period/interval pair and the policy used to match trades to price buckets.
type Timeframe string

const (
	TimeframeMinute Timeframe = "1m"
	TimeframeHour   Timeframe = "1h"
	TimeframeDay    Timeframe = "1d"
	TimeframeWeek   Timeframe = "1w"
)

// MatchKind selects the comparison rule for trade-to-bucket matching.
type MatchKind int

const (
	// MatchCalendarDay requires local calendar day equality (year, month, day).
	MatchCalendarDay MatchKind = iota
	// MatchSameHour requires calendar day equality and hour equality.
	MatchSameHour
	// MatchWithinTolerance requires |trade time - bucket time| < Tolerance.
	MatchWithinTolerance
)

// MatchPolicy is a tagged variant: Tolerance is meaningful only for
// MatchWithinTolerance.
type MatchPolicy struct {
	Kind      MatchKind
	Tolerance time.Duration
}

// CalendarDay matches on local calendar day equality.
func CalendarDay() MatchPolicy { return MatchPolicy{Kind: MatchCalendarDay} }

// SameHour matches on calendar day and hour equality.
func SameHour() MatchPolicy { return MatchPolicy{Kind: MatchSameHour} }

// WithinTolerance matches when timestamps differ by less than d.
func WithinTolerance(d time.Duration) MatchPolicy {
	return MatchPolicy{Kind: MatchWithinTolerance, Tolerance: d}
}

// Matches reports whether a trade timestamp belongs to a bucket timestamp
// under this policy. Calendar comparisons happen in the bucket's location,
// i.e. the zone the price series was sampled in.
func (p MatchPolicy) Matches(trade, bucket time.Time) bool {
	switch p.Kind {
	case MatchSameHour:
		return sameDay(trade, bucket) && trade.In(bucket.Location()).Hour() == bucket.Hour()
	case MatchWithinTolerance:
		d := trade.Sub(bucket)
		if d < 0 {
			d = -d
		}
		return d < p.Tolerance
	default:
		return sameDay(trade, bucket)
	}
}

func sameDay(trade, bucket time.Time) bool {
	ty, tm, td := trade.In(bucket.Location()).Date()
	by, bm, bd := bucket.Date()
	return ty == by && tm == bm && td == bd
}

// TimeframeConfig binds a timeframe to its backend query parameters and
// matching policy.
type TimeframeConfig struct {
	Period   string // data range requested from the source, e.g. "5d"
	Interval string // sampling interval, e.g. "1h"
	Match    MatchPolicy
}

var timeframeConfigs = map[Timeframe]TimeframeConfig{
	TimeframeMinute: {Period: "2d", Interval: "1m", Match: WithinTolerance(2 * time.Minute)},
	TimeframeHour:   {Period: "5d", Interval: "1h", Match: SameHour()},
	TimeframeDay:    {Period: "1mo", Interval: "1d", Match: CalendarDay()},
	TimeframeWeek:   {Period: "6mo", Interval: "1wk", Match: CalendarDay()},
}

// Config returns the fixed configuration for the timeframe.
func (tf Timeframe) Config() TimeframeConfig {
	cfg, ok := timeframeConfigs[tf]
	if !ok {
		return timeframeConfigs[TimeframeDay]
	}
	return cfg
}

// SubDaily reports whether the timeframe samples finer than one day.
// Sub-daily tooltips carry a time-of-day component, coarser ones do not.
func (tf Timeframe) SubDaily() bool {
	return tf == TimeframeMinute || tf == TimeframeHour
}

// ParseTimeframe validates a timeframe string from a request.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if _, ok := timeframeConfigs[tf]; !ok {
		return "", fmt.Errorf("unknown timeframe %q", s)
	}
	return tf, nil
}
