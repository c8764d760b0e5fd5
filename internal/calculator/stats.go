package calculator

import (
	"errors"
	"math"

	"TradePilot/internal/model"
)

// SMA computes the simple moving average of the given prices over the specified period.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the sample standard deviation, or 0 when fewer than two values.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

// Closes extracts close prices from a price series.
func Closes(points []model.PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes
}

// Tail returns the last n values, or the whole slice when shorter.
func Tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// RecentHigh scans the most recent n points and returns the highest high.
func RecentHigh(points []model.PricePoint, n int) (float64, error) {
	if len(points) == 0 {
		return 0, errors.New("no price points provided")
	}
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	high := math.Inf(-1)
	for i := start; i < len(points); i++ {
		if points[i].High > high {
			high = points[i].High
		}
	}
	return high, nil
}

// RecentLow scans the most recent n points and returns the lowest low.
func RecentLow(points []model.PricePoint, n int) (float64, error) {
	if len(points) == 0 {
		return 0, errors.New("no price points provided")
	}
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	low := math.Inf(1)
	for i := start; i < len(points); i++ {
		if points[i].Low < low {
			low = points[i].Low
		}
	}
	return low, nil
}
