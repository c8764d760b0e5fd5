package news

import (
	"math"
	"strings"
)

// Sentiment is the keyword-based classification of one piece of text.
type Sentiment struct {
	Label      string  `json:"sentiment"` // positive, negative, or neutral
	Score      float64 `json:"score"`     // -1.0 .. +1.0
	Confidence float64 `json:"confidence"`
}

var positiveWords = []string{
	"surge", "soar", "jump", "gain", "rise", "climb", "rally", "boost",
	"bullish", "upbeat", "optimistic", "growth", "profit", "beat", "exceed",
	"strong", "positive", "upgrade", "buy", "outperform", "record", "high",
	"success", "breakthrough", "innovation", "expansion", "recovery",
}

var negativeWords = []string{
	"drop", "fall", "decline", "plunge", "crash", "sink", "tumble", "slide",
	"bearish", "pessimistic", "loss", "miss", "disappoint", "weak", "negative",
	"downgrade", "sell", "underperform", "low", "fail", "cut", "layoff",
	"concern", "risk", "warning", "lawsuit", "investigation", "recall",
}

// Analyze scores a headline or summary by counting signal words. The score
// is the signed fraction of positive hits; confidence grows with the total
// number of hits and caps at five.
func Analyze(text string) Sentiment {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return Sentiment{Label: "neutral"}
	}

	score := float64(pos-neg) / float64(total)
	confidence := math.Min(float64(total)/5, 1.0)

	return Sentiment{
		Label:      labelFor(score),
		Score:      round2(score),
		Confidence: round2(confidence),
	}
}

func labelFor(score float64) string {
	switch {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
