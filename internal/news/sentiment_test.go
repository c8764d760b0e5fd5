package news

import "testing"

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
	}{
		{"positive", "Shares surge to record high after strong earnings beat", "positive"},
		{"negative", "Stock plunges on lawsuit concern, analysts downgrade", "negative"},
		{"mixed", "Shares rise after earlier drop", "neutral"},
		{"no signal", "Company schedules annual shareholder meeting", "neutral"},
		{"empty", "", "neutral"},
	}
	for _, tt := range tests {
		got := Analyze(tt.text)
		if got.Label != tt.label {
			t.Errorf("%s: expected %s, got %s (score %.2f)", tt.name, tt.label, got.Label, got.Score)
		}
		if got.Score < -1 || got.Score > 1 {
			t.Errorf("%s: score %.2f outside [-1,1]", tt.name, got.Score)
		}
	}
}

func TestAnalyze_ConfidenceGrowsWithHits(t *testing.T) {
	weak := Analyze("shares gain")
	strong := Analyze("surge soar jump gain rise climb rally")
	if weak.Confidence >= strong.Confidence {
		t.Errorf("confidence must grow with hits: %.2f vs %.2f", weak.Confidence, strong.Confidence)
	}
	if strong.Confidence != 1.0 {
		t.Errorf("confidence caps at 1.0, got %.2f", strong.Confidence)
	}
}
