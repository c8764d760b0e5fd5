package chart

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Tooltip is the formatted content shown for one hovered bucket.
type Tooltip struct {
	Label  string     `json:"label"`
	Price  string     `json:"price"`
	Open   string     `json:"open"`
	High   string     `json:"high"`
	Low    string     `json:"low"`
	Close  string     `json:"close"`
	Volume string     `json:"volume"`
	Buy    *TradeMark `json:"buy,omitempty"`
	Sell   *TradeMark `json:"sell,omitempty"`
}

// TooltipAt formats the tooltip for the given bucket index. Sub-daily
// timeframes carry a time-of-day component in the label, coarser ones show
// the date only.
func (e *Engine) TooltipAt(i int) (Tooltip, bool) {
	if i < 0 || i >= len(e.points) {
		return Tooltip{}, false
	}
	p := e.points[i]

	layout := "Jan 2, 2006"
	if e.tf.SubDaily() {
		layout = "Jan 2, 2006 15:04"
	}

	return Tooltip{
		Label:  p.Time.Format(layout),
		Price:  formatPrice(p.Close),
		Open:   formatPrice(p.Open),
		High:   formatPrice(p.High),
		Low:    formatPrice(p.Low),
		Close:  formatPrice(p.Close),
		Volume: humanize.Comma(int64(p.Volume)),
		Buy:    p.Buy,
		Sell:   p.Sell,
	}, true
}

func formatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
