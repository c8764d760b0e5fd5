package model

import "time"

// Action is the side of an executed trade.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// TradeEvent is one executed trade from a bot's portfolio record.
type TradeEvent struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Action    Action    `json:"action"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Total     float64   `json:"total"`
}

// Position is an open holding in a portfolio.
type Position struct {
	Quantity int     `json:"quantity"`
	AvgPrice float64 `json:"avg_price"`
}

// Portfolio is a snapshot of a simulated broker account.
type Portfolio struct {
	Cash       float64             `json:"cash"`
	Equity     float64             `json:"equity"`
	Positions  map[string]Position `json:"positions"`
	Trades     []TradeEvent        `json:"trades"`
	ProfitLoss float64             `json:"profit_loss"`
}
