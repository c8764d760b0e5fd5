package model

import "time"

// BotConfig is the user-supplied configuration for one trading bot.
type BotConfig struct {
	Symbol         string  `json:"symbol"`
	Strategy       string  `json:"strategy"`
	Capital        float64 `json:"capital"`
	EntryThreshold float64 `json:"entry_threshold"`
	ExitThreshold  float64 `json:"exit_threshold"`
	StopLoss       float64 `json:"stop_loss"`
}

// BotStatus describes one running bot for the dashboard list.
type BotStatus struct {
	BotID     string    `json:"bot_id"`
	Symbol    string    `json:"symbol"`
	Strategy  string    `json:"strategy"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	Config    BotConfig `json:"config"`
}
