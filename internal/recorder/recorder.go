package recorder

import "TradePilot/internal/model"

// Recorder persists executed trades and bot lifecycles for analysis.
type Recorder interface {
	RecordTrade(botID string, trade model.TradeEvent) error
	RecordBotStart(status model.BotStatus) error
	RecordBotStop(botID string) error
	Close() error
}
