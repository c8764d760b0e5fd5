package recorder

import "TradePilot/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrade(_ string, _ model.TradeEvent) error { return nil }
func (n *NoopRecorder) RecordBotStart(_ model.BotStatus) error         { return nil }
func (n *NoopRecorder) RecordBotStop(_ string) error                   { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
