package bot

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"TradePilot/internal/broker"
	"TradePilot/internal/collector"
	"TradePilot/internal/model"
	"TradePilot/internal/recorder"
	"TradePilot/internal/strategy"
)

// Bot is one running strategy instance with its own simulated account.
type Bot struct {
	ID        string
	Config    model.BotConfig
	Broker    *broker.Broker
	CreatedAt time.Time

	cancel context.CancelFunc
}

// Status snapshots the bot for the dashboard list.
func (b *Bot) Status() model.BotStatus {
	return model.BotStatus{
		BotID:     b.ID,
		Symbol:    b.Config.Symbol,
		Strategy:  b.Config.Strategy,
		Active:    true,
		CreatedAt: b.CreatedAt,
		Config:    b.Config,
	}
}

// Manager owns the lifecycle of all trading bots.
type Manager struct {
	mu       sync.Mutex
	fetcher  collector.Fetcher
	recorder recorder.Recorder
	interval time.Duration
	bots     map[string]*Bot
	wg       sync.WaitGroup
}

// NewManager creates a Manager. interval is how often each bot re-checks the
// market.
func NewManager(f collector.Fetcher, rec recorder.Recorder, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Manager{
		fetcher:  f,
		recorder: rec,
		interval: interval,
		bots:     make(map[string]*Bot),
	}
}

// Start validates the configuration, allocates a broker, and launches the
// trading loop. It returns the new bot's ID.
func (m *Manager) Start(ctx context.Context, cfg model.BotConfig) (string, error) {
	strat, err := strategy.New(cfg.Strategy, strategy.Config{
		Symbol:         cfg.Symbol,
		Capital:        cfg.Capital,
		EntryThreshold: cfg.EntryThreshold,
		ExitThreshold:  cfg.ExitThreshold,
		StopLoss:       cfg.StopLoss,
	})
	if err != nil {
		return "", err
	}
	if cfg.Capital <= 0 {
		return "", fmt.Errorf("capital must be positive")
	}
	// Reject symbols the data source cannot resolve.
	if _, err := m.fetcher.FetchQuote(cfg.Symbol); err != nil {
		return "", fmt.Errorf("invalid symbol %s: %w", cfg.Symbol, err)
	}

	id := fmt.Sprintf("bot_%s_%s", cfg.Symbol, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	botCtx, cancel := context.WithCancel(ctx)
	b := &Bot{
		ID:        id,
		Config:    cfg,
		Broker:    broker.New(cfg.Capital),
		CreatedAt: time.Now(),
		cancel:    cancel,
	}

	m.mu.Lock()
	m.bots[id] = b
	m.mu.Unlock()

	if err := m.recorder.RecordBotStart(b.Status()); err != nil {
		log.Printf("[WARN] record bot start %s: %v", id, err)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(botCtx, b, strat)
	}()

	log.Printf("[INFO] started trading bot %s (%s/%s)", id, cfg.Symbol, cfg.Strategy)
	return id, nil
}

// Stop cancels a bot's loop and removes it from the active list.
func (m *Manager) Stop(id string) error {
	m.mu.Lock()
	b, ok := m.bots[id]
	if ok {
		delete(m.bots, id)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("bot %s not found", id)
	}
	b.cancel()
	if err := m.recorder.RecordBotStop(id); err != nil {
		log.Printf("[WARN] record bot stop %s: %v", id, err)
	}
	log.Printf("[INFO] stopped trading bot %s", id)
	return nil
}

// StopAll cancels every bot and waits for the loops to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for id, b := range m.bots {
		b.cancel()
		delete(m.bots, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

// Active lists the running bots, oldest first.
func (m *Manager) Active() []model.BotStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	statuses := make([]model.BotStatus, 0, len(m.bots))
	for _, b := range m.bots {
		statuses = append(statuses, b.Status())
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].CreatedAt.Before(statuses[j].CreatedAt)
	})
	return statuses
}

// Lookup returns the bot for a portfolio query.
func (m *Manager) Lookup(id string) (*Bot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bots[id]
	return b, ok
}
