package bot

import (
	"context"
	"log"
	"time"

	"TradePilot/internal/model"
	"TradePilot/internal/strategy"
)

// run is the trading loop: on every tick it fetches the current quote plus
// recent history, asks the strategy for a decision, and executes it against
// the bot's simulated broker.
func (m *Manager) run(ctx context.Context, b *Bot, strat strategy.Strategy) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	symbol := b.Config.Symbol
	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] trading bot %s loop exited", b.ID)
			return
		case <-ticker.C:
		}

		quote, err := m.fetcher.FetchQuote(symbol)
		if err != nil || quote.Price == 0 {
			log.Printf("[WARN] bot %s: no valid price for %s: %v", b.ID, symbol, err)
			continue
		}
		history, err := m.fetcher.FetchHistory(symbol, model.TimeframeDay)
		if err != nil || len(history) == 0 {
			log.Printf("[WARN] bot %s: no historical data for %s: %v", b.ID, symbol, err)
			continue
		}

		price := quote.Price
		switch {
		case !strat.InPosition() && strat.ShouldBuy(price, history):
			qty := strat.Quantity(price)
			trade, err := b.Broker.Buy(symbol, price, qty)
			if err != nil {
				log.Printf("[WARN] bot %s: buy rejected: %v", b.ID, err)
				continue
			}
			strat.OpenPosition(qty, price)
			if err := m.recorder.RecordTrade(b.ID, trade); err != nil {
				log.Printf("[WARN] bot %s: record trade: %v", b.ID, err)
			}
			log.Printf("[INFO] bot %s: position opened, %d shares at %.2f", b.ID, qty, price)

		case strat.InPosition() && strat.ShouldSell(price, history):
			qty := b.Broker.PositionQuantity(symbol)
			if qty == 0 {
				strat.ClosePosition()
				continue
			}
			trade, err := b.Broker.Sell(symbol, price, qty)
			if err != nil {
				log.Printf("[WARN] bot %s: sell rejected: %v", b.ID, err)
				continue
			}
			strat.ClosePosition()
			if err := m.recorder.RecordTrade(b.ID, trade); err != nil {
				log.Printf("[WARN] bot %s: record trade: %v", b.ID, err)
			}
			log.Printf("[INFO] bot %s: position closed, %d shares at %.2f", b.ID, qty, price)

		default:
			if strat.InPosition() {
				log.Printf("[INFO] bot %s: %s @ %.2f, holding", b.ID, symbol, price)
			} else {
				log.Printf("[INFO] bot %s: %s @ %.2f, cash %.2f", b.ID, symbol, price, b.Broker.Cash())
			}
		}
	}
}
