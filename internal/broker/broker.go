package broker

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"TradePilot/internal/model"
)

var (
	// ErrInsufficientFunds is returned when a buy exceeds the available cash.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientShares is returned when a sell exceeds the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Broker simulates order execution against a cash account. All operations
// are concurrency safe; a broker is shared between a bot loop and the
// portfolio API.
type Broker struct {
	mu             sync.Mutex
	cash           float64
	initialCapital float64
	positions      map[string]model.Position
	trades         []model.TradeEvent
}

// New creates a broker with the given starting capital.
func New(initialCapital float64) *Broker {
	return &Broker{
		cash:           initialCapital,
		initialCapital: initialCapital,
		positions:      make(map[string]model.Position),
	}
}

// Buy executes a simulated purchase, merging into an existing position at the
// weighted average price.
func (b *Broker) Buy(symbol string, price float64, quantity int) (model.TradeEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := price * float64(quantity)
	if b.cash < total {
		return model.TradeEvent{}, fmt.Errorf("buy %d %s at %.2f: %w (need %.2f, have %.2f)",
			quantity, symbol, price, ErrInsufficientFunds, total, b.cash)
	}
	b.cash -= total

	pos := b.positions[symbol]
	newQty := pos.Quantity + quantity
	pos.AvgPrice = (pos.AvgPrice*float64(pos.Quantity) + price*float64(quantity)) / float64(newQty)
	pos.Quantity = newQty
	b.positions[symbol] = pos

	trade := b.record(symbol, model.ActionBuy, price, quantity, total)
	log.Printf("[INFO] executed BUY: %d shares of %s at %.2f (total %.2f)", quantity, symbol, price, total)
	return trade, nil
}

// Sell executes a simulated sale, closing out the position when it reaches zero.
func (b *Broker) Sell(symbol string, price float64, quantity int) (model.TradeEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos, ok := b.positions[symbol]
	if !ok || pos.Quantity < quantity {
		return model.TradeEvent{}, fmt.Errorf("sell %d %s: %w (have %d)",
			quantity, symbol, ErrInsufficientShares, pos.Quantity)
	}
	total := price * float64(quantity)
	b.cash += total

	pos.Quantity -= quantity
	if pos.Quantity == 0 {
		delete(b.positions, symbol)
	} else {
		b.positions[symbol] = pos
	}

	trade := b.record(symbol, model.ActionSell, price, quantity, total)
	log.Printf("[INFO] executed SELL: %d shares of %s at %.2f (total %.2f)", quantity, symbol, price, total)
	return trade, nil
}

// record appends the trade history entry. Caller holds the lock.
func (b *Broker) record(symbol string, action model.Action, price float64, quantity int, total float64) model.TradeEvent {
	trade := model.TradeEvent{
		ID:        fmt.Sprintf("T%d", len(b.trades)+1),
		Symbol:    symbol,
		Action:    action,
		Price:     price,
		Quantity:  quantity,
		Timestamp: time.Now(),
		Total:     total,
	}
	b.trades = append(b.trades, trade)
	return trade
}

// Cash returns the available cash balance.
func (b *Broker) Cash() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cash
}

// PositionQuantity returns the held quantity for a symbol, zero when flat.
func (b *Broker) PositionQuantity(symbol string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.positions[symbol].Quantity
}

// Symbols lists the symbols with open positions.
func (b *Broker) Symbols() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	symbols := make([]string, 0, len(b.positions))
	for s := range b.positions {
		symbols = append(symbols, s)
	}
	return symbols
}

// Portfolio snapshots the account using the supplied current prices for
// equity and profit/loss valuation.
func (b *Broker) Portfolio(currentPrices map[string]float64) model.Portfolio {
	b.mu.Lock()
	defer b.mu.Unlock()

	equity := b.cash
	for symbol, pos := range b.positions {
		if price, ok := currentPrices[symbol]; ok {
			equity += float64(pos.Quantity) * price
		}
	}

	positions := make(map[string]model.Position, len(b.positions))
	for s, p := range b.positions {
		positions[s] = p
	}
	trades := make([]model.TradeEvent, len(b.trades))
	copy(trades, b.trades)

	return model.Portfolio{
		Cash:       b.cash,
		Equity:     equity,
		Positions:  positions,
		Trades:     trades,
		ProfitLoss: equity - b.initialCapital,
	}
}
