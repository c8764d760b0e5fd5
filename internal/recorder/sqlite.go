package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TradePilot/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_id     TEXT NOT NULL,
			trade_id   TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			action     TEXT NOT NULL,
			price      REAL,
			quantity   INTEGER,
			total      REAL,
			timestamp  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_bot ON trades(bot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS bot_sessions (
			bot_id     TEXT PRIMARY KEY,
			symbol     TEXT NOT NULL,
			strategy   TEXT NOT NULL,
			capital    REAL,
			started_at INTEGER NOT NULL,
			stopped_at INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTrade(botID string, trade model.TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO trades
		(bot_id, trade_id, symbol, action, price, quantity, total, timestamp)
		VALUES (?,?,?,?,?,?,?,?)`,
		botID, trade.ID, trade.Symbol, string(trade.Action),
		trade.Price, trade.Quantity, trade.Total, trade.Timestamp.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordBotStart(status model.BotStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO bot_sessions
		(bot_id, symbol, strategy, capital, started_at)
		VALUES (?,?,?,?,?)`,
		status.BotID, status.Symbol, status.Strategy,
		status.Config.Capital, status.CreatedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordBotStop(botID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`UPDATE bot_sessions SET stopped_at = ? WHERE bot_id = ?`,
		time.Now().Unix(), botID)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
