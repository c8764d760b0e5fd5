package server

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// streamInterval is how often a price update is pushed to each subscriber.
const streamInterval = 2 * time.Second

// handlePriceStream upgrades the connection and pushes the latest quote for
// the symbol until the client disconnects.
func (s *Server) handlePriceStream(c *gin.Context) {
	symbol := c.Param("symbol")

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade failed for %s: %v", symbol, err)
		return
	}
	defer conn.Close()

	// Drain client frames so close messages are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		quote, err := s.fetcher.FetchQuote(symbol)
		if err != nil {
			log.Printf("[WARN] stream quote for %s: %v", symbol, err)
		} else if err := conn.WriteJSON(quote); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
