package server

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"TradePilot/internal/chart"
	"TradePilot/internal/model"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "TradePilot API",
		"version":     "1.0.0",
		"active_bots": len(s.bots.Active()),
	})
}

// timeframeFromQuery parses the optional ?timeframe= parameter, defaulting
// to daily buckets.
func timeframeFromQuery(c *gin.Context) (model.Timeframe, bool) {
	tf, err := model.ParseTimeframe(c.DefaultQuery("timeframe", string(model.TimeframeDay)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return tf, true
}

func (s *Server) handleTopStocks(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
		return
	}
	tf, ok := timeframeFromQuery(c)
	if !ok {
		return
	}

	// Serve from the scheduler's last ranking when it covers this request.
	if s.sched != nil && string(tf) == s.cfg.Schedule.Timeframe {
		if latest, refreshed := s.sched.Latest(); len(latest) > 0 {
			if n > len(latest) {
				n = len(latest)
			}
			c.JSON(http.StatusOK, gin.H{
				"timeframe":    tf,
				"stocks":       latest[:n],
				"count":        n,
				"refreshed_at": refreshed,
			})
			return
		}
	}

	stocks := s.analyzer.Analyze(c.Request.Context(), s.cfg.Watchlist, tf, n)
	c.JSON(http.StatusOK, gin.H{
		"timeframe": tf,
		"stocks":    stocks,
		"count":     len(stocks),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req struct {
		Symbols   []string `json:"symbols"`
		Timeframe string   `json:"timeframe"`
		Limit     int      `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols is required"})
		return
	}
	tf := model.TimeframeDay
	if req.Timeframe != "" {
		parsed, err := model.ParseTimeframe(req.Timeframe)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tf = parsed
	}

	stocks := s.analyzer.Analyze(c.Request.Context(), req.Symbols, tf, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"timeframe": tf,
		"stocks":    stocks,
		"count":     len(stocks),
	})
}

func (s *Server) handleBotStart(c *gin.Context) {
	var cfg model.BotConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Bots outlive the request, so they run on the background context.
	id, err := s.bots.Start(context.Background(), cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bot_id": id,
		"status": "started",
		"config": cfg,
	})
}

func (s *Server) handleBotStop(c *gin.Context) {
	id := c.Param("bot_id")
	if err := s.bots.Stop(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bot_id": id, "status": "stopped"})
}

func (s *Server) handleActiveBots(c *gin.Context) {
	active := s.bots.Active()
	c.JSON(http.StatusOK, gin.H{
		"active_bots": active,
		"count":       len(active),
	})
}

func (s *Server) handlePortfolio(c *gin.Context) {
	id := c.Param("bot_id")
	b, ok := s.bots.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "bot not found: " + id})
		return
	}

	prices := make(map[string]float64)
	for _, symbol := range b.Broker.Symbols() {
		quote, err := s.fetcher.FetchQuote(symbol)
		if err != nil {
			log.Printf("[WARN] quote for %s unavailable, valuing at cost: %v", symbol, err)
			continue
		}
		prices[symbol] = quote.Price
	}

	c.JSON(http.StatusOK, gin.H{
		"bot_id":    id,
		"portfolio": b.Broker.Portfolio(prices),
	})
}

func (s *Server) handlePrice(c *gin.Context) {
	symbol := c.Param("symbol")
	quote, err := s.fetcher.FetchQuote(symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	tf, ok := timeframeFromQuery(c)
	if !ok {
		return
	}

	points, err := s.analyzer.History(c.Request.Context(), symbol, tf)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":    symbol,
		"timeframe": tf,
		"data":      points,
	})
}

// handleChart serves the fully prepared chart for one symbol: the aligned
// series with trade annotations, the projected geometry and the trend.
func (s *Server) handleChart(c *gin.Context) {
	symbol := c.Param("symbol")
	tf, ok := timeframeFromQuery(c)
	if !ok {
		return
	}

	points, err := s.analyzer.History(c.Request.Context(), symbol, tf)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	var trades []model.TradeEvent
	if botID := c.Query("bot_id"); botID != "" {
		b, found := s.bots.Lookup(botID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found: " + botID})
			return
		}
		for _, trade := range b.Broker.Portfolio(nil).Trades {
			if trade.Symbol == symbol {
				trades = append(trades, trade)
			}
		}
	}

	res, err := chart.Align(points, trades, tf.Config().Match)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	engine := chart.NewEngine(res.Points, tf, chart.DefaultViewport())
	resp := gin.H{
		"symbol":     symbol,
		"timeframe":  tf,
		"points":     res.Points,
		"viewport":   chart.DefaultViewport(),
		"unassigned": len(res.Unassigned),
	}
	if engine.Renderable() {
		resp["geometry"] = engine.Geometry()
		resp["trend"] = engine.Trend()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleNews(c *gin.Context) {
	if s.news == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "news feed not configured"})
		return
	}
	limit := 5
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	report, err := s.news.Fetch(c.Request.Context(), c.Param("symbol"), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
