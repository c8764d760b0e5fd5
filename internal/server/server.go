package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"TradePilot/internal/bot"
	"TradePilot/internal/collector"
	"TradePilot/internal/config"
	"TradePilot/internal/news"
	"TradePilot/internal/rank"
	"TradePilot/internal/scheduler"
)

// Server wires the HTTP API over the analyzer, bot manager and data fetcher.
type Server struct {
	cfg      *config.Config
	analyzer *rank.Analyzer
	bots     *bot.Manager
	fetcher  collector.Fetcher
	news     *news.Client
	sched    *scheduler.Scheduler

	engine   *gin.Engine
	upgrader websocket.Upgrader
}

// New builds the server and registers all routes. news and sched may be nil;
// the corresponding endpoints degrade gracefully.
func New(cfg *config.Config, analyzer *rank.Analyzer, bots *bot.Manager, fetcher collector.Fetcher, newsClient *news.Client, sched *scheduler.Scheduler) *Server {
	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		bots:     bots,
		fetcher:  fetcher,
		news:     newsClient,
		sched:    sched,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())
	s.registerRoutes(engine)
	s.engine = engine
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.handleRoot)

	api := r.Group("/api")
	{
		api.GET("/stocks/top/:n", s.handleTopStocks)
		api.POST("/stocks/analyze", s.handleAnalyze)
		api.POST("/bot/start", s.handleBotStart)
		api.POST("/bot/stop/:bot_id", s.handleBotStop)
		api.GET("/bots/active", s.handleActiveBots)
		api.GET("/portfolio/:bot_id", s.handlePortfolio)
		api.GET("/price/:symbol", s.handlePrice)
		api.GET("/history/:symbol", s.handleHistory)
		api.GET("/chart/:symbol", s.handleChart)
		api.GET("/news/:symbol", s.handleNews)
	}

	r.GET("/ws/price/:symbol", s.handlePriceStream)
}

// corsMiddleware allows the dashboard frontend to call the API from any
// origin, matching the permissive policy of a local development tool.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
