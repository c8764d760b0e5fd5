package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"TradePilot/internal/bot"
	"TradePilot/internal/cache"
	"TradePilot/internal/collector"
	"TradePilot/internal/config"
	"TradePilot/internal/model"
	"TradePilot/internal/news"
	"TradePilot/internal/rank"
	"TradePilot/internal/recorder"
	"TradePilot/internal/scheduler"
	"TradePilot/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradePilot starting...")

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; explicit environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.UseMock {
		fetcher = &collector.MockFetcher{Price: 100}
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	seriesCache, closeCache := buildCache(cfg)
	defer closeCache()

	rec := buildRecorder(cfg)
	defer rec.Close()

	analyzer := rank.NewAnalyzer(fetcher, seriesCache)
	bots := bot.NewManager(fetcher, rec, cfg.Bot.CheckInterval)

	var newsClient *news.Client
	if cfg.News.BaseURL != "" {
		newsClient = news.NewClient(cfg.News.BaseURL, cfg.DataSource.Proxy)
	}

	tf, _ := model.ParseTimeframe(cfg.Schedule.Timeframe)
	sched := scheduler.New(analyzer, cfg.Watchlist, tf)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] schedule refresh: %v", err)
	}
	sched.Start()
	go sched.RunNow()

	srv := server.New(cfg, analyzer, bots, fetcher, newsClient, sched)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("[INFO] listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}

	sched.Stop()
	bots.StopAll()
	log.Println("[INFO] bye")
}

// buildCache returns the configured series cache, falling back to the
// in-process cache when redis is unreachable.
func buildCache(cfg *config.Config) (cache.SeriesCache, func()) {
	if cfg.Cache.Backend == "redis" {
		rc, err := cache.NewRedisCache(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.TTL)
		if err == nil {
			log.Printf("[INFO] cache: redis at %s", cfg.Cache.Addr)
			return rc, func() {
				if err := rc.Close(); err != nil {
					log.Printf("[WARN] close redis: %v", err)
				}
			}
		}
		log.Printf("[WARN] redis unavailable, using memory cache: %v", err)
	}
	return cache.NewMemoryCache(cfg.Cache.TTL), func() {}
}

// buildRecorder opens the sqlite trade log, degrading to a no-op recorder so
// a bad database path never blocks trading.
func buildRecorder(cfg *config.Config) recorder.Recorder {
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] sqlite recorder unavailable, trades will not be persisted: %v", err)
		return recorder.NewNoopRecorder()
	}
	log.Printf("[INFO] recording trades to %s", cfg.Database.SQLitePath)
	return rec
}
