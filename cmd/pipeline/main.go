package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"FeatureMill/internal/config"
	"FeatureMill/internal/notifier"
	"FeatureMill/internal/runstate"
	"FeatureMill/internal/scheduler"
	"FeatureMill/internal/source"
	"FeatureMill/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FeatureMill starting...")

	// Load .env if present, then config
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		log.Fatalf("[FATAL] pipeline options: %v", err)
	}

	// Init market-data source
	var src source.Source
	switch cfg.DataSource.Provider {
	case "polygon":
		src = source.NewPolygonSource(cfg.DataSource.APIKey, cfg.Proxy)
	case "mock":
		src = &source.MockSource{BasePrice: 100}
	default:
		src = source.NewYahooSource(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", src.Name())

	// Init feature store
	var st store.Store
	if cfg.Store.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init run journal
	journal, err := runstate.NewJournal(cfg.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init run journal: %v", err)
	}

	// Init webhook notifier
	wn := notifier.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, src, st, journal, wn, cfg.Tickers, opts)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		go sched.RunAllNow()
	}

	log.Println("[INFO] FeatureMill is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] FeatureMill stopped")
}
