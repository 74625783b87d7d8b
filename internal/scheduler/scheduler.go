package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"FeatureMill/internal/model"
	"FeatureMill/internal/notifier"
	"FeatureMill/internal/pipeline"
	"FeatureMill/internal/runstate"
	"FeatureMill/internal/source"
	"FeatureMill/internal/store"
)

// Scheduler drives periodic pipeline runs over the configured ticker list.
type Scheduler struct {
	Cron     *cron.Cron
	Source   source.Source
	Store    store.Store
	Journal  *runstate.Journal
	Notifier *notifier.WebhookNotifier
	Tickers  []string
	Opts     pipeline.Options
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src source.Source, st store.Store, journal *runstate.Journal, wn *notifier.WebhookNotifier, tickers []string, opts pipeline.Options) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Source:   src,
		Store:    st,
		Journal:  journal,
		Notifier: wn,
		Tickers:  tickers,
		Opts:     opts,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily pipeline task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.runAll); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunAllNow executes the pipeline for every ticker immediately (manual
// trigger / RUN_ON_START).
func (s *Scheduler) RunAllNow() {
	s.runAll()
}

// runAll runs every ticker in its own goroutine. The pipeline is
// referentially transparent, so parallel invocation over independent series
// is safe; one ticker's failure never kills the batch.
func (s *Scheduler) runAll() {
	startedAt := time.Now().UTC()
	log.Printf("[INFO] running pipeline for %d tickers", len(s.Tickers))

	results := make([]notifier.RunResult, len(s.Tickers))
	var wg sync.WaitGroup
	for i, ticker := range s.Tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			results[i] = s.runTicker(ticker)
		}(i, ticker)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			log.Printf("[ERROR] ticker %s: %v", r.Ticker, r.Err)
		} else {
			log.Printf("[INFO] ticker %s: %d windows stored (run %s)", r.Ticker, r.Windows, r.RunID)
		}
	}

	summary := notifier.FormatRunSummary(results, startedAt)
	if err := s.Notifier.SendWithRetry(s.Ctx, summary, 3); err != nil {
		log.Printf("[ERROR] send run summary: %v", err)
	}
}

// runTicker fetches, transforms, and persists one ticker's dataset.
func (s *Scheduler) runTicker(ticker string) notifier.RunResult {
	result := notifier.RunResult{Ticker: ticker}

	obs, err := s.Source.FetchDaily(ticker, s.Opts.StartDate, s.Opts.EndDate)
	if err != nil {
		result.Err = fmt.Errorf("fetch %s: %w", ticker, err)
		s.Journal.RecordFailure(ticker, result.Err)
		return result
	}

	raw := model.RawSeries{Ticker: ticker, Observations: obs}
	ds, err := pipeline.BuildDataset(raw, s.Opts)
	if err != nil {
		result.Err = fmt.Errorf("build dataset %s: %w", ticker, err)
		s.Journal.RecordFailure(ticker, result.Err)
		return result
	}

	run := store.NewRunKey()
	if err := s.Store.SaveDataset(ticker, run, ds); err != nil {
		result.Err = fmt.Errorf("store dataset %s: %w", ticker, err)
		s.Journal.RecordFailure(ticker, result.Err)
		return result
	}

	s.Journal.RecordSuccess(ticker, run.RunID, ds)
	result.RunID = run.RunID
	result.Windows = ds.NumWindows()
	result.DenseLength = ds.DenseLength
	result.ImputedDays = ds.ImputedDays
	return result
}
