package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"FeatureMill/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists datasets to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so training jobs can read while the pipeline writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id          TEXT PRIMARY KEY,
			ticker          TEXT NOT NULL,
			started_at      INTEGER NOT NULL,
			sequence_length INTEGER NOT NULL,
			num_windows     INTEGER NOT NULL,
			dense_length    INTEGER NOT NULL,
			imputed_days    INTEGER NOT NULL,
			feature_names   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ticker ON runs(ticker, started_at)`,

		`CREATE TABLE IF NOT EXISTS windows (
			run_id      TEXT NOT NULL,
			window_idx  INTEGER NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL,
			target_date TEXT NOT NULL,
			target      REAL NOT NULL,
			features    TEXT NOT NULL,
			PRIMARY KEY (run_id, window_idx)
		)`,
	}

	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

// SaveDataset writes one run's dataset in a single transaction. A run key is
// write-once; saving it twice fails.
func (s *SQLiteStore) SaveDataset(ticker string, run RunKey, ds *model.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, ticker, started_at, sequence_length, num_windows, dense_length, imputed_days, feature_names)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.RunID, ticker, run.StartedAt.Unix(),
		ds.SequenceLength, len(ds.Windows), ds.DenseLength, ds.ImputedDays,
		strings.Join(ds.FeatureNames, ","),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunID, err)
	}

	ins, err := tx.Prepare(`INSERT INTO windows
		(run_id, window_idx, start_date, end_date, target_date, target, features)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare window insert: %w", err)
	}
	defer ins.Close()

	for i, w := range ds.Windows {
		blob, err := json.Marshal(w.Rows)
		if err != nil {
			return fmt.Errorf("marshal window %d: %w", i, err)
		}
		if _, err := ins.Exec(run.RunID, i,
			w.Start.Format(dateLayout), w.End.Format(dateLayout),
			ds.TargetDates[i].Format(dateLayout), ds.Targets[i], string(blob),
		); err != nil {
			return fmt.Errorf("insert window %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadDataset reads a previously saved dataset back by ticker and run id.
func (s *SQLiteStore) LoadDataset(ticker, runID string) (*model.Dataset, error) {
	var (
		seqLen, denseLen, imputed int
		names                     string
	)
	err := s.db.QueryRow(`SELECT sequence_length, dense_length, imputed_days, feature_names
		FROM runs WHERE run_id = ? AND ticker = ?`, runID, ticker).
		Scan(&seqLen, &denseLen, &imputed, &names)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no dataset for %s run %s", ticker, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	ds := &model.Dataset{
		Ticker:         ticker,
		FeatureNames:   strings.Split(names, ","),
		SequenceLength: seqLen,
		DenseLength:    denseLen,
		ImputedDays:    imputed,
	}

	rows, err := s.db.Query(`SELECT start_date, end_date, target_date, target, features
		FROM windows WHERE run_id = ? ORDER BY window_idx`, runID)
	if err != nil {
		return nil, fmt.Errorf("load windows %s: %w", runID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			startStr, endStr, targetStr, blob string
			target                            float64
		)
		if err := rows.Scan(&startStr, &endStr, &targetStr, &target, &blob); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse start date %q: %w", startStr, err)
		}
		end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse end date %q: %w", endStr, err)
		}
		targetDate, err := time.ParseInLocation(dateLayout, targetStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse target date %q: %w", targetStr, err)
		}
		var matrix [][]float64
		if err := json.Unmarshal([]byte(blob), &matrix); err != nil {
			return nil, fmt.Errorf("unmarshal window features: %w", err)
		}
		ds.Windows = append(ds.Windows, model.FeatureWindow{Start: start, End: end, Rows: matrix})
		ds.Targets = append(ds.Targets, target)
		ds.TargetDates = append(ds.TargetDates, targetDate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate windows: %w", err)
	}

	return ds, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
