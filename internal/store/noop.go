package store

import (
	"fmt"

	"FeatureMill/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveDataset(_ string, _ RunKey, _ *model.Dataset) error { return nil }

func (n *NoopStore) LoadDataset(ticker, runID string) (*model.Dataset, error) {
	return nil, fmt.Errorf("noop store: no dataset for %s run %s", ticker, runID)
}

func (n *NoopStore) Close() error { return nil }
