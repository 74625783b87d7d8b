package store

import (
	"time"

	"github.com/google/uuid"

	"FeatureMill/internal/model"
)

// RunKey identifies one pipeline run of one ticker in the feature store.
type RunKey struct {
	RunID     string
	StartedAt time.Time
}

// NewRunKey mints a fresh run key.
func NewRunKey() RunKey {
	return RunKey{RunID: uuid.NewString(), StartedAt: time.Now().UTC()}
}

// Store persists datasets for later retrieval by training and inference
// stages. Write-once per run key; the store never transforms data.
type Store interface {
	SaveDataset(ticker string, run RunKey, ds *model.Dataset) error
	LoadDataset(ticker, runID string) (*model.Dataset, error)
	Close() error
}
