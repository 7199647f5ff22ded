package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"orcaeletricista/models"
)

// DefaultStateKey is the storage key of the serialized application state.
const DefaultStateKey = "orca_eletricista_state"

const appStateCollection = "app_state"

// RecordStateStore keeps the application state as a single JSON record in
// the app_state collection, keyed by state_key.
type RecordStateStore struct {
	app core.App
	key string
}

func NewRecordStateStore(app core.App, key string) *RecordStateStore {
	if key == "" {
		key = DefaultStateKey
	}
	return &RecordStateStore{app: app, key: key}
}

// Load reads the stored state. A missing record yields the empty state. A
// stored shape that does not decode is returned as an error.
func (s *RecordStateStore) Load() (models.AppState, error) {
	record, err := s.app.FindFirstRecordByData(appStateCollection, "state_key", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmptyAppState(), nil
	}
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to read state %q: %w", s.key, err)
	}

	var state models.AppState
	if err := record.UnmarshalJSONField("data", &state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to decode state %q: %w", s.key, err)
	}
	if state.Quotes == nil {
		state.Quotes = []models.Quote{}
	}
	return state, nil
}

// Save replaces the stored state, creating the record on first use.
func (s *RecordStateStore) Save(state models.AppState) error {
	record, err := s.app.FindFirstRecordByData(appStateCollection, "state_key", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		col, colErr := s.app.FindCollectionByNameOrId(appStateCollection)
		if colErr != nil {
			return fmt.Errorf("failed to find %s collection: %w", appStateCollection, colErr)
		}
		record = core.NewRecord(col)
		record.Set("state_key", s.key)
	} else if err != nil {
		return fmt.Errorf("failed to read state %q: %w", s.key, err)
	}

	record.Set("data", state)
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("failed to save state %q: %w", s.key, err)
	}
	return nil
}
