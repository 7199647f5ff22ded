package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"orcaeletricista/models"
)

var (
	ErrQuoteNotFound = errors.New("quote not found")
	ErrInvalidStatus = errors.New("invalid quote status")
	ErrInvalidTab    = errors.New("invalid tab")
)

// ── reducers ─────────────────────────────────────────────────────────────
// Each reducer returns a new state and never mutates its input.

// AddQuote prepends q and switches the view to the quote list.
func AddQuote(s models.AppState, q models.Quote) models.AppState {
	quotes := make([]models.Quote, 0, len(s.Quotes)+1)
	quotes = append(quotes, q)
	quotes = append(quotes, s.Quotes...)
	return models.AppState{Quotes: quotes, ActiveTab: models.TabQuotes}
}

// DeleteQuote drops the quote with the given id. Unknown ids leave the
// collection unchanged.
func DeleteQuote(s models.AppState, id string) models.AppState {
	quotes := make([]models.Quote, 0, len(s.Quotes))
	for _, q := range s.Quotes {
		if q.ID != id {
			quotes = append(quotes, q)
		}
	}
	return models.AppState{Quotes: quotes, ActiveTab: s.ActiveTab}
}

// UpdateQuoteStatus sets the status of one quote. Any transition is allowed.
func UpdateQuoteStatus(s models.AppState, id string, status models.QuoteStatus) models.AppState {
	quotes := make([]models.Quote, len(s.Quotes))
	copy(quotes, s.Quotes)
	for i := range quotes {
		if quotes[i].ID == id {
			quotes[i].Status = status
		}
	}
	return models.AppState{Quotes: quotes, ActiveTab: s.ActiveTab}
}

// SetActiveTab changes the current view.
func SetActiveTab(s models.AppState, tab models.Tab) models.AppState {
	return models.AppState{Quotes: s.Quotes, ActiveTab: tab}
}

// ── controller ───────────────────────────────────────────────────────────

// StateStore persists the whole application state under one key.
type StateStore interface {
	Load() (models.AppState, error)
	Save(models.AppState) error
}

// StateController owns the application state. Every transition goes through
// a reducer and the resulting state is persisted as a whole.
type StateController struct {
	mu    sync.Mutex
	state models.AppState
	store StateStore
}

// NewStateController loads the stored state. A read failure is returned to
// the caller; a missing record yields the empty state.
func NewStateController(store StateStore) (*StateController, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app state: %w", err)
	}
	if state.Quotes == nil {
		state.Quotes = []models.Quote{}
	}
	if !state.ActiveTab.Valid() {
		state.ActiveTab = models.TabDashboard
	}
	return &StateController{state: state, store: store}, nil
}

// Snapshot returns the current state. The quote slice is a copy.
func (c *StateController) Snapshot() models.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	quotes := make([]models.Quote, len(c.state.Quotes))
	copy(quotes, c.state.Quotes)
	return models.AppState{Quotes: quotes, ActiveTab: c.state.ActiveTab}
}

// FindQuote returns the quote with the given id.
func (c *StateController) FindQuote(id string) (models.Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok := findQuote(c.state.Quotes, id); ok {
		return q, nil
	}
	return models.Quote{}, fmt.Errorf("quote %s: %w", id, ErrQuoteNotFound)
}

func findQuote(quotes []models.Quote, id string) (models.Quote, bool) {
	for _, q := range quotes {
		if q.ID == id {
			return q, true
		}
	}
	return models.Quote{}, false
}

// Dispatch applies reduce to the current state and persists the result. If
// persisting fails the in-memory state is left as it was.
func (c *StateController) Dispatch(reduce func(models.AppState) models.AppState) (models.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(reduce(c.state))
}

// dispatchQuote is Dispatch for a transition on one quote. The existence
// check and the save happen under the same lock, so a quote removed by a
// concurrent call is reported as ErrQuoteNotFound.
func (c *StateController) dispatchQuote(id string, reduce func(models.AppState) models.AppState) (models.AppState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := findQuote(c.state.Quotes, id); !ok {
		return models.AppState{}, fmt.Errorf("quote %s: %w", id, ErrQuoteNotFound)
	}
	return c.commit(reduce(c.state))
}

// commit persists next and makes it current. c.mu must be held.
func (c *StateController) commit(next models.AppState) (models.AppState, error) {
	if err := c.store.Save(next); err != nil {
		log.Printf("app_state: save failed, keeping previous state: %v", err)
		return c.state, fmt.Errorf("failed to save app state: %w", err)
	}
	c.state = next
	return next, nil
}

// AddQuote stores a finalized quote at the head of the collection.
func (c *StateController) AddQuote(q models.Quote) (models.AppState, error) {
	return c.Dispatch(func(s models.AppState) models.AppState { return AddQuote(s, q) })
}

// DeleteQuote removes a quote; it reports ErrQuoteNotFound for unknown ids.
func (c *StateController) DeleteQuote(id string) (models.AppState, error) {
	return c.dispatchQuote(id, func(s models.AppState) models.AppState { return DeleteQuote(s, id) })
}

// UpdateQuoteStatus validates status, applies it to one quote and returns
// the updated quote from the committed state.
func (c *StateController) UpdateQuoteStatus(id string, status models.QuoteStatus) (models.Quote, error) {
	if !status.Valid() {
		return models.Quote{}, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	state, err := c.dispatchQuote(id, func(s models.AppState) models.AppState { return UpdateQuoteStatus(s, id, status) })
	if err != nil {
		return models.Quote{}, err
	}
	q, _ := findQuote(state.Quotes, id)
	return q, nil
}

// SetActiveTab validates tab and switches the current view.
func (c *StateController) SetActiveTab(tab models.Tab) (models.AppState, error) {
	if !tab.Valid() {
		return models.AppState{}, fmt.Errorf("%q: %w", tab, ErrInvalidTab)
	}
	return c.Dispatch(func(s models.AppState) models.AppState { return SetActiveTab(s, tab) })
}
