package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var ErrPreviewNotFound = errors.New("preview not found")

// Preview is one in-memory rendering held for display.
type Preview struct {
	Handle   string
	QuoteID  string
	Filename string
	Data     []byte
	Created  time.Time
}

// PreviewStore keeps preview documents until they are released. Every Put
// gets its own handle and its own copy of the bytes.
type PreviewStore struct {
	mu      sync.Mutex
	entries map[string]*Preview
	now     func() time.Time
}

func NewPreviewStore() *PreviewStore {
	return &PreviewStore{entries: make(map[string]*Preview), now: time.Now}
}

// Put stores data behind a fresh handle.
func (s *PreviewStore) Put(quoteID, filename string, data []byte) Preview {
	p := &Preview{
		Handle:   uuid.NewString(),
		QuoteID:  quoteID,
		Filename: filename,
		Data:     append([]byte(nil), data...),
		Created:  s.now(),
	}
	s.mu.Lock()
	s.entries[p.Handle] = p
	s.mu.Unlock()
	return *p
}

// Get returns the preview behind handle.
func (s *PreviewStore) Get(handle string) (Preview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.entries[handle]
	if !ok {
		return Preview{}, fmt.Errorf("preview %s: %w", handle, ErrPreviewNotFound)
	}
	return *p, nil
}

// Release frees the preview. Releasing an unknown or already released
// handle reports ErrPreviewNotFound.
func (s *PreviewStore) Release(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[handle]; !ok {
		return fmt.Errorf("preview %s: %w", handle, ErrPreviewNotFound)
	}
	delete(s.entries, handle)
	return nil
}

// Len is the number of previews currently held.
func (s *PreviewStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// SweepOlderThan releases previews created more than ttl ago and returns how
// many were dropped.
func (s *PreviewStore) SweepOlderThan(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for handle, p := range s.entries {
		if p.Created.Before(cutoff) {
			delete(s.entries, handle)
			n++
		}
	}
	return n
}

// StartPreviewSweeper schedules SweepOlderThan on a cron spec such as
// "@every 5m". The caller stops the returned cron on shutdown.
func StartPreviewSweeper(store *PreviewStore, spec string, ttl time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := store.SweepOlderThan(ttl); n > 0 {
			log.Printf("previews: released %d expired preview(s)", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule preview sweeper %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
