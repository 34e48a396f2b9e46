// Package selection holds the client-side "current establishment and year"
// pair and persists it across sessions.
//
// A State is built in two phases: New returns defaults, and Hydrate loads
// whatever was persisted before. Consumers wait for Ready before rendering
// anything that depends on the selection.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Persisted keys.
const (
	KeyEstablishmentID = "selected_establishment_id"
	KeyYear            = "selected_year"
)

// Year bounds accepted by SetYear and by hydration.
const (
	MinYear = 1
	MaxYear = 9999
)

var (
	// ErrNotHydrated is returned by setters called before Hydrate.
	ErrNotHydrated = errors.New("selection: not hydrated")
	// ErrInvalidYear is returned by SetYear for a year outside MinYear..MaxYear.
	ErrInvalidYear = errors.New("selection: invalid year")
)

// Storage is durable client-local key/value storage.
type Storage interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Selection is a point-in-time copy of the state.
type Selection struct {
	EstablishmentID *uuid.UUID
	Year            int
}

// Option configures a State.
type Option func(*State)

// WithClock sets the clock used for the default year.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// WithLogger sets the logger used to report discarded persisted values.
func WithLogger(log *slog.Logger) Option {
	return func(s *State) { s.log = log }
}

// State is the selection cache. It is safe for concurrent use.
type State struct {
	storage Storage
	now     func() time.Time
	log     *slog.Logger

	mu              sync.RWMutex
	establishmentID *uuid.UUID
	year            int
	ready           bool
}

// New returns a State holding defaults: no establishment and the current
// calendar year. Call Hydrate before using the setters.
func New(storage Storage, opts ...Option) *State {
	s := &State{
		storage: storage,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "selection")
	s.year = s.defaultYear()
	return s
}

func (s *State) defaultYear() int { return s.now().Year() }

// Hydrate loads persisted values into memory and marks the state ready.
// Unparseable persisted values are discarded in favour of defaults. If the
// storage itself fails, defaults are kept, the state still becomes ready,
// and the error is returned for the caller to log.
func (s *State) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.ready = true }()

	s.establishmentID = nil
	s.year = s.defaultYear()

	rawYear, ok, err := s.storage.Get(ctx, KeyYear)
	if err != nil {
		return fmt.Errorf("selection: load %s: %w", KeyYear, err)
	}
	if ok {
		if year, perr := strconv.Atoi(rawYear); perr == nil && validYear(year) {
			s.year = year
		} else {
			s.log.DebugContext(ctx, "discarding persisted year", slog.String("value", rawYear))
		}
	}

	rawID, ok, err := s.storage.Get(ctx, KeyEstablishmentID)
	if err != nil {
		return fmt.Errorf("selection: load %s: %w", KeyEstablishmentID, err)
	}
	if ok {
		if id, perr := uuid.Parse(rawID); perr == nil {
			s.establishmentID = &id
		} else {
			s.log.DebugContext(ctx, "discarding persisted establishment id", slog.String("value", rawID))
		}
	}

	return nil
}

// Ready reports whether Hydrate has completed.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// EstablishmentID returns the selected establishment, or nil.
func (s *State) EstablishmentID() *uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyID(s.establishmentID)
}

// Year returns the selected year.
func (s *State) Year() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.year
}

// Snapshot returns both values under one lock.
func (s *State) Snapshot() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Selection{EstablishmentID: copyID(s.establishmentID), Year: s.year}
}

// SetEstablishment selects id, or clears the selection when id is nil, and
// persists the change. Memory is updated even if persisting fails.
// Whether id still exists on the server is not checked.
func (s *State) SetEstablishment(ctx context.Context, id *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotHydrated
	}

	s.establishmentID = copyID(id)

	var err error
	if id == nil {
		err = s.storage.Delete(ctx, KeyEstablishmentID)
	} else {
		err = s.storage.Set(ctx, KeyEstablishmentID, id.String())
	}
	if err != nil {
		return fmt.Errorf("selection: persist %s: %w", KeyEstablishmentID, err)
	}
	return nil
}

// SetYear selects year and persists it. Memory is updated even if
// persisting fails.
func (s *State) SetYear(ctx context.Context, year int) error {
	if !validYear(year) {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return ErrNotHydrated
	}

	s.year = year

	if err := s.storage.Set(ctx, KeyYear, strconv.Itoa(year)); err != nil {
		return fmt.Errorf("selection: persist %s: %w", KeyYear, err)
	}
	return nil
}

func validYear(year int) bool { return year >= MinYear && year <= MaxYear }

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
