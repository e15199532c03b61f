package application

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/linskybing/programhub/internal/domain/program"
)

// Store is one session's in-memory view of a user's applications.
// Reads never reach the gateway; call LoadAll first.
type Store struct {
	repo program.Repository

	mu      sync.RWMutex
	ownerID uint
	loaded  bool
	items   []program.Application // created_at desc
}

func NewStore(repo program.Repository) *Store {
	return &Store{repo: repo}
}

// LoadAll replaces the collection with every application of ownerID.
// A failed or malformed load leaves the previous collection untouched.
func (s *Store) LoadAll(ctx context.Context, ownerID uint) error {
	apps, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return &program.GatewayError{Op: program.OpLoad, Err: err}
	}
	for i := range apps {
		if err := checkRow(apps[i], ownerID); err != nil {
			return &program.GatewayError{Op: program.OpLoad, Err: err}
		}
	}
	sortNewestFirst(apps)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ownerID
	s.loaded = true
	s.items = apps
	return nil
}

func (s *Store) GetByID(id string) (program.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return program.Application{}, program.ErrNotFound
}

// UpsertLocal replaces the entry with the same ID or inserts app keeping
// newest-first order.
func (s *Store) UpsertLocal(app program.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(app.ID); i >= 0 {
		s.items[i] = app
		return
	}
	pos := len(s.items)
	for i := range s.items {
		if s.items[i].CreatedAt.Before(app.CreatedAt) {
			pos = i
			break
		}
	}
	s.items = slices.Insert(s.items, pos, app)
}

func (s *Store) RemoveLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
}

// Snapshot returns a copy of the collection.
func (s *Store) Snapshot() []program.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) OwnerID() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownerID
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Search(text string) []program.Application {
	return Search(s.Snapshot(), text)
}

func (s *Store) FilterByStatus(filter string) []program.Application {
	return FilterByStatus(s.Snapshot(), filter)
}

func (s *Store) Query(text, filter string) []program.Application {
	return Query(s.Snapshot(), text, filter)
}

func (s *Store) GroupByBucket() Buckets {
	return GroupByBucket(s.Snapshot())
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func checkRow(app program.Application, ownerID uint) error {
	if app.ID == "" {
		return fmt.Errorf("malformed row: empty id")
	}
	if !app.OwnedBy(ownerID) {
		return fmt.Errorf("malformed row %s: owner %d, expected %d", app.ID, app.OwnerID, ownerID)
	}
	if !app.Status.Valid() {
		return fmt.Errorf("malformed row %s: unknown status %q", app.ID, app.Status)
	}
	return nil
}

func sortNewestFirst(apps []program.Application) {
	slices.SortStableFunc(apps, func(a, b program.Application) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Sessions hands out one Store per owner so a user's requests share a
// session while different users stay isolated.
type Sessions struct {
	repo program.Repository
	now  func() time.Time

	mu      sync.Mutex
	stores  map[uint]*Store
	touched map[uint]time.Time
}

func NewSessions(repo program.Repository) *Sessions {
	return &Sessions{
		repo:    repo,
		now:     time.Now,
		stores:  make(map[uint]*Store),
		touched: make(map[uint]time.Time),
	}
}

// For returns ownerID's store, creating an empty one on first use.
func (s *Sessions) For(ownerID uint) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stores[ownerID]
	if !ok {
		st = NewStore(s.repo)
		s.stores[ownerID] = st
	}
	s.touched[ownerID] = s.now()
	return st
}

// Apply mirrors an application changed outside its owner's session into
// that session, if one has been loaded.
func (s *Sessions) Apply(app program.Application) {
	s.mu.Lock()
	st, ok := s.stores[app.OwnerID]
	s.mu.Unlock()

	if ok && st.Loaded() {
		st.UpsertLocal(app)
	}
}

// Drop discards ownerID's session.
func (s *Sessions) Drop(ownerID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, ownerID)
	delete(s.touched, ownerID)
}

// EvictIdle drops sessions not used for longer than maxIdle and returns how
// many were dropped. The next request of an evicted owner reloads.
func (s *Sessions) EvictIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for owner, at := range s.touched {
		if at.Before(cutoff) {
			delete(s.stores, owner)
			delete(s.touched, owner)
			n++
		}
	}
	return n
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// SetClock replaces the time source used for idle tracking.
func (s *Sessions) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
