// Package alertstore holds alert profiles in memory for callers that bypass
// the querycache layer.
//
// The store is an independent source of truth over the same /alerts resource
// the querycache.CachedAlerts decorator wraps; the two are deliberately NOT
// synchronized. Components reading from one will not observe writes made
// through the other until the backend is re-read. A consolidated design would
// keep a single cache-backed owner; both surfaces exist because both sets of
// call sites do.
package alertstore

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bidking/go-bidking-client/api"
	"github.com/bidking/go-bidking-client/api/alerts"
)

// genericErrMsg is shown when the backend provided no detail message.
const genericErrMsg = "something went wrong, please try again"

// AlertsAPI is the subset of the alerts client the store needs.
// *alerts.Client satisfies it.
type AlertsAPI interface {
	List(ctx context.Context) ([]alerts.AlertProfile, error)
	Get(ctx context.Context, id string) (*alerts.AlertProfile, error)
	Create(ctx context.Context, in alerts.AlertProfileInput) (*alerts.AlertProfile, error)
	Update(ctx context.Context, id string, upd alerts.AlertProfileUpdate) (*alerts.AlertProfile, error)
	Delete(ctx context.Context, id string) error
	Test(ctx context.Context, id string) (*alerts.TestResult, error)
}

// Store keeps the profile list, a selection, a loading flag, and the last
// human-readable error. Reads of store state are snapshot copies; mutation of
// store state happens only after the corresponding call succeeds.
type Store struct {
	client AlertsAPI
	log    *slog.Logger

	mu        sync.Mutex
	profiles  []alerts.AlertProfile
	selected  *alerts.AlertProfile
	loading   bool
	lastError string
}

// New creates a Store around the given alerts client.
func New(client AlertsAPI, log *slog.Logger) *Store {
	return &Store{client: client, log: log}
}

// Profiles returns a copy of the in-memory profile list.
func (s *Store) Profiles() []alerts.AlertProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]alerts.AlertProfile(nil), s.profiles...)
}

// Selected returns a copy of the selected profile, if any.
func (s *Store) Selected() (alerts.AlertProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return alerts.AlertProfile{}, false
	}
	return *s.selected, true
}

// Loading reports whether a store operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the last recorded human-readable error message. Empty
// after any successful operation.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// LoadProfiles fetches all profiles and replaces the in-memory list.
// Read failures are recorded but not returned as state corruption: the
// existing list is left as-is.
func (s *Store) LoadProfiles(ctx context.Context) error {
	s.begin()

	profiles, err := s.client.List(ctx)
	if err != nil {
		s.fail("failed to load alert profiles", err)
		return err
	}

	s.mu.Lock()
	s.profiles = profiles
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// SelectProfile fetches one profile and makes it the current selection.
func (s *Store) SelectProfile(ctx context.Context, id string) error {
	s.begin()

	profile, err := s.client.Get(ctx, id)
	if err != nil {
		s.fail("failed to load alert profile", err)
		return err
	}

	s.mu.Lock()
	s.selected = profile
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// CreateProfile creates a profile and appends it to the in-memory list.
// The error is returned so callers can branch on failure.
func (s *Store) CreateProfile(ctx context.Context, in alerts.AlertProfileInput) (*alerts.AlertProfile, error) {
	s.begin()

	created, err := s.client.Create(ctx, in)
	if err != nil {
		s.fail("failed to create alert profile", err)
		return nil, err
	}

	s.mu.Lock()
	s.profiles = append(s.profiles, *created)
	s.finishLocked()
	s.mu.Unlock()
	return created, nil
}

// UpdateProfile applies a partial update and replaces the matching in-memory
// entry (and the selection, when it matches) on success.
func (s *Store) UpdateProfile(ctx context.Context, id string, upd alerts.AlertProfileUpdate) (*alerts.AlertProfile, error) {
	s.begin()

	updated, err := s.client.Update(ctx, id, upd)
	if err != nil {
		s.fail("failed to update alert profile", err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			s.profiles[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = updated
	}
	s.finishLocked()
	s.mu.Unlock()
	return updated, nil
}

// DeleteProfile removes a profile. On failure the in-memory list is left
// unchanged and the error is returned.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.begin()

	if err := s.client.Delete(ctx, id); err != nil {
		s.fail("failed to delete alert profile", err)
		return err
	}

	s.mu.Lock()
	kept := s.profiles[:0]
	for _, p := range s.profiles {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.profiles = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.finishLocked()
	s.mu.Unlock()
	return nil
}

// TestProfile runs a profile test and returns the result. Store state other
// than loading/error is untouched.
func (s *Store) TestProfile(ctx context.Context, id string) (*alerts.TestResult, error) {
	s.begin()

	result, err := s.client.Test(ctx, id)
	if err != nil {
		s.fail("failed to test alert profile", err)
		return nil, err
	}

	s.mu.Lock()
	s.finishLocked()
	s.mu.Unlock()
	return result, nil
}

// ToggleProfileActive flips a profile's is_active flag with a single update
// call. The in-memory flag changes only after the call succeeds.
func (s *Store) ToggleProfileActive(ctx context.Context, id string) (*alerts.AlertProfile, error) {
	s.mu.Lock()
	var current *alerts.AlertProfile
	for i := range s.profiles {
		if s.profiles[i].ID == id {
			current = &s.profiles[i]
			break
		}
	}
	if current == nil {
		s.mu.Unlock()
		return nil, api.ErrNotFound
	}
	next := !current.IsActive
	s.mu.Unlock()

	return s.UpdateProfile(ctx, id, alerts.AlertProfileUpdate{IsActive: &next})
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

// finishLocked clears loading and the error message. Callers hold s.mu.
func (s *Store) finishLocked() {
	s.loading = false
	s.lastError = ""
}

// fail records a human-readable message: the backend detail when present,
// a generic fallback otherwise.
func (s *Store) fail(what string, err error) {
	msg := api.ErrorDetail(err)
	if msg == "" {
		msg = genericErrMsg
	}

	s.mu.Lock()
	s.loading = false
	s.lastError = msg
	s.mu.Unlock()

	if s.log != nil {
		s.log.Warn(what, "error", err)
	}
}
