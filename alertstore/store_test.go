package alertstore

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bidking/go-bidking-client/api"
	"github.com/bidking/go-bidking-client/api/alerts"
)

type mockAlertsAPI struct {
	listCalls   int
	getCalls    int
	createCalls int
	updateCalls int
	deleteCalls int
	testCalls   int

	lastUpdate alerts.AlertProfileUpdate

	profiles []alerts.AlertProfile
	err      error
}

func (m *mockAlertsAPI) List(ctx context.Context) ([]alerts.AlertProfile, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	return append([]alerts.AlertProfile(nil), m.profiles...), nil
}

func (m *mockAlertsAPI) Get(ctx context.Context, id string) (*alerts.AlertProfile, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			p := m.profiles[i]
			return &p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *mockAlertsAPI) Create(ctx context.Context, in alerts.AlertProfileInput) (*alerts.AlertProfile, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	return &alerts.AlertProfile{ID: "ap-new", Name: in.Name}, nil
}

func (m *mockAlertsAPI) Update(ctx context.Context, id string, upd alerts.AlertProfileUpdate) (*alerts.AlertProfile, error) {
	m.updateCalls++
	m.lastUpdate = upd
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.profiles {
		if m.profiles[i].ID == id {
			p := m.profiles[i]
			if upd.Name != nil {
				p.Name = *upd.Name
			}
			if upd.IsActive != nil {
				p.IsActive = *upd.IsActive
			}
			return &p, nil
		}
	}
	return nil, api.ErrNotFound
}

func (m *mockAlertsAPI) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	return m.err
}

func (m *mockAlertsAPI) Test(ctx context.Context, id string) (*alerts.TestResult, error) {
	m.testCalls++
	if m.err != nil {
		return nil, m.err
	}
	return &alerts.TestResult{ProfileID: id, MatchCount: 2}, nil
}

func TestStore_LoadProfiles(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{
		{ID: "ap-1", Name: "Cyber", IsActive: true},
		{ID: "ap-2", Name: "Cloud"},
	}}
	store := New(mock, nil)

	if err := store.LoadProfiles(context.Background()); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	profiles := store.Profiles()
	if len(profiles) != 2 {
		t.Fatalf("Profiles() returned %d, want 2", len(profiles))
	}
	if store.Loading() {
		t.Error("Loading() should be false after completion")
	}
	if store.LastError() != "" {
		t.Errorf("LastError() = %q, want empty", store.LastError())
	}
}

func TestStore_LoadProfilesFailureKeepsList(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1"}}}
	store := New(mock, nil)

	if err := store.LoadProfiles(context.Background()); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	mock.err = errors.New("connection refused")
	if err := store.LoadProfiles(context.Background()); err == nil {
		t.Fatal("LoadProfiles() expected error")
	}

	if len(store.Profiles()) != 1 {
		t.Error("failed load must leave the existing list untouched")
	}
	if store.LastError() != genericErrMsg {
		t.Errorf("LastError() = %q, want generic fallback", store.LastError())
	}
}

func TestStore_CreateProfileAppends(t *testing.T) {
	mock := &mockAlertsAPI{}
	store := New(mock, nil)

	created, err := store.CreateProfile(context.Background(), alerts.AlertProfileInput{Name: "Cloud"})
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if created.ID != "ap-new" {
		t.Errorf("created.ID = %q, want %q", created.ID, "ap-new")
	}

	profiles := store.Profiles()
	if len(profiles) != 1 || profiles[0].ID != "ap-new" {
		t.Errorf("Profiles() = %+v, want the created profile appended", profiles)
	}
}

func TestStore_DeleteProfileFailureLeavesState(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1"}, {ID: "ap-2"}}}
	store := New(mock, nil)
	ctx := context.Background()

	if err := store.LoadProfiles(ctx); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	mock.err = &api.Error{Status: http.StatusConflict, Detail: "profile has pending deliveries"}
	if err := store.DeleteProfile(ctx, "ap-1"); err == nil {
		t.Fatal("DeleteProfile() expected error")
	}

	if len(store.Profiles()) != 2 {
		t.Error("failed delete must leave the list unchanged")
	}
	if store.LastError() != "profile has pending deliveries" {
		t.Errorf("LastError() = %q, want backend detail", store.LastError())
	}
}

func TestStore_DeleteProfileClearsSelection(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1"}}}
	store := New(mock, nil)
	ctx := context.Background()

	if err := store.LoadProfiles(ctx); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if err := store.SelectProfile(ctx, "ap-1"); err != nil {
		t.Fatalf("SelectProfile() error = %v", err)
	}
	if _, ok := store.Selected(); !ok {
		t.Fatal("Selected() should report the selection")
	}

	if err := store.DeleteProfile(ctx, "ap-1"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	if len(store.Profiles()) != 0 {
		t.Error("deleted profile still present")
	}
	if _, ok := store.Selected(); ok {
		t.Error("deleting the selected profile must clear the selection")
	}
}

func TestStore_ToggleProfileActive(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1", IsActive: true}}}
	store := New(mock, nil)
	ctx := context.Background()

	if err := store.LoadProfiles(ctx); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	toggled, err := store.ToggleProfileActive(ctx, "ap-1")
	if err != nil {
		t.Fatalf("ToggleProfileActive() error = %v", err)
	}
	if toggled.IsActive {
		t.Error("toggled profile should be inactive")
	}
	if mock.updateCalls != 1 {
		t.Errorf("updateCalls = %d, want exactly 1", mock.updateCalls)
	}
	if mock.lastUpdate.IsActive == nil || *mock.lastUpdate.IsActive {
		t.Error("update payload should carry is_active=false and nothing else")
	}
	if mock.lastUpdate.Name != nil {
		t.Error("toggle must not touch other fields")
	}
	if got := store.Profiles()[0]; got.IsActive {
		t.Error("in-memory profile should be inactive after toggle")
	}
}

func TestStore_ToggleProfileActiveUnknownID(t *testing.T) {
	store := New(&mockAlertsAPI{}, nil)

	_, err := store.ToggleProfileActive(context.Background(), "missing")
	if !errors.Is(err, api.ErrNotFound) {
		t.Errorf("ToggleProfileActive() error = %v, want ErrNotFound", err)
	}
}

func TestStore_ToggleFailureKeepsFlag(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1", IsActive: true}}}
	store := New(mock, nil)
	ctx := context.Background()

	if err := store.LoadProfiles(ctx); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	mock.err = errors.New("backend down")
	if _, err := store.ToggleProfileActive(ctx, "ap-1"); err == nil {
		t.Fatal("ToggleProfileActive() expected error")
	}

	if got := store.Profiles()[0]; !got.IsActive {
		t.Error("failed toggle must leave the in-memory flag unchanged")
	}
}

func TestStore_TestProfile(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1"}}}
	store := New(mock, nil)

	result, err := store.TestProfile(context.Background(), "ap-1")
	if err != nil {
		t.Fatalf("TestProfile() error = %v", err)
	}
	if result.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", result.MatchCount)
	}
	if mock.testCalls != 1 {
		t.Errorf("testCalls = %d, want 1", mock.testCalls)
	}
}

func TestStore_UpdateProfileSyncsSelection(t *testing.T) {
	mock := &mockAlertsAPI{profiles: []alerts.AlertProfile{{ID: "ap-1", Name: "Cyber"}}}
	store := New(mock, nil)
	ctx := context.Background()

	if err := store.LoadProfiles(ctx); err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if err := store.SelectProfile(ctx, "ap-1"); err != nil {
		t.Fatalf("SelectProfile() error = %v", err)
	}

	name := "Cyber and Cloud"
	if _, err := store.UpdateProfile(ctx, "ap-1", alerts.AlertProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	selected, ok := store.Selected()
	if !ok {
		t.Fatal("Selected() should still report the selection")
	}
	if selected.Name != name {
		t.Errorf("Selected().Name = %q, want %q", selected.Name, name)
	}
	if store.Profiles()[0].Name != name {
		t.Errorf("Profiles()[0].Name = %q, want %q", store.Profiles()[0].Name, name)
	}
}
