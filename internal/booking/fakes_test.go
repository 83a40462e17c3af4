package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

type fakeDirectory struct {
	mu      sync.Mutex
	users   map[string]*model.User
	lookups int
}

func newFakeDirectory(users ...*model.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]*model.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *fakeDirectory) UserByID(_ context.Context, id string) (*model.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	u, ok := d.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeStore keeps appointments in memory and enforces the same uniqueness
// rule the database index does, under a single mutex.
type fakeStore struct {
	mu    sync.Mutex
	appts []*model.Appointment
	dir   *fakeDirectory
}

func (f *fakeStore) ActiveBySlot(_ context.Context, providerID string, slot time.Time) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ProviderID == providerID && a.ScheduledAt.Equal(slot) && a.Active() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Insert(_ context.Context, a *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, exist := range f.appts {
		if exist.ProviderID == a.ProviderID && exist.ScheduledAt.Equal(a.ScheduledAt) && exist.Active() {
			return store.ErrConflict
		}
	}
	cp := *a
	f.appts = append(f.appts, &cp)
	return nil
}

func (f *fakeStore) ByID(_ context.Context, id string) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Cancel(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id && a.Active() {
			t := at
			a.CanceledAt = &t
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) ListActive(_ context.Context, clientID string, page int) ([]model.ClientAppointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []*model.Appointment
	for _, a := range f.appts {
		if a.ClientID == clientID && a.Active() {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ScheduledAt.Before(active[j].ScheduledAt)
	})

	const size = 20
	start := (page - 1) * size
	if start >= len(active) {
		return nil, nil
	}
	end := start + size
	if end > len(active) {
		end = len(active)
	}

	out := make([]model.ClientAppointment, 0, end-start)
	for _, a := range active[start:end] {
		ca := model.ClientAppointment{ID: a.ID, ScheduledAt: a.ScheduledAt}
		if f.dir != nil {
			if u, ok := f.dir.users[a.ProviderID]; ok {
				ca.Provider = model.ProviderInfo{ID: u.ID, Name: u.Name, AvatarPath: u.AvatarPath}
			}
		}
		out = append(out, ca)
	}
	return out, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appts)
}

type fakeSink struct {
	mu     sync.Mutex
	events []model.NotificationEvent
	err    error
}

func (s *fakeSink) Emit(_ context.Context, event model.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *fakeSink) emitted() []model.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.NotificationEvent(nil), s.events...)
}

var errSinkDown = errors.New("sink unreachable")
