// Package authtest provides an in-memory auth.UserStore for handler tests.
package authtest

import (
	"context"
	"slices"
	"sort"
	"sync"

	"equipment-backend/internal/platform/auth"
)

type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]auth.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]auth.User{}}
}

func (m *MemoryUsers) GetByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &u, nil
}

func (m *MemoryUsers) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *MemoryUsers) List(ctx context.Context) ([]auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]auth.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryUsers) ListByIDs(ctx context.Context, ids []string) ([]auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []auth.User{}
	for id, u := range m.users {
		if slices.Contains(ids, id) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MemoryUsers) Create(ctx context.Context, u *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(u.Email, u.ID) {
		return auth.ErrEmailTaken
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryUsers) Update(ctx context.Context, id string, apply func(u *auth.User) error) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	if err := apply(&u); err != nil {
		return nil, err
	}
	if m.emailTaken(u.Email, id) {
		return nil, auth.ErrEmailTaken
	}
	m.users[id] = u
	return &u, nil
}

func (m *MemoryUsers) Delete(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	delete(m.users, id)
	return &u, nil
}

func (m *MemoryUsers) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *MemoryUsers) emailTaken(email, exceptID string) bool {
	for id, u := range m.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// NoRefs is a ReferenceGuard that never finds references.
type NoRefs struct{}

func (NoRefs) UserReferenced(ctx context.Context, id string) (bool, error) { return false, nil }
