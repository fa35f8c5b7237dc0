// Package store keeps the dashboard's users and roles in process memory. A
// single lock guards both collections so that cross-collection checks, such as
// refusing to delete a role that users still reference, run atomically.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

// Store is the in-memory backing for the users and roles services.
type Store struct {
	mu    sync.RWMutex
	ids   IDPolicy
	users []users.User
	roles []roles.Role
}

var (
	_ users.RepositoryPort = (*Store)(nil)
	_ roles.RepositoryPort = (*Store)(nil)
	_ roles.TxRepository   = txRepository{}
)

// New returns a Store holding the seed data. A nil policy uses SequentialIDs.
func New(ids IDPolicy) *Store {
	if ids == nil {
		ids = SequentialIDs{}
	}
	s := &Store{ids: ids}
	s.Reset()
	return s
}

// Reset discards every change and restores the seed data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = seedUsers()
	s.roles = seedRoles()
}

// WithTx runs fn while holding the write lock. fn must only use the provided
// TxRepository; calling back into the Store would deadlock.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, roles.TxRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, txRepository{s: s})
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

// GetUser finds a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.userIndex(id)
	if idx < 0 {
		return users.User{}, users.ErrNotFound
	}
	return s.users[idx], nil
}

// CreateUser appends a user under the next id of the configured policy.
func (s *Store) CreateUser(ctx context.Context, in users.CreateInput) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.users))
	for i, u := range s.users {
		ids[i] = u.ID
	}
	user := users.User{
		ID:     s.ids.Next(ids),
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Status: in.Status,
	}
	s.users = append(s.users, user)
	return user, nil
}

// UpdateUser merges in over the stored user.
func (s *Store) UpdateUser(ctx context.Context, id string, in users.UpdateInput) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.userIndex(id)
	if idx < 0 {
		return users.User{}, users.ErrNotFound
	}
	s.users[idx] = in.Apply(s.users[idx])
	return s.users[idx], nil
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.userIndex(id)
	if idx < 0 {
		return users.ErrNotFound
	}
	s.users = slices.Delete(s.users, idx, idx+1)
	return nil
}

// ListRoles returns all roles in insertion order.
func (s *Store) ListRoles(ctx context.Context) ([]roles.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]roles.Role, len(s.roles))
	for i, r := range s.roles {
		out[i] = r.Clone()
	}
	return out, nil
}

// GetRole finds a role by id.
func (s *Store) GetRole(ctx context.Context, id string) (roles.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRole(id)
}

// CreateRole appends a role unless its name is already taken.
func (s *Store) CreateRole(ctx context.Context, in roles.CreateInput) (roles.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roleNameIndex(in.Name) >= 0 {
		return roles.Role{}, roles.ErrAlreadyExists
	}
	ids := make([]string, len(s.roles))
	for i, r := range s.roles {
		ids[i] = r.ID
	}
	role := roles.Role{
		ID:          s.ids.Next(ids),
		Name:        in.Name,
		Description: in.Description,
		Permissions: in.Permissions.Clone(),
	}
	s.roles = append(s.roles, role)
	return role.Clone(), nil
}

// UpdateRole merges in over the stored role.
func (s *Store) UpdateRole(ctx context.Context, id string, in roles.UpdateInput) (roles.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRole(id, in)
}

func (s *Store) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u users.User) bool { return u.ID == id })
}

func (s *Store) roleIndex(id string) int {
	return slices.IndexFunc(s.roles, func(r roles.Role) bool { return r.ID == id })
}

func (s *Store) roleNameIndex(name string) int {
	return slices.IndexFunc(s.roles, func(r roles.Role) bool { return r.Name == name })
}

func (s *Store) getRole(id string) (roles.Role, error) {
	idx := s.roleIndex(id)
	if idx < 0 {
		return roles.Role{}, roles.ErrNotFound
	}
	return s.roles[idx].Clone(), nil
}

func (s *Store) updateRole(id string, in roles.UpdateInput) (roles.Role, error) {
	idx := s.roleIndex(id)
	if idx < 0 {
		return roles.Role{}, roles.ErrNotFound
	}
	if in.Name != nil {
		if other := s.roleNameIndex(*in.Name); other >= 0 && other != idx {
			return roles.Role{}, roles.ErrAlreadyExists
		}
	}
	s.roles[idx] = in.Apply(s.roles[idx])
	return s.roles[idx].Clone(), nil
}

// txRepository operates on a Store whose write lock is already held.
type txRepository struct {
	s *Store
}

func (t txRepository) GetRole(ctx context.Context, id string) (roles.Role, error) {
	return t.s.getRole(id)
}

func (t txRepository) UpdateRole(ctx context.Context, id string, in roles.UpdateInput) (roles.Role, error) {
	return t.s.updateRole(id, in)
}

func (t txRepository) DeleteRole(ctx context.Context, id string) error {
	idx := t.s.roleIndex(id)
	if idx < 0 {
		return roles.ErrNotFound
	}
	t.s.roles = slices.Delete(t.s.roles, idx, idx+1)
	return nil
}

func (t txRepository) CountUsersWithRole(ctx context.Context, name string) (int, error) {
	n := 0
	for _, u := range t.s.users {
		if u.Role == name {
			n++
		}
	}
	return n, nil
}
