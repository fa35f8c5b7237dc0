package users

import (
	"context"
	"io"
	"log/slog"

	"github.com/odyssey-erp/odyssey-admin/internal/simulate"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, in CreateInput) (User, error)
	UpdateUser(ctx context.Context, id string, in UpdateInput) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Service handles user business logic.
type Service struct {
	repo   RepositoryPort
	sim    *simulate.Simulator
	logger *slog.Logger
}

// NewService builds Service instance. A nil simulator disables latency and
// failure injection; a nil logger discards output.
func NewService(repo RepositoryPort, sim *simulate.Simulator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, sim: sim, logger: logger}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return simulate.Call(ctx, s.sim, simulate.OpList, s.repo.ListUsers)
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	return simulate.Call(ctx, s.sim, simulate.OpGet, func(ctx context.Context) (User, error) {
		return s.repo.GetUser(ctx, id)
	})
}

// CreateUser stores a new user under a freshly assigned id.
func (s *Service) CreateUser(ctx context.Context, in CreateInput) (User, error) {
	return simulate.Call(ctx, s.sim, simulate.OpCreate, func(ctx context.Context) (User, error) {
		if in.Status == "" {
			in.Status = StatusActive
		}
		status, err := ParseStatus(string(in.Status))
		if err != nil {
			return User{}, err
		}
		in.Status = status
		user, err := s.repo.CreateUser(ctx, in)
		if err != nil {
			return User{}, err
		}
		s.logger.DebugContext(ctx, "user created", slog.String("id", user.ID), slog.String("role", user.Role))
		return user, nil
	})
}

// UpdateUser merges the non-nil fields of in over the stored user.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateInput) (User, error) {
	return simulate.Call(ctx, s.sim, simulate.OpUpdate, func(ctx context.Context) (User, error) {
		if in.Status != nil {
			status, err := ParseStatus(string(*in.Status))
			if err != nil {
				return User{}, err
			}
			in.Status = &status
		}
		user, err := s.repo.UpdateUser(ctx, id, in)
		if err != nil {
			return User{}, err
		}
		s.logger.DebugContext(ctx, "user updated", slog.String("id", user.ID))
		return user, nil
	})
}

// DeleteUser removes the user with the given id.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return simulate.Do(ctx, s.sim, simulate.OpDelete, func(ctx context.Context) error {
		if err := s.repo.DeleteUser(ctx, id); err != nil {
			return err
		}
		s.logger.DebugContext(ctx, "user deleted", slog.String("id", id))
		return nil
	})
}
