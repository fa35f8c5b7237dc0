package roles

import (
	"context"
	"io"
	"log/slog"

	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/simulate"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id string) (Role, error)
	CreateRole(ctx context.Context, in CreateInput) (Role, error)
	UpdateRole(ctx context.Context, id string, in UpdateInput) (Role, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations that must not interleave with other
// writes, including the lookup of users that still reference a role.
type TxRepository interface {
	GetRole(ctx context.Context, id string) (Role, error)
	UpdateRole(ctx context.Context, id string, in UpdateInput) (Role, error)
	DeleteRole(ctx context.Context, id string) error
	CountUsersWithRole(ctx context.Context, name string) (int, error)
}

// Service handles role and permission business logic.
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

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpList, s.repo.ListRoles)
}

// GetRole fetches a role by ID.
func (s *Service) GetRole(ctx context.Context, id string) (Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpGet, func(ctx context.Context) (Role, error) {
		return s.repo.GetRole(ctx, id)
	})
}

// CreateRole inserts a new role. The name must not be taken.
func (s *Service) CreateRole(ctx context.Context, in CreateInput) (Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpCreate, func(ctx context.Context) (Role, error) {
		perms, err := rbac.Normalize(in.Permissions)
		if err != nil {
			return Role{}, err
		}
		in.Permissions = perms
		role, err := s.repo.CreateRole(ctx, in)
		if err != nil {
			return Role{}, err
		}
		s.logger.DebugContext(ctx, "role created", slog.String("id", role.ID), slog.String("name", role.Name))
		return role, nil
	})
}

// UpdateRole merges the provided fields over the stored role. Renaming does
// not touch users that reference the old name.
func (s *Service) UpdateRole(ctx context.Context, id string, in UpdateInput) (Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpUpdate, func(ctx context.Context) (Role, error) {
		if in.Permissions != nil {
			perms, err := rbac.Normalize(in.Permissions)
			if err != nil {
				return Role{}, err
			}
			in.Permissions = perms
		}
		role, err := s.repo.UpdateRole(ctx, id, in)
		if err != nil {
			return Role{}, err
		}
		s.logger.DebugContext(ctx, "role updated", slog.String("id", role.ID), slog.String("name", role.Name))
		return role, nil
	})
}

// DeleteRole removes a role unless a user is still assigned to it.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return simulate.Do(ctx, s.sim, simulate.OpDelete, func(ctx context.Context) error {
		return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
			role, err := tx.GetRole(ctx, id)
			if err != nil {
				return err
			}
			assigned, err := tx.CountUsersWithRole(ctx, role.Name)
			if err != nil {
				return err
			}
			if assigned > 0 {
				s.logger.DebugContext(ctx, "role delete refused", slog.String("id", id), slog.Int("assigned", assigned))
				return ErrInUse
			}
			if err := tx.DeleteRole(ctx, id); err != nil {
				return err
			}
			s.logger.DebugContext(ctx, "role deleted", slog.String("id", id), slog.String("name", role.Name))
			return nil
		})
	})
}

// UpdateRolePermissions replaces the role's permission map. Categories missing
// from perms are revoked.
func (s *Service) UpdateRolePermissions(ctx context.Context, id string, perms rbac.Permissions) (Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpUpdatePermissions, func(ctx context.Context) (Role, error) {
		normalized, err := rbac.Normalize(perms)
		if err != nil {
			return Role{}, err
		}
		role, err := s.repo.UpdateRole(ctx, id, UpdateInput{Permissions: normalized})
		if err != nil {
			return Role{}, err
		}
		s.logger.DebugContext(ctx, "role permissions replaced", slog.String("id", role.ID), slog.Int("granted", role.Permissions.Granted()))
		return role, nil
	})
}

// SetPermission grants or revokes a single action and stores the resulting map.
func (s *Service) SetPermission(ctx context.Context, id string, category rbac.Category, action rbac.Action, granted bool) (Role, error) {
	return simulate.Call(ctx, s.sim, simulate.OpUpdatePermissions, func(ctx context.Context) (Role, error) {
		var updated Role
		err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
			role, err := tx.GetRole(ctx, id)
			if err != nil {
				return err
			}
			perms, err := role.Permissions.With(category, action, granted)
			if err != nil {
				return err
			}
			updated, err = tx.UpdateRole(ctx, id, UpdateInput{Permissions: perms})
			return err
		})
		if err != nil {
			return Role{}, err
		}
		s.logger.DebugContext(ctx, "role permission toggled",
			slog.String("id", id),
			slog.String("category", string(category)),
			slog.String("action", string(action)),
			slog.Bool("granted", granted),
		)
		return updated, nil
	})
}

// CheckPermission reports whether the role grants action within category.
// An absent category or action yields false.
func (s *Service) CheckPermission(ctx context.Context, id string, category rbac.Category, action rbac.Action) (bool, error) {
	return simulate.Call(ctx, s.sim, simulate.OpCheckPermission, func(ctx context.Context) (bool, error) {
		role, err := s.repo.GetRole(ctx, id)
		if err != nil {
			return false, err
		}
		return role.Permissions.Has(category, action), nil
	})
}

// PermissionMatrix lists every role with its full category x action grid.
func (s *Service) PermissionMatrix(ctx context.Context) ([]MatrixRow, error) {
	return simulate.Call(ctx, s.sim, simulate.OpList, func(ctx context.Context) ([]MatrixRow, error) {
		list, err := s.repo.ListRoles(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]MatrixRow, 0, len(list))
		for _, role := range list {
			rows = append(rows, MatrixRow{
				RoleID:   role.ID,
				RoleName: role.Name,
				Sections: rbac.Matrix(role.Permissions),
			})
		}
		return rows, nil
	})
}
