// Package dashboard aggregates the user directory and the role catalogue into
// the summary shown on the admin landing page.
package dashboard

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

// UserLister is satisfied by *users.Service.
type UserLister interface {
	ListUsers(ctx context.Context) ([]users.User, error)
}

// RoleLister is satisfied by *roles.Service.
type RoleLister interface {
	ListRoles(ctx context.Context) ([]roles.Role, error)
}

// RoleUsage counts the users assigned to one role.
type RoleUsage struct {
	RoleID   string
	RoleName string
	Users    int
}

// DanglingReference is a user whose role name matches no existing role,
// typically left behind by a role rename.
type DanglingReference struct {
	UserID   string
	UserName string
	RoleName string
}

// Overview is the landing page summary.
type Overview struct {
	TotalUsers    int
	ActiveUsers   int
	InactiveUsers int
	TotalRoles    int
	RoleUsage     []RoleUsage
	Dangling      []DanglingReference
}

// Service builds overviews.
type Service struct {
	users UserLister
	roles RoleLister
}

// NewService builds Service instance.
func NewService(userLister UserLister, roleLister RoleLister) *Service {
	return &Service{users: userLister, roles: roleLister}
}

// Overview loads users and roles concurrently and summarises them. A failure
// of either load fails the overview.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		userList []users.User
		roleList []roles.Role
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userList, err = s.users.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roleList, err = s.roles.ListRoles(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return summarize(userList, roleList), nil
}

func summarize(userList []users.User, roleList []roles.Role) Overview {
	ov := Overview{TotalUsers: len(userList), TotalRoles: len(roleList)}

	assigned := make(map[string]int, len(roleList))
	known := make(map[string]struct{}, len(roleList))
	for _, r := range roleList {
		known[r.Name] = struct{}{}
	}
	for _, u := range userList {
		switch u.Status {
		case users.StatusActive:
			ov.ActiveUsers++
		case users.StatusInactive:
			ov.InactiveUsers++
		}
		if _, ok := known[u.Role]; !ok {
			ov.Dangling = append(ov.Dangling, DanglingReference{UserID: u.ID, UserName: u.Name, RoleName: u.Role})
			continue
		}
		assigned[u.Role]++
	}

	ov.RoleUsage = make([]RoleUsage, 0, len(roleList))
	for _, r := range roleList {
		ov.RoleUsage = append(ov.RoleUsage, RoleUsage{RoleID: r.ID, RoleName: r.Name, Users: assigned[r.Name]})
	}
	slices.SortStableFunc(ov.RoleUsage, func(a, b RoleUsage) int { return b.Users - a.Users })
	return ov
}
