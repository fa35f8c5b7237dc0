package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-admin/internal/rbac"
	"github.com/odyssey-erp/odyssey-admin/internal/roles"
	"github.com/odyssey-erp/odyssey-admin/internal/shared"
	"github.com/odyssey-erp/odyssey-admin/internal/users"
)

func TestSequentialIDs(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "1"},
		{"contiguous", []string{"1", "2", "3"}, "4"},
		{"gap after delete", []string{"1", "3"}, "4"},
		{"ignores opaque ids", []string{"7", "b1e2"}, "8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SequentialIDs{}.Next(tc.existing))
		})
	}
}

func TestUUIDs(t *testing.T) {
	id := UUIDs{}.Next([]string{"1"})
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.IsType(t, UUIDs{}, PolicyByName("uuid"))
	assert.IsType(t, SequentialIDs{}, PolicyByName(""))
}

func TestSeedData(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	list, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Admin", list[0].Role)
	assert.Equal(t, users.StatusInactive, list[2].Status)

	roleList, err := s.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roleList, 3)
	assert.True(t, roleList[1].Permissions.Has(rbac.CategoryContent, rbac.ActionWrite))
	assert.False(t, roleList[2].Permissions.Has(rbac.CategoryContent, rbac.ActionWrite))
}

func TestCreatedIDsStayUniqueAfterDelete(t *testing.T) {
	s := New(SequentialIDs{})
	ctx := context.Background()

	require.NoError(t, s.DeleteUser(ctx, "2"))
	created, err := s.CreateUser(ctx, users.CreateInput{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "4", created.ID)
}

func TestReturnedRolesDoNotAliasStorage(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	role, err := s.GetRole(ctx, "3")
	require.NoError(t, err)
	role.Permissions[rbac.CategoryContent][0] = rbac.ActionDelete
	role.Permissions[rbac.CategoryUsers] = nil

	again, err := s.GetRole(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, []rbac.Action{rbac.ActionRead}, again.Permissions[rbac.CategoryContent])
	assert.Equal(t, []rbac.Action{rbac.ActionRead}, again.Permissions[rbac.CategoryUsers])
}

func TestCreateRoleRejectsDuplicateName(t *testing.T) {
	s := New(nil)
	_, err := s.CreateRole(context.Background(), roles.CreateInput{Name: "Editor"})
	require.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestRenameOntoExistingNameRejected(t *testing.T) {
	s := New(nil)
	name := "Admin"
	_, err := s.UpdateRole(context.Background(), "2", roles.UpdateInput{Name: &name})
	require.ErrorIs(t, err, shared.ErrAlreadyExists)

	same := "Editor"
	_, err = s.UpdateRole(context.Background(), "2", roles.UpdateInput{Name: &same})
	require.NoError(t, err)
}

func TestWithTxCountsAndDeletes(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	err := s.WithTx(ctx, func(ctx context.Context, tx roles.TxRepository) error {
		n, err := tx.CountUsersWithRole(ctx, "Viewer")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		return tx.DeleteRole(ctx, "3")
	})
	require.NoError(t, err)

	_, err = s.GetRole(ctx, "3")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWithTxPropagatesError(t *testing.T) {
	s := New(nil)
	boom := errors.New("boom")
	err := s.WithTx(context.Background(), func(context.Context, roles.TxRepository) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestReset(t *testing.T) {
	s := New(nil)
	ctx := context.Background()
	require.NoError(t, s.DeleteUser(ctx, "1"))

	s.Reset()

	u, err := s.GetUser(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", u.Name)
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	s := New(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := s.CreateUser(ctx, users.CreateInput{Name: "parallel"})
			if err == nil {
				ids <- u.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 20)
}
