// Package storetest is a conformance suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
	"github.com/aussiebroadwan/rbac/internal/rbac/store"
	"github.com/stretchr/testify/require"
)

// Run exercises a driver. newStore must return a migrated, empty store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Roles", func(t *testing.T) { testRoles(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("UserRoles", func(t *testing.T) { testUserRoles(t, newStore(t)) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, newStore(t)) })
}

func ptr(s string) *string { return &s }

func testRoles(t *testing.T, s store.Store) {
	ctx := context.Background()

	adminID, err := s.Roles().CreateRole(ctx, domain.Role{
		Name:        "Admin",
		Description: ptr("d"),
		Type:        ptr("t"),
		Scope:       ptr("s"),
	})
	require.NoError(t, err)
	require.Positive(t, adminID)

	viewerID, err := s.Roles().CreateRole(ctx, domain.Role{Name: "Viewer"})
	require.NoError(t, err)
	require.Greater(t, viewerID, adminID)

	t.Run("get by id and name", func(t *testing.T) {
		byID, err := s.Roles().GetRoleByID(ctx, adminID)
		require.NoError(t, err)
		require.Equal(t, "Admin", byID.Name)
		require.Equal(t, "d", *byID.Description)
		require.Equal(t, "t", *byID.Type)
		require.Equal(t, "s", *byID.Scope)
		require.False(t, byID.CreatedAt.IsZero())

		byName, err := s.Roles().GetRoleByName(ctx, "Viewer")
		require.NoError(t, err)
		require.Equal(t, viewerID, byName.ID)
		require.Nil(t, byName.Description)
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := s.Roles().GetRoleByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Roles().GetRoleByName(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.Roles().CreateRole(ctx, domain.Role{Name: "Viewer"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("over-long column", func(t *testing.T) {
		_, err := s.Roles().CreateRole(ctx, domain.Role{
			Name:  "Long",
			Scope: ptr(strings.Repeat("x", domain.MaxRoleScopeLen+1)),
		})
		require.ErrorIs(t, err, store.ErrConstraint)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		roles, err := s.Roles().ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		require.Equal(t, adminID, roles[0].ID)
		require.Equal(t, viewerID, roles[1].ID)
	})

	t.Run("partial update", func(t *testing.T) {
		err := s.Roles().UpdateRole(ctx, viewerID, domain.RoleChanges{Description: ptr("read-only")})
		require.NoError(t, err)

		got, err := s.Roles().GetRoleByID(ctx, viewerID)
		require.NoError(t, err)
		require.Equal(t, "Viewer", got.Name)
		require.Equal(t, "read-only", *got.Description)
		require.Nil(t, got.Type)
	})

	t.Run("update missing role", func(t *testing.T) {
		err := s.Roles().UpdateRole(ctx, 9999, domain.RoleChanges{Name: ptr("Ghost")})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rename onto a taken name", func(t *testing.T) {
		err := s.Roles().UpdateRole(ctx, viewerID, domain.RoleChanges{Name: ptr("Admin")})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	id, err := s.Users().CreateUser(ctx, domain.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	require.Positive(t, id)

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.Equal(t, "hash", byName.PasswordHash)

	byID, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	_, err = s.Users().GetUserByID(ctx, id+100)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().CreateUser(ctx, domain.User{Username: "alice", PasswordHash: "other"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testUserRoles(t *testing.T, s store.Store) {
	ctx := context.Background()

	userID, err := s.Users().CreateUser(ctx, domain.User{Username: "bob", PasswordHash: "hash"})
	require.NoError(t, err)
	editorID, err := s.Roles().CreateRole(ctx, domain.Role{Name: "Editor"})
	require.NoError(t, err)
	viewerID, err := s.Roles().CreateRole(ctx, domain.Role{Name: "Viewer"})
	require.NoError(t, err)

	exists, err := s.UserRoles().Exists(ctx, userID, viewerID)
	require.NoError(t, err)
	require.False(t, exists)

	// Assigned out of id order to check the listing order.
	for _, roleID := range []int64{viewerID, editorID} {
		id, err := s.UserRoles().Assign(ctx, domain.UserRole{UserID: userID, RoleID: roleID})
		require.NoError(t, err)
		require.Positive(t, id)
	}

	exists, err = s.UserRoles().Exists(ctx, userID, viewerID)
	require.NoError(t, err)
	require.True(t, exists)

	_, err = s.UserRoles().Assign(ctx, domain.UserRole{UserID: userID, RoleID: viewerID})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.UserRoles().Assign(ctx, domain.UserRole{UserID: userID + 100, RoleID: viewerID})
	require.ErrorIs(t, err, store.ErrReferenceMissing)

	_, err = s.UserRoles().Assign(ctx, domain.UserRole{UserID: userID, RoleID: viewerID + 100})
	require.ErrorIs(t, err, store.ErrReferenceMissing)

	roles, err := s.UserRoles().ListRolesForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, "Editor", roles[0].Name)
	require.Equal(t, "Viewer", roles[1].Name)

	roles, err = s.UserRoles().ListRolesForUser(ctx, userID+100)
	require.NoError(t, err)
	require.Empty(t, roles)
}

func testTransactions(t *testing.T, s store.Store) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	t.Run("error rolls back", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if _, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "Doomed"}); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		_, err = s.Roles().GetRoleByName(ctx, "Doomed")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("nil commits", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "Kept"})
			return err
		})
		require.NoError(t, err)

		_, err = s.Roles().GetRoleByName(ctx, "Kept")
		require.NoError(t, err)
	})

	t.Run("reads inside the transaction see its writes", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			id, err := tx.Roles().CreateRole(ctx, domain.Role{Name: "Visible"})
			require.NoError(t, err)

			got, err := tx.Roles().GetRoleByID(ctx, id)
			require.NoError(t, err)
			require.Equal(t, "Visible", got.Name)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("nested transactions are refused", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
