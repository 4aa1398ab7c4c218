package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/internal/rbac/service"
	"github.com/stretchr/testify/require"
)

func TestAssign(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing role, then success, then conflict", func(t *testing.T) {
		s := newStore(t)
		roles := &service.RolesService{Store: s}
		svc := &service.AssignmentsService{Store: s}
		userID := createUser(t, s, "alice")

		_, err := svc.Assign(ctx, userID, 99)
		require.ErrorIs(t, err, service.ErrUserOrRoleNotFound)
		require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		role, err := roles.Create(ctx, service.CreateRoleInput{Name: ptr("Viewer")})
		require.NoError(t, err)

		ur, err := svc.Assign(ctx, userID, role.ID)
		require.NoError(t, err)
		require.Positive(t, ur.ID)
		require.Equal(t, userID, ur.UserID)
		require.Equal(t, role.ID, ur.RoleID)

		_, err = svc.Assign(ctx, userID, role.ID)
		require.ErrorIs(t, err, service.ErrRoleAlreadyAssigned)
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("missing user", func(t *testing.T) {
		s := newStore(t)
		role, err := (&service.RolesService{Store: s}).Create(ctx, service.CreateRoleInput{Name: ptr("Viewer")})
		require.NoError(t, err)

		_, err = (&service.AssignmentsService{Store: s}).Assign(ctx, 42, role.ID)
		require.ErrorIs(t, err, service.ErrUserOrRoleNotFound)
	})

	for _, tt := range []struct {
		name           string
		userID, roleID int64
		fields         []string
	}{
		{"zero user", 0, 1, []string{"user_id"}},
		{"negative role", 1, -3, []string{"role_id"}},
		{"both missing", 0, 0, []string{"user_id", "role_id"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&service.AssignmentsService{Store: newStore(t)}).Assign(ctx, tt.userID, tt.roleID)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			require.Equal(t, apperror.KindValidation, appErr.Kind)
			for _, f := range tt.fields {
				require.Contains(t, appErr.Details, f)
			}
		})
	}
}

func TestAssignConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newFileStore(t)
	userID := createUser(t, s, "alice")
	role, err := (&service.RolesService{Store: s}).Create(ctx, service.CreateRoleInput{Name: ptr("Viewer")})
	require.NoError(t, err)
	svc := &service.AssignmentsService{Store: s}

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Assign(ctx, userID, role.ID)
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	}
	require.Equal(t, 1, ok)
}

func TestListForUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := newStore(t)
	svc := &service.AssignmentsService{Store: s}
	roles := &service.RolesService{Store: s}
	userID := createUser(t, s, "alice")

	got, err := svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, got)

	viewer, err := roles.Create(ctx, service.CreateRoleInput{Name: ptr("Viewer")})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, userID, viewer.ID)
	require.NoError(t, err)

	got, err = svc.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Viewer", got[0].Name)

	_, err = svc.ListForUser(ctx, userID+10)
	require.ErrorIs(t, err, service.ErrUserNotFound)
}
