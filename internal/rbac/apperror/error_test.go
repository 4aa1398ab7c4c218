package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/stretchr/testify/require"
)

var errTaken = apperror.New(apperror.KindConflict, "role_name_taken", "role name already exists")

func TestIs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"same sentinel", errTaken, true},
		{"wrapped by fmt", fmt.Errorf("RolesService.Create: %w", errTaken), true},
		{"copy with details", errTaken.WithDetails(map[string]string{"name": "taken"}), true},
		{"wrapping a cause", apperror.Wrap(errors.New("unique"), apperror.KindConflict, "role_name_taken", "x"), true},
		{"same kind other code", apperror.New(apperror.KindConflict, "role_already_assigned", "x"), false},
		{"same code other kind", apperror.New(apperror.KindValidation, "role_name_taken", "x"), false},
		{"plain error", errors.New("role_name_taken"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, errors.Is(tt.err, errTaken))
		})
	}
}

func TestWithDetailsDoesNotMutate(t *testing.T) {
	t.Parallel()

	withDetails := errTaken.WithDetails(map[string]string{"name": "taken"})
	require.Nil(t, errTaken.Details)
	require.Equal(t, "taken", withDetails.Details["name"])
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, apperror.KindConflict, apperror.KindOf(fmt.Errorf("ctx: %w", errTaken)))
	require.Equal(t, apperror.KindValidation, apperror.KindOf(apperror.Validation("bad", nil)))
	require.Equal(t, apperror.KindInternal, apperror.KindOf(errors.New("boom")))
	require.Equal(t, apperror.KindInternal, apperror.KindOf(apperror.Internal(errors.New("boom"))))
}

func TestInternalHidesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	err := apperror.Internal(cause)

	require.Equal(t, "internal server error", err.Error())
	require.ErrorIs(t, err, cause)
	require.Contains(t, fmt.Sprintf("%+v", err), "database is locked")
	require.NotContains(t, fmt.Sprintf("%v", err), "database is locked")
}
