package rbacsdk

import (
	"context"
	"fmt"
	"net/http"
)

func (s *Session) CreateUser(ctx context.Context, username, password string) (*CreateUserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/users", CreateUserRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out CreateUserResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserRoles returns the roles assigned to a user.
func (s *Session) ListUserRoles(ctx context.Context, userID int64) ([]Role, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, fmt.Sprintf("/users/%d/roles", userID), nil)
	if err != nil {
		return nil, err
	}

	var roles []Role
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}
	return roles, nil
}
