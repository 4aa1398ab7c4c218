package rbacsdk

import (
	"context"
	"fmt"
	"net/http"
)

func (s *Session) CreateRole(ctx context.Context, req CreateRoleRequest) (*CreateRoleResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/roles", req)
	if err != nil {
		return nil, err
	}

	var out CreateRoleResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateRole(ctx context.Context, id int64, req UpdateRoleRequest) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, fmt.Sprintf("/roles/%d", id), req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (s *Session) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/roles", nil)
	if err != nil {
		return nil, err
	}

	var roles []Role
	if err := decodeJSON(resp, &roles, http.StatusOK); err != nil {
		return nil, err
	}
	return roles, nil
}

// AssignRole sends the ids both in the path and the body.
func (s *Session) AssignRole(ctx context.Context, userID, roleID int64) error {
	path := fmt.Sprintf("/user_roles/%d/%d", userID, roleID)
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, AssignRoleRequest{
		UserID: ID(userID),
		RoleID: ID(roleID),
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusCreated)
}
