package rbacsdk

import "time"

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"900"`
}

// CreateRoleRequest is the body of POST /roles. Name is required.
type CreateRoleRequest struct {
	Name        OptionalString `json:"name,omitzero" swaggertype:"string" example:"Viewer"`
	Description OptionalString `json:"description,omitzero" swaggertype:"string" example:"read-only access"`
	Type        OptionalString `json:"type,omitzero" swaggertype:"string" example:"builtin"`
	Scope       OptionalString `json:"scope,omitzero" swaggertype:"string" example:"global"`
}

type CreateRoleResponse struct {
	Message string `json:"message" example:"role created"`
	RoleID  int64  `json:"role_id" example:"1"`
}

// UpdateRoleRequest is the body of PUT /roles/{id}. Only present fields
// change.
type UpdateRoleRequest struct {
	Name        OptionalString `json:"name,omitzero" swaggertype:"string"`
	Description OptionalString `json:"description,omitzero" swaggertype:"string"`
	Type        OptionalString `json:"type,omitzero" swaggertype:"string"`
	Scope       OptionalString `json:"scope,omitzero" swaggertype:"string"`
}

// Role is a role as returned by GET /roles.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Type        *string   `json:"type"`
	Scope       *string   `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignRoleRequest is the body of POST /user_roles/{user_id}/{role_id}.
// Ids present in the body take precedence over the path.
type AssignRoleRequest struct {
	UserID OptionalID `json:"user_id,omitzero" swaggertype:"integer" example:"1"`
	RoleID OptionalID `json:"role_id,omitzero" swaggertype:"integer" example:"2"`
}

type CreateUserRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct-horse-battery"`
}

type CreateUserResponse struct {
	Message string `json:"message" example:"user created"`
	UserID  int64  `json:"user_id" example:"2"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string            `json:"code" example:"validation_error"`
	Message string            `json:"message" example:"invalid request"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h2m3s"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
