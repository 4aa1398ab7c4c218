package domain

import "time"

// Role is a named permission bundle. Roles are never deleted.
type Role struct {
	ID          int64
	Name        string
	Description *string
	Type        *string
	Scope       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleChanges is a partial role update. Nil fields are left unchanged.
type RoleChanges struct {
	Name        *string
	Description *string
	Type        *string
	Scope       *string
}

func (c RoleChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.Type == nil && c.Scope == nil
}

// Column limits shared by validation and the schema.
const (
	MaxRoleNameLen        = 80
	MaxRoleDescriptionLen = 255
	MaxRoleTypeLen        = 50
	MaxRoleScopeLen       = 255
)
