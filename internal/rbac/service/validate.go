package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/rbac/internal/rbac/apperror"
	"github.com/aussiebroadwan/rbac/internal/rbac/domain"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// fieldErrors collects per-field reasons.
type fieldErrors map[string]string

func (f fieldErrors) maxLen(field string, v *string, limit int) {
	if v != nil && utf8.RuneCountInString(*v) > limit {
		f[field] = fmt.Sprintf("must be at most %d characters", limit)
	}
}

// noNUL rejects NUL characters, which neither database stores intact.
func (f fieldErrors) noNUL(field string, v *string) {
	if v != nil && strings.ContainsRune(*v, 0) {
		f[field] = "must not contain NUL characters"
	}
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apperror.Validation(message, f)
}

// validateRoleFields checks a new or changed role. The name, when present,
// is trimmed in place.
func validateRoleFields(name **string, description, typ, scope *string, nameRequired bool) error {
	fe := fieldErrors{}

	switch {
	case *name == nil && nameRequired:
		fe["name"] = "is required"
	case *name != nil:
		trimmed := strings.TrimSpace(**name)
		*name = &trimmed
		if trimmed == "" {
			fe["name"] = "must not be blank"
		}
		fe.maxLen("name", &trimmed, domain.MaxRoleNameLen)
		fe.noNUL("name", &trimmed)
	}
	fe.maxLen("description", description, domain.MaxRoleDescriptionLen)
	fe.maxLen("type", typ, domain.MaxRoleTypeLen)
	fe.maxLen("scope", scope, domain.MaxRoleScopeLen)
	fe.noNUL("description", description)
	fe.noNUL("type", typ)
	fe.noNUL("scope", scope)

	return fe.err("invalid role")
}

func validateCredentials(username, password string) error {
	fe := fieldErrors{}

	n := utf8.RuneCountInString(username)
	switch {
	case n < domain.MinUsernameLen || n > domain.MaxUsernameLen:
		fe["username"] = fmt.Sprintf("must be between %d and %d characters", domain.MinUsernameLen, domain.MaxUsernameLen)
	case !usernamePattern.MatchString(username):
		fe["username"] = "may only contain letters, digits, '_', '.' and '-'"
	}
	if utf8.RuneCountInString(password) < domain.MinPasswordLen {
		fe["password"] = fmt.Sprintf("must be at least %d characters", domain.MinPasswordLen)
	}
	fe.noNUL("password", &password)

	return fe.err("invalid user")
}

func validateIDs(ids map[string]int64) error {
	fe := fieldErrors{}
	for field, id := range ids {
		if id <= 0 {
			fe[field] = "must be a positive integer"
		}
	}
	return fe.err("invalid identifiers")
}
