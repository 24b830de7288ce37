package models

import "strings"

// Role tags the two kinds of principal the portal knows about.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known principals.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// ParseRole normalises free-form role strings coming from the backend.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	return role, role.Valid()
}

// Identity is the role-tagged user record persisted next to the session token.
type Identity struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Class     string `json:"class,omitempty"`
	Section   string `json:"section,omitempty"`
}

// DisplayName picks the most human-friendly name available.
func (i Identity) DisplayName() string {
	for _, candidate := range []string{i.FullName, i.Name, i.Username, i.Email} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
