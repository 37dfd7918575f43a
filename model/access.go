package model

import (
	"fmt"
	"strings"
)

// Role is the coarse permission level stored in an access record.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleVerifier Role = "Verifier"
	RoleUser     Role = "User"
)

// ParseRole maps a case-insensitive role name to its canonical Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "verifier":
		return RoleVerifier, nil
	case "user":
		return RoleUser, nil
	}
	return "", fmt.Errorf("invalid role '%s'. Valid roles: Admin, Verifier, User", s)
}

// AccessRecord stores the role assigned to one registry slot.
type AccessRecord struct {
	ObjectType string `json:"objectType"` // "AccessRecord"
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	CreatedBy  string `json:"createdBy"` // identity that paid for the slot
	Deposit    int64  `json:"deposit"`
}
