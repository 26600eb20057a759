package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole is the application role carried in access tokens.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleStudent    UserRole = "STUDENT"
)

// CatalogAdminRoles may create, edit and delete colleges.
var CatalogAdminRoles = []UserRole{RoleAdmin, RoleSuperAdmin}

// JWTClaims is the access token payload issued by the hosted auth backend.
// The subject carries the user id.
type JWTClaims struct {
	Email    string   `json:"email,omitempty"`
	Role     UserRole `json:"role,omitempty"`
	AppRole  UserRole `json:"app_role,omitempty"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *JWTClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// EffectiveRole prefers the application role claim over the generic role claim,
// since hosted backends set "role" to values such as "authenticated".
func (c *JWTClaims) EffectiveRole() UserRole {
	if c == nil {
		return ""
	}
	if c.AppRole != "" {
		return UserRole(strings.ToUpper(string(c.AppRole)))
	}
	return UserRole(strings.ToUpper(string(c.Role)))
}
