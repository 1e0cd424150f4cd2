package common

import "context"

type contextKey string

const (
	CognitoIDKey contextKey = "cognito_id"
	RoleKey      contextKey = "role"
)

// User roles carried in the identity token's custom:role claim.
const (
	RoleManager = "manager"
	RoleTenant  = "tenant"
)

// GetCognitoIDFromContext extracts the authenticated user's Cognito id.
func GetCognitoIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CognitoIDKey).(string)
	return id, ok
}

// GetRoleFromContext extracts the authenticated user's role.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
