package identity

import (
	"context"

	"spacebook/shared/constant"
)

// Identity is the caller resolved from the session credential of a request.
type Identity struct {
	UserID  string
	Email   string
	Role    string
	TokenID string
}

// System is used for requests authenticated with the internal API key.
var System = Identity{UserID: "system", Role: constant.RoleSuperAdmin}

func (i Identity) IsAdmin() bool {
	return i.Role == constant.RoleAdmin || i.Role == constant.RoleSuperAdmin
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, constant.ContextKeyIdentity, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(constant.ContextKeyIdentity).(Identity)

	return id, ok && id.UserID != constant.Empty
}

// Actor returns the user id recorded in audit columns, or guest.
func Actor(ctx context.Context) string {
	if id, ok := FromContext(ctx); ok {
		return id.UserID
	}

	return constant.ContextGuest
}
