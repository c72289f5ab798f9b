package identity_test

import (
	"context"
	"testing"

	"spacebook/shared/constant"
	"spacebook/shared/identity"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	ctx := identity.WithIdentity(context.Background(), identity.Identity{})
	_, ok = identity.FromContext(ctx)
	assert.False(t, ok, "empty identity must not count as authenticated")

	ctx = identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1", Role: constant.RoleUser})
	id, ok := identity.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
	assert.False(t, id.IsAdmin())
}

func TestActor(t *testing.T) {
	assert.Equal(t, constant.ContextGuest, identity.Actor(context.Background()))

	ctx := identity.WithIdentity(context.Background(), identity.Identity{UserID: "u1"})
	assert.Equal(t, "u1", identity.Actor(ctx))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, identity.Identity{Role: constant.RoleAdmin}.IsAdmin())
	assert.True(t, identity.System.IsAdmin())
	assert.False(t, identity.Identity{Role: constant.RoleUser}.IsAdmin())
}
