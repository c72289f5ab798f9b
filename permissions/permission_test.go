package permissions_test

import (
	"testing"

	"spacebook/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	perm := data.FindPermissions("/v1/spaces/{id}", "DELETE")
	assert.ElementsMatch(t, []string{"admin", "superadmin"}, perm.Permissions)
}

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/spaces","method":"POST","permissions":["admin"]},
		{"path":"/v1/health","method":"GET","skip":true}
	]}`))
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		method string
		want   permissions.Permission
	}{
		{
			name:   "exact",
			path:   "/v1/spaces",
			method: "POST",
			want:   permissions.Permission{Path: "/v1/spaces", Method: "POST", Permissions: []string{"admin"}},
		},
		{
			name:   "trailing slash from chi sub-router",
			path:   "/v1/spaces/",
			method: "post",
			want:   permissions.Permission{Path: "/v1/spaces", Method: "POST", Permissions: []string{"admin"}},
		},
		{
			name:   "skip",
			path:   "/v1/health",
			method: "GET",
			want:   permissions.Permission{Path: "/v1/health", Method: "GET", Skip: true},
		},
		{
			name:   "unknown",
			path:   "/v1/spaces",
			method: "GET",
			want:   permissions.Permission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, data.FindPermissions(tt.path, tt.method))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestParse_Duplicate(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":[
		{"path":"/v1/seed","method":"POST","permissions":["admin"]},
		{"path":"/v1/seed/","method":"post","permissions":["user"]}
	]}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST /v1/seed")
}

func TestPermission_Allows(t *testing.T) {
	adminOnly := permissions.Permission{Permissions: []string{"admin", "superadmin"}}

	assert.True(t, adminOnly.Allows("admin"))
	assert.False(t, adminOnly.Allows("user"))
	assert.True(t, permissions.Permission{}.Allows("user"))
	assert.True(t, permissions.Permission{Skip: true, Permissions: []string{"admin"}}.Allows("user"))
}
