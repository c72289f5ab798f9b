package dto_test

import (
	"encoding/json"
	"testing"

	"spacebook/infras/jwt"
	"spacebook/internal/domains/auth/model/dto"
	userDto "spacebook/internal/domains/user/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.TokenResponse
	res.FromTokenPair(&jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	})

	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, "refresh", res.RefreshToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)
}

func TestSessionResponse_JSON(t *testing.T) {
	res := dto.SessionResponse{
		TokenResponse: dto.TokenResponse{AccessToken: "access"},
		User:          userDto.UserResponse{ID: "u1", Email: "user@example.com", Role: "user"},
	}

	body, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "access", decoded["access_token"])

	user, ok := decoded["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", user["email"])
	assert.NotContains(t, user, "password")
}
