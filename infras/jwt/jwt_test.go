package jwt_test

import (
	"testing"
	"time"

	"spacebook/config"
	"spacebook/infras/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "spacebook"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"

	return cfg
}

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com", "admin")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(7*24*60*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "spacebook", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestService_ValidateToken(t *testing.T) {
	cfg := newConfig()
	svc := jwt.New(cfg)

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com", "user")
	require.NoError(t, err)

	forge := func(secret string, claims jwt.Claims) string {
		signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		return signed
	}

	past := time.Now().Add(-2 * time.Hour)
	expired := forge(cfg.JWT.AccessSecret, jwt.Claims{
		UserID: "user-1",
		Type:   jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "spacebook",
			IssuedAt:  gojwt.NewNumericDate(past),
			ExpiresAt: gojwt.NewNumericDate(past.Add(time.Hour)),
		},
	})
	foreignIssuer := forge(cfg.JWT.AccessSecret, jwt.Claims{
		UserID: "user-1",
		Type:   jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noExpiry := forge(cfg.JWT.AccessSecret, jwt.Claims{
		UserID:           "user-1",
		Type:             jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{Issuer: "spacebook"},
	})

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{name: "refresh token used as access", token: pair.RefreshToken, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "access token used as refresh", token: pair.AccessToken, tokenType: jwt.RefreshToken, wantErr: jwt.ErrInvalidToken},
		{name: "expired", token: expired, tokenType: jwt.AccessToken, wantErr: jwt.ErrExpiredToken},
		{name: "wrong issuer", token: foreignIssuer, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "missing expiry", token: noExpiry, tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", tokenType: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token, tt.tokenType)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestService_ValidateToken_WrongType(t *testing.T) {
	cfg := newConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret

	svc := jwt.New(cfg)

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com", "user")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestService_RefreshTokens(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("user-1", "user@example.com", "user")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer abc.def", want: "abc.def"},
		{header: "Bearer ", wantErr: true},
		{header: "Token abc", wantErr: true},
		{header: "abc.def", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.FromHeader(tt.header)

			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMalformedHeader)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
