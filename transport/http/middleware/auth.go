package middleware

import (
	"context"
	"errors"
	"net/http"

	"spacebook/config"
	"spacebook/infras/jwt"
	"spacebook/infras/otel"
	"spacebook/permissions"
	"spacebook/shared/constant"
	"spacebook/shared/failure"
	"spacebook/shared/identity"
	"spacebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

type tokenErrorKey struct{}

// Auth resolves and enforces the caller identity.
type Auth interface {
	Identify(http.Handler) http.Handler
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipAuthKey("skip")).(bool)

	return skip
}

func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
		return pattern
	}

	return request.URL.Path
}

// CookieName is the session cookie carrying the access token.
func CookieName(cfg *config.Config) string {
	if cfg.App.Cookie.Name != constant.Empty {
		return cfg.App.Cookie.Name
	}

	return constant.DefaultCookieName
}

func (m *authRoleImpl) credential(request *http.Request) (string, error) {
	if cookie, err := request.Cookie(CookieName(m.cfg)); err == nil && cookie.Value != constant.Empty {
		return cookie.Value, nil
	}

	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == constant.Empty {
		return constant.Empty, nil
	}

	tokenString, err := jwt.FromHeader(authHeader)
	if err != nil {
		return constant.Empty, failure.Unauthorized("Invalid authorization header format")
	}

	return tokenString, nil
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized("Invalid token claims")
	default:
		return failure.Unauthorized("Invalid token")
	}
}

// Identify resolves the session credential (cookie first, then bearer header)
// once per request. Anonymous requests pass through without an identity.
func (m *authRoleImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "identify.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request.WithContext(identity.WithIdentity(ctx, identity.System)))

			return
		}

		tokenString, err := m.credential(request)
		if err != nil {
			scope.TraceError(err)
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, tokenErrorKey{}, err)))

			return
		}

		if tokenString == constant.Empty {
			next.ServeHTTP(writer, request)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err == nil && (claims.UserID == constant.Empty || claims.Email == constant.Empty) {
			log.Error().Str("user_id", claims.UserID).Msg("JWT claims missing user id or email")

			err = jwt.ErrInvalidClaim
		}

		if err != nil {
			scope.TraceError(err)
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, tokenErrorKey{}, tokenFailure(err))))

			return
		}

		scope.SetAttribute("user_id", claims.UserID)

		ctx = identity.WithIdentity(ctx, identity.Identity{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.ID,
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Auth rejects requests that Identify could not attach an identity to.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		path := routePattern(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if m.permission != nil && m.permission.FindPermissions(path, request.Method).Skip {
			next.ServeHTTP(writer, request)

			return
		}

		if _, ok := identity.FromContext(ctx); ok {
			next.ServeHTTP(writer, request)

			return
		}

		err, _ := ctx.Value(tokenErrorKey{}).(error)
		if err == nil {
			err = failure.ErrUnauthenticated
		}

		scope.TraceError(err)
		response.WithError(writer, err)
	})
}

// RBAC checks the caller role against permissions.json. Requires Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		permission := m.permission.FindPermissions(routePattern(request), request.Method)
		caller, _ := identity.FromContext(ctx)

		if !permission.Allows(caller.Role) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     caller.Role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, SkipAuthKey("skip"), true)))
	})
}
