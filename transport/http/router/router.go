package router

import (
	"net/http"

	"spacebook/config"
	"spacebook/internal/handlers/auth"
	"spacebook/internal/handlers/booking"
	"spacebook/internal/handlers/seed"
	"spacebook/internal/handlers/space"
	"spacebook/shared/constant"
	"spacebook/transport/http/middleware"

	// swagger docs
	_ "spacebook/docs"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const corsDefaultMaxAge = 300

type DomainHandlers struct {
	Auth    auth.Handler
	Space   space.Handler
	Booking booking.Handler
	Seed    seed.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	config         *config.Config
	app            middleware.AppMiddleware
	auth           middleware.AuthRole
}

func (r *Router) cors() func(http.Handler) http.Handler {
	corsCfg := r.config.App.CORS

	options := cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAgeSeconds,
	}

	if len(options.AllowedMethods) == 0 {
		options.AllowedMethods = []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}
	}

	if len(options.AllowedHeaders) == 0 {
		options.AllowedHeaders = []string{
			"Accept",
			constant.RequestHeaderAuthorization,
			constant.RequestHeaderContentType,
			constant.RequestHeaderAPIKey,
		}
	}

	if options.MaxAge == 0 {
		options.MaxAge = corsDefaultMaxAge
	}

	return cors.Handler(options)
}

// SetupRoutes installs the middleware chain and mounts every domain under /v1.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID, chiMiddleware.Recoverer)

	if r.config.App.CORS.Enable {
		router.Use(r.cors())
	}

	router.Use(
		r.app.Tracing,
		r.app.RateLimit(),
		r.auth.APIKey,
		r.auth.Identify,
	)

	if r.config.Server.Env != constant.ServerEnvProduction {
		router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup, r.auth)
		r.DomainHandlers.Space.Router(routerGroup, r.auth)
		r.DomainHandlers.Booking.Router(routerGroup, r.auth)
		r.DomainHandlers.Seed.Router(routerGroup, r.auth)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		config:         cfg,
		app:            app,
		auth:           auth,
	}
}
