//go:build wireinject
// +build wireinject

package di

import (
	"spacebook/config"
	"spacebook/infras/broker"
	"spacebook/infras/jwt"
	"spacebook/infras/otel"
	"spacebook/infras/postgres"
	"spacebook/infras/redis"
	"spacebook/infras/s3"
	"spacebook/permissions"
	"spacebook/shared/cache"
	"spacebook/shared/event"
	"spacebook/transport/http"
	"spacebook/transport/http/middleware"
	"spacebook/transport/http/router"
	"spacebook/transport/worker"

	authService "spacebook/internal/domains/auth/service"
	bookingRepository "spacebook/internal/domains/booking/repository"
	bookingService "spacebook/internal/domains/booking/service"
	notificationService "spacebook/internal/domains/notification/service"
	paymentService "spacebook/internal/domains/payment/service"
	seedService "spacebook/internal/domains/seed/service"
	spaceRepository "spacebook/internal/domains/space/repository"
	spaceService "spacebook/internal/domains/space/service"
	userRepository "spacebook/internal/domains/user/repository"

	authHandler "spacebook/internal/handlers/auth"
	bookingHandler "spacebook/internal/handlers/booking"
	seedHandler "spacebook/internal/handlers/seed"
	spaceHandler "spacebook/internal/handlers/space"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	broker.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var spaceDomain = wire.NewSet(
	spaceRepository.New,
	spaceService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	paymentService.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	spaceDomain,
	bookingDomain,
	seedService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	spaceHandler.New,
	bookingHandler.New,
	seedHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() (*worker.Worker, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		broker.New,
		wire.Bind(new(event.Consumer), new(broker.Client)),
		userRepository.New,
		notificationService.New,
		worker.New,
	)

	return &worker.Worker{}, nil
}
