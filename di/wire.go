//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"quiethours/config"
	"quiethours/infras/jwt"
	"quiethours/infras/kafka"
	"quiethours/infras/otel"
	"quiethours/infras/photon"
	"quiethours/infras/postgres"
	"quiethours/infras/redis"
	"quiethours/infras/s3"
	"quiethours/internal/events"
	"quiethours/internal/jobs/completion"
	"quiethours/permissions"
	"quiethours/shared/cache"
	"quiethours/transport/http"
	"quiethours/transport/http/middleware"
	"quiethours/transport/http/router"

	authService "quiethours/internal/domains/auth/service"
	bookingRepository "quiethours/internal/domains/booking/repository"
	bookingService "quiethours/internal/domains/booking/service"
	favoriteRepository "quiethours/internal/domains/favorite/repository"
	favoriteService "quiethours/internal/domains/favorite/service"
	placeRepository "quiethours/internal/domains/place/repository"
	placeService "quiethours/internal/domains/place/service"
	reviewRepository "quiethours/internal/domains/review/repository"
	reviewService "quiethours/internal/domains/review/service"
	userRepository "quiethours/internal/domains/user/repository"

	authHandler "quiethours/internal/handlers/auth"
	bookingHandler "quiethours/internal/handlers/booking"
	favoriteHandler "quiethours/internal/handlers/favorite"
	healthHandler "quiethours/internal/handlers/health"
	placeHandler "quiethours/internal/handlers/place"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	photon.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var placeDomain = wire.NewSet(
	placeRepository.New,
	placeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var favoriteDomain = wire.NewSet(
	favoriteRepository.New,
	favoriteService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var domains = wire.NewSet(
	authDomain,
	placeDomain,
	bookingDomain,
	favoriteDomain,
	reviewDomain,
	events.New,
)

var jobs = wire.NewSet(
	completion.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	placeHandler.New,
	bookingHandler.New,
	favoriteHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		jobs,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
