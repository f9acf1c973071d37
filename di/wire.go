//go:build wireinject
// +build wireinject

package di

import (
	"github.com/phuhk2908/rms-backend/config"
	"github.com/phuhk2908/rms-backend/infras/jwt"
	"github.com/phuhk2908/rms-backend/infras/kafka"
	"github.com/phuhk2908/rms-backend/infras/otel"
	"github.com/phuhk2908/rms-backend/infras/postgres"
	"github.com/phuhk2908/rms-backend/infras/redis"
	"github.com/phuhk2908/rms-backend/infras/s3"
	"github.com/phuhk2908/rms-backend/internal/domains/engine"
	"github.com/phuhk2908/rms-backend/internal/events"
	"github.com/phuhk2908/rms-backend/permissions"
	"github.com/phuhk2908/rms-backend/shared/cache"
	"github.com/phuhk2908/rms-backend/transport/http"
	"github.com/phuhk2908/rms-backend/transport/http/middleware"
	"github.com/phuhk2908/rms-backend/transport/http/router"

	kitchenService "github.com/phuhk2908/rms-backend/internal/domains/kitchen/service"
	menuRepository "github.com/phuhk2908/rms-backend/internal/domains/menu/repository"
	menuService "github.com/phuhk2908/rms-backend/internal/domains/menu/service"
	orderRepository "github.com/phuhk2908/rms-backend/internal/domains/order/repository"
	orderService "github.com/phuhk2908/rms-backend/internal/domains/order/service"
	paymentRepository "github.com/phuhk2908/rms-backend/internal/domains/payment/repository"
	paymentService "github.com/phuhk2908/rms-backend/internal/domains/payment/service"
	reservationRepository "github.com/phuhk2908/rms-backend/internal/domains/reservation/repository"
	reservationService "github.com/phuhk2908/rms-backend/internal/domains/reservation/service"
	staffRepository "github.com/phuhk2908/rms-backend/internal/domains/staff/repository"
	staffService "github.com/phuhk2908/rms-backend/internal/domains/staff/service"
	tableRepository "github.com/phuhk2908/rms-backend/internal/domains/table/repository"
	tableService "github.com/phuhk2908/rms-backend/internal/domains/table/service"

	kitchenHandler "github.com/phuhk2908/rms-backend/internal/handlers/kitchen"
	menuHandler "github.com/phuhk2908/rms-backend/internal/handlers/menu"
	orderHandler "github.com/phuhk2908/rms-backend/internal/handlers/order"
	paymentHandler "github.com/phuhk2908/rms-backend/internal/handlers/payment"
	reservationHandler "github.com/phuhk2908/rms-backend/internal/handlers/reservation"
	staffHandler "github.com/phuhk2908/rms-backend/internal/handlers/staff"
	tableHandler "github.com/phuhk2908/rms-backend/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.TxManager), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderRepository.NewItem,
	orderService.New,
)

var kitchenDomain = wire.NewSet(
	kitchenService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	engine.New,
	tableDomain,
	reservationDomain,
	orderDomain,
	kitchenDomain,
	menuDomain,
	staffDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tableHandler.New,
	reservationHandler.New,
	orderHandler.New,
	kitchenHandler.New,
	menuHandler.New,
	staffHandler.New,
	paymentHandler.New,
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
