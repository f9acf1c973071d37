package router

import (
	"github.com/phuhk2908/rms-backend/internal/handlers/kitchen"
	"github.com/phuhk2908/rms-backend/internal/handlers/menu"
	"github.com/phuhk2908/rms-backend/internal/handlers/order"
	"github.com/phuhk2908/rms-backend/internal/handlers/payment"
	"github.com/phuhk2908/rms-backend/internal/handlers/reservation"
	"github.com/phuhk2908/rms-backend/internal/handlers/staff"
	"github.com/phuhk2908/rms-backend/internal/handlers/table"
	"github.com/phuhk2908/rms-backend/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Table       table.Handler
	Reservation reservation.Handler
	Order       order.Handler
	Kitchen     kitchen.Handler
	Menu        menu.Handler
	Staff       staff.Handler
	Payment     payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Auth.Auth, r.Auth.RBAC)

		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Kitchen.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Auth:           auth,
	}
}
