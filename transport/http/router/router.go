package router

import (
	"github.com/go-chi/chi/v5"

	"quiethours/internal/handlers/auth"
	"quiethours/internal/handlers/booking"
	"quiethours/internal/handlers/favorite"
	"quiethours/internal/handlers/health"
	"quiethours/internal/handlers/place"
	"quiethours/transport/http/middleware"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Place    place.Handler
	Booking  booking.Handler
	Favorite favorite.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.Auth)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Place.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Favorite.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
