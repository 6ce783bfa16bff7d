package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fleet-scheduler/internal/http/handlers"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 5 * time.Second

// Deps groups what the router mounts.
type Deps struct {
	Base     *handlers.Handlers
	Fleet    *handlers.FleetHandler
	Schedule *handlers.ScheduleHandler
	Metrics  http.Handler

	// Middlewares run after the built-in chain, before routing.
	Middlewares []func(http.Handler) http.Handler
	// Limited wraps the API routes only; probes and /metrics stay open.
	Limited func(http.Handler) http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(DefaultTimeout))
	for _, mw := range d.Middlewares {
		r.Use(mw)
	}

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	r.NotFound(d.Base.NotFound)

	r.Group(func(r chi.Router) {
		if d.Limited != nil {
			r.Use(d.Limited)
		}

		r.Get("/vehicles", d.Fleet.ListVehicles)
		r.Put("/vehicles/{id}", d.Fleet.UpsertVehicle)
		r.Get("/trailers", d.Fleet.ListTrailers)
		r.Put("/trailers/{id}", d.Fleet.UpsertTrailer)

		r.Get("/shipments", d.Schedule.ListShipments)
		r.Delete("/shipments/{id}", d.Schedule.Remove)
		r.Post("/shipments/{id}/assign", d.Schedule.Assign)
		r.Post("/shipments/{id}/move", d.Schedule.Move)
		r.Post("/shipments/{id}/resize", d.Schedule.Resize)
		r.Post("/shipments/{id}/auto-allocate", d.Schedule.AutoAllocate)

		r.Get("/orders/unassigned", d.Schedule.ListUnassigned)
		r.Post("/orders/unassigned", d.Schedule.AddOrder)
		r.Post("/orders/unassigned/{id}/schedule", d.Schedule.Schedule)

		r.Get("/schedule/stats", d.Schedule.Stats)
	})

	return r
}
