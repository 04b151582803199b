package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/garage/internal/http/appointment"
	"github.com/MrJamesThe3rd/garage/internal/http/auth"
	"github.com/MrJamesThe3rd/garage/internal/http/billing"
	"github.com/MrJamesThe3rd/garage/internal/http/catalog"
	"github.com/MrJamesThe3rd/garage/internal/http/client"
	"github.com/MrJamesThe3rd/garage/internal/http/inventory"
	"github.com/MrJamesThe3rd/garage/internal/http/mechanic"
	"github.com/MrJamesThe3rd/garage/internal/http/report"
	"github.com/MrJamesThe3rd/garage/internal/http/workorder"
	"github.com/MrJamesThe3rd/garage/internal/metrics"
)

type Handlers struct {
	Clients      *client.Handler
	Mechanics    *mechanic.Handler
	Catalog      *catalog.Handler
	Inventory    *inventory.Handler
	WorkOrders   *workorder.Handler
	Invoices     *billing.Handler
	Appointments *appointment.Handler
	Reports      *report.Handler
}

type Options struct {
	AllowedOrigins []string
	// JWTSecret enables bearer token auth on /api/v1 when set.
	JWTSecret string
	Issuer    string
}

func New(h Handlers, m *metrics.Metrics, opts Options) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	router.Use(instrument(m))

	router.Handle("/metrics", m.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(auth.Middleware(opts.JWTSecret, opts.Issuer))
		}

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Clients.Routes(r)
		})
		r.Route("/vehicles", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Clients.VehicleRoutes(r)
		})
		r.Route("/mechanics", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Mechanics.Routes(r)
		})
		r.Route("/suppliers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))
			h.Catalog.SupplierRoutes(r)
		})
		r.Route("/parts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Catalog.PartRoutes(r)
		})
		r.Route("/inventory", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Inventory.Routes(r)
		})
		r.Route("/work-orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.WorkOrders.Routes(r)
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Appointments.Routes(r)
		})
		r.Route("/reports", h.Reports.Routes)
	})

	return router
}

// instrument records every request under its chi route pattern so that
// path ids do not blow up label cardinality.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.ObserveHTTP(route, r.Method, status, time.Since(start))
		})
	}
}
