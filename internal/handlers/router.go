package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"netmibd/internal/middleware"
)

type Router struct {
	Auth    *AuthHandler
	MIB     *MIBHandler
	Audit   *AuditHandler
	Metrics http.Handler
	Require *middleware.AuthMiddleware
	Log     *slog.Logger
}

func (rt Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(rt.Log))
	r.Use(chimiddleware.Recoverer)

	if rt.Metrics != nil {
		r.Handle("/metrics", rt.Metrics)
	}

	r.Post("/login", rt.Auth.Login)
	r.Post("/logout", rt.Auth.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/objects", rt.MIB.ListObjects)
		r.Get("/objects/{name}", rt.MIB.GetObject)
		r.Get("/objects/{name}/varbinds", rt.MIB.GetVarbinds)

		r.Group(func(r chi.Router) {
			r.Use(rt.Require.RequireAuth)
			r.Put("/objects/{name}", rt.MIB.SetObject)

			r.Group(func(r chi.Router) {
				r.Use(rt.Require.RequireAdmin)
				r.Get("/audit", rt.Audit.List)
			})
		})
	})

	return r
}
