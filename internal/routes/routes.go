// Package routes wires the HTTP handlers onto the router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swtmply/hati-tayo/internal/auth"
	"github.com/swtmply/hati-tayo/internal/handlers"
	appmw "github.com/swtmply/hati-tayo/internal/middleware"
)

// New builds the router: public auth and health routes, and the
// authenticated API.
func New(h *handlers.Handler, jwtManager *auth.JWTManager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(appmw.Metrics)
	r.Use(appmw.Logging)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(jwtManager))

		r.Get("/auth/me", h.Me)

		r.Post("/transactions", h.CreateTransaction)
		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/{id}", h.GetTransaction)

		r.Post("/shares/settle", h.SettleShares)
		r.Get("/balances", h.GetBalances)

		r.Post("/groups", h.CreateGroup)
		r.Get("/groups", h.ListGroups)
		r.Get("/groups/{id}", h.GetGroup)
		r.Get("/groups/{id}/summary", h.GetGroupSummary)
	})

	return r
}
