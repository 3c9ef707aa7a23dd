package rest

import (
	"database/sql"
	"net/http"

	"github.com/alphagrips/academy-backend/internal/academy"
	"github.com/alphagrips/academy-backend/internal/auth"
	"github.com/alphagrips/academy-backend/internal/category"
	"github.com/alphagrips/academy-backend/internal/finance"
	"github.com/alphagrips/academy-backend/internal/match"
	"github.com/alphagrips/academy-backend/internal/payment"
	"github.com/alphagrips/academy-backend/internal/player"
	"github.com/alphagrips/academy-backend/internal/transport/middleware"
	"github.com/alphagrips/academy-backend/internal/transport/swagger"
	"github.com/alphagrips/academy-backend/internal/user"
	"github.com/alphagrips/academy-backend/pkg/logger"
	"github.com/go-chi/chi"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	RBAC     *auth.RBACAuthorization
	Academy  *academy.Handler
	Category *category.Handler
	Player   *player.Handler
	User     *user.Handler
	Match    *match.Handler
	Finance  *finance.Handler
	Payment  *payment.Handler
	Webhook  *payment.WebhookHandler
}

// NewRouter wires the full API surface. Everything under /api/v1 except
// login, the gateway webhook, health, and the docs requires a bearer token.
func NewRouter(h *Handlers, db *sql.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(logger.L()))
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)

	health := NewHealthHandler(db)
	r.Get("/ping", health.pingHandler)
	r.Get("/health", health.healthCheckHandler)

	r.Mount("/swagger", swagger.Handler())
	r.Get("/openapi.yml", swagger.SpecFile)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh-token", h.Auth.RefreshToken)

		// server-to-server gateway callback; HMAC-verified, no bearer token
		r.Post("/payments/webhook", h.Webhook.HandleCallback)

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.AuthMiddleware)

			r.Post("/logout", h.Auth.Logout)

			r.Get("/academies", h.Academy.GetAcademies)
			r.With(h.RBAC.RequireSuperAdmin()).Post("/academies", h.Academy.CreateAcademy)

			r.Get("/categories", h.Category.GetCategories)
			r.With(h.RBAC.RequireCoachingStaff()).Post("/categories", h.Category.CreateCategory)
			r.With(h.RBAC.RequireCoachingStaff()).Put("/categories/{id}", h.Category.UpdateCategory)

			r.Get("/players", h.Player.GetPlayers)
			r.With(h.RBAC.RequireCoachingStaff()).Post("/players", h.Player.CreatePlayer)
			r.With(h.RBAC.RequireCoachingStaff()).Put("/players/{id}", h.Player.UpdatePlayer)

			r.Get("/matches-input", h.Match.GetMatches)
			r.With(h.RBAC.RequireCoachingStaff()).Post("/matches", h.Match.CreateMatch)
			r.With(h.RBAC.RequireCoachingStaff()).Delete("/matches/{id}", h.Match.DeleteMatch)

			r.Get("/rankings", h.Match.GetRankings)
			r.Get("/matrix-dates", h.Match.GetMatrixDates)
			r.Get("/matrix-categories", h.Match.GetMatrixCategories)
			r.Get("/matrix", h.Match.GetMatrix)

			r.Route("/users", func(r chi.Router) {
				r.Use(h.RBAC.RequireSuperAdmin())
				r.Get("/", h.User.GetUsers)
				r.Post("/", h.User.CreateUser)
				r.Put("/{id}", h.User.UpdateUser)
			})

			r.Get("/finance-dashboard", h.Finance.GetDashboard)
			r.Get("/finance-ledger", h.Finance.GetLedger)
			r.Get("/finance-collection-efficiency", h.Finance.GetCollectionEfficiency)
			r.Get("/finance-top-defaulters", h.Finance.GetTopDefaulters)
			r.Get("/finance-payments", h.Finance.GetPayments)
			r.Get("/finance-fees", h.Finance.GetFeeSchedules)
			r.Get("/finance-player-fees", h.Finance.GetPlayerOverrides)

			r.Group(func(r chi.Router) {
				r.Use(h.RBAC.RequireFinanceAdmin())
				r.Post("/finance-payment", h.Finance.RecordPayment)
				r.Delete("/finance-payment/{id}", h.Finance.DeletePayment)
				r.Post("/finance-fee", h.Finance.CreateFeeSchedule)
				r.Post("/finance-player-fee/{playerID}", h.Finance.SetPlayerOverride)
			})

			r.Post("/create-order", h.Payment.CreateOrder)
			r.Post("/verify-payment", h.Payment.VerifyPayment)
		})
	})

	return r
}
