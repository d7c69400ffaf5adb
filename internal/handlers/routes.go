package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the HTTP router. Session-bound endpoints sit behind
// SessionMiddleware; everything else is open.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/federated", h.Federated)

		r.Get("/leaderboard/daily", h.DailyScores)
		r.Get("/leaderboard/weekly", h.WeeklyScores)
		r.Get("/leaderboard/monthly", h.MonthlyScores)
		r.Get("/leaderboard/rank", h.RankLookup)

		r.Get("/users/overview", h.Overview)

		r.Get("/achievements/{userId}", h.ListAchievements)
		r.Post("/achievements", h.CreateAchievement)

		r.Get("/testimonials", h.ListTestimonials)
		r.Post("/testimonials", h.CreateTestimonial)

		r.Post("/stats", h.CreateStat)
		r.Get("/stats/user/{userId}", h.UserHistory)

		r.Post("/events", h.IngestEvent)
		r.Get("/activity", h.RecentActivity)

		r.Group(func(r chi.Router) {
			r.Use(h.SessionMiddleware)
			r.Get("/auth/me", h.Me)
			r.Post("/auth/refresh", h.Refresh)
			r.Post("/game/submit", h.SubmitResult)
		})
	})

	return r
}
