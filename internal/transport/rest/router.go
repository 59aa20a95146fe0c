package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/o1-spec/techservices-portal/internal"
	"github.com/o1-spec/techservices-portal/internal/announcement"
	"github.com/o1-spec/techservices-portal/internal/auth"
	"github.com/o1-spec/techservices-portal/internal/dashboard"
	"github.com/o1-spec/techservices-portal/internal/employee"
	"github.com/o1-spec/techservices-portal/internal/project"
	"github.com/o1-spec/techservices-portal/internal/task"
	"github.com/o1-spec/techservices-portal/internal/transport/middleware"
	"github.com/o1-spec/techservices-portal/internal/transport/swagger"
)

type Handlers struct {
	Auth         *auth.Handler
	Employee     *employee.Handler
	Project      *project.Handler
	Task         *task.Handler
	Announcement *announcement.Handler
	Dashboard    *dashboard.Handler
}

// RegisterAllRoutes wires the middleware chain and the API surface. The
// route gate runs globally; the per-request authenticator guards the
// protected group and is the actual security boundary. The returned func
// releases route-owned resources and belongs in the shutdown path.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, h Handlers, policy *auth.Policy, tokenGen auth.TokenGeneratorAPI, logger *slog.Logger) func() {
	healthHandler := NewHealthHandler(db)
	gate := middleware.NewRouteGate(tokenGen, cfg.Gate)
	loginLimiter := middleware.NewRateLimiter(cfg.Security.LoginRateBurst, float64(cfg.Security.LoginRatePerSecond))

	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.CORS(splitOrigins(cfg.Server.AllowedOrigins)))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.Metrics)
	}
	router.Use(middleware.Recovery(logger))
	router.Use(gate.Handler)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())
	if cfg.Observability.Metrics.Enabled {
		router.Handle(cfg.Observability.Metrics.Path, middleware.MetricsHandler())
	}

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(sr chi.Router) {
			// token-bucket limit on the credential endpoints only
			sr.With(loginLimiter.Middleware).Post("/login", h.Auth.Login)
			sr.With(loginLimiter.Middleware).Post("/register", h.Auth.Register)

			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
			sr.Post("/forgot-password", h.Auth.ForgotPassword)
			sr.Post("/reset-password", h.Auth.ResetPassword)
			sr.Post("/verify-email", h.Auth.VerifyEmail)
			sr.Post("/resend-verification", h.Auth.ResendVerification)

			sr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAuth)
				ar.Get("/me", h.Auth.Me)
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.RequireAuth)

			pr.Route("/employees", func(er chi.Router) {
				er.Use(auth.RequirePermission(h.Employee.BaseHandler, policy, auth.ResourceEmployees, auth.ActionRead))
				er.Get("/", h.Employee.List)
				er.Post("/", h.Employee.Create)
				er.Put("/{id}", h.Employee.Update)
				er.Delete("/{id}", h.Employee.Deactivate)
			})

			pr.With(auth.RequirePermission(h.Employee.BaseHandler, policy, auth.ResourceMyTeam, auth.ActionRead)).
				Get("/my-team", h.Employee.MyTeam)

			pr.Get("/profile", h.Employee.MyProfile)
			pr.Put("/profile", h.Employee.UpdateProfile)

			pr.With(auth.RequirePermission(h.Employee.BaseHandler, policy, auth.ResourceUsers, auth.ActionRead)).
				Get("/users", h.Employee.Users)

			pr.Route("/projects", func(jr chi.Router) {
				jr.Get("/", h.Project.List)
				jr.Post("/", h.Project.Create)
				jr.Get("/{id}", h.Project.Get)
				jr.Put("/{id}", h.Project.Update)
				jr.Delete("/{id}", h.Project.Delete)
				jr.Post("/{id}/team", h.Project.AddMember)
			})

			pr.Post("/tasks", h.Task.Create)
			pr.Patch("/tasks/{id}/status", h.Task.UpdateStatus)
			pr.Get("/my-task", h.Task.MyTasks)

			pr.Route("/announcements", func(ar chi.Router) {
				ar.Get("/", h.Announcement.List)
				ar.Group(func(wr chi.Router) {
					wr.Use(auth.RequireRole(h.Announcement.BaseHandler, auth.RoleAdmin, auth.RoleManager))
					wr.Post("/", h.Announcement.Create)
					wr.Put("/{id}", h.Announcement.Update)
					wr.Delete("/{id}", h.Announcement.Delete)
				})
			})

			pr.Get("/dashboard", h.Dashboard.Stats)
			pr.Get("/dashboard/export", h.Dashboard.Export)
		})
	})

	return loginLimiter.Stop
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
