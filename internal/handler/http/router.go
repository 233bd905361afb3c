package http

import (
	"log/slog"
	"os"

	"github.com/codemyown/leave-mangement-system/internal/config"
	"github.com/codemyown/leave-mangement-system/internal/handler/http/middleware"
	"github.com/codemyown/leave-mangement-system/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	holidayHandler HolidayHandler,
	delegationHandler DelegationHandler,
	reportHandler ReportHandler,
	notificationHandler NotificationHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-management"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
			r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
		})

		// EventSource cannot set headers, so the stream authenticates with a
		// short-lived token in the query string.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/dashboard", dashboardHandler.Summary)

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListLeaveTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", leaveHandler.CreateLeaveType)
					r.Put("/{id}", leaveHandler.UpdateLeaveType)
					r.Delete("/{id}", leaveHandler.DeleteLeaveType)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)
				r.Get("/upcoming", holidayHandler.Upcoming)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", holidayHandler.Create)
					r.Delete("/{id}", holidayHandler.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/{id}", leaveHandler.GetRequest)

				// Employee capability
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeRequired)
					r.Post("/", leaveHandler.SubmitRequest)
					r.Get("/my", leaveHandler.ListMyRequests)
					r.Get("/my/balances", leaveHandler.ListMyBalances)
					r.Post("/{id}/cancel", leaveHandler.CancelRequest)
				})

				// Manager capability
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagerRequired)
					r.Get("/", leaveHandler.ListAllRequests)
					r.Get("/pending", leaveHandler.ListPendingRequests)
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/delegations", func(r chi.Router) {
				r.Use(middleware.ManagerRequired)
				r.Post("/", delegationHandler.Create)
				r.Get("/", delegationHandler.ListMine)
				r.Delete("/{id}", delegationHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.ManagerRequired).Get("/departments", reportHandler.DepartmentReport)
				r.With(middleware.EmployeeRequired).Get("/my/export", reportHandler.ExportMyHistory)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkAsRead)
				r.Post("/read-all", notificationHandler.MarkAllAsRead)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})
	return r
}
