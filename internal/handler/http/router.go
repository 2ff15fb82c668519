package http

import (
	"log/slog"
	"os"

	"github.com/fintradify/hr-portal-go/internal/handler/http/middleware"
	"github.com/fintradify/hr-portal-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	env string,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	geocodeHandler GeocodeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)

				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployeeOnly)
					r.Post("/punch-in", attendanceHandler.PunchIn)
					r.Post("/punch-out", attendanceHandler.PunchOut)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)

				r.With(middleware.EmployeeOnly).Post("/", leaveHandler.CreateRequest)
				r.With(middleware.AdminOnly).Patch("/{id}/status", leaveHandler.UpdateStatus)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/salary-slip", payrollHandler.SalarySlip)
			})

			r.Post("/geocode/reverse", geocodeHandler.Reverse)
		})
	})

	return r
}
