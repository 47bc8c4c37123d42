package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/rota-backend-go/internal/config"
	"github.com/cmlabs-hris/rota-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/rota-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	batchHandler BatchHandler,
	assignmentHandler AssignmentHandler,
	coverageHandler CoverageHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rota-cmlabs"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
					r.Put("/default", shiftHandler.SetDefault)
				})
			})

			r.Route("/batches", func(r chi.Router) {
				r.Get("/", batchHandler.List)
				r.Post("/", batchHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", batchHandler.Get)
					r.Put("/", batchHandler.Update)
					r.Delete("/", batchHandler.Delete)
					r.Put("/shift", batchHandler.UpdateShift)
					r.Get("/current-shift", batchHandler.GetCurrentShift)
					r.Get("/schedule", batchHandler.GetSchedule)
					r.Get("/next-rotation", batchHandler.GetNextRotation)
					r.Get("/history", batchHandler.GetHistory)
				})
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Post("/auto-assign", assignmentHandler.AutoAssignDefault)
				r.Post("/rotation", assignmentHandler.ApplyRotation)
				r.Post("/preview", assignmentHandler.Preview)
			})

			r.Get("/coverage", coverageHandler.Report)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
