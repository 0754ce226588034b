package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/email-otp-api/internal/application/otp"
	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/transport/http/handler"
	appmiddleware "github.com/email-otp-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-KEY"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpSvc := otp.NewService(otp.ServiceDeps{
		IdentityRepo: deps.IdentityRepo,
		OTPRepo:      deps.OTPRepo,
		Deliverer:    deps.Deliverer,
		CodeLength:   cfg.OTPLength,
		TTL:          cfg.OTPTTL,
	})

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc, cfg.OTPLength)
	statusH := handler.NewStatusHandler(otpSvc)

	// ── Public routes (no API key) ───────────────────────────────────────────
	r.Get("/", healthH.Root)
	r.Get("/health", healthH.Check)

	// ── Key-gated routes ─────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.APIKey(cfg.APIKey))

		r.Post("/send-otp", otpH.Send)
		r.Post("/verify-otp", otpH.Verify)
		r.Get("/verification-status/{email}", statusH.Get)
	})

	return r
}
