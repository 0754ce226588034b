package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/email-otp-api/internal/config"
	"github.com/email-otp-api/internal/infrastructure/dynamo"
	"github.com/email-otp-api/internal/infrastructure/email"
	"github.com/email-otp-api/internal/infrastructure/mailgun"
	"github.com/email-otp-api/internal/infrastructure/ses"
	"github.com/email-otp-api/internal/infrastructure/smtp"
	transporthttp "github.com/email-otp-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if cfg.APIKey == "" {
		log.Println("WARN: API_KEY not set; protected endpoints are open. Set it for production.")
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	deliverer, err := newDeliverer(cfg)
	if err != nil {
		log.Fatalf("email transport %q: %v", cfg.EmailProvider, err)
	}

	deps := &transporthttp.Deps{
		IdentityRepo: dynamo.NewIdentityRepo(dynamoClient, cfg.DynamoTables.Identities),
		OTPRepo:      dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPCodes),
		Deliverer:    deliverer,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, transport=%s)", cfg.AppPort, cfg.AppEnv, cfg.EmailProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newDeliverer selects the configured delivery transport. There is exactly
// one call site for sending; transports swap here, never in handlers.
func newDeliverer(cfg *config.Config) (email.Deliverer, error) {
	switch cfg.EmailProvider {
	case "smtp":
		return smtp.NewSender(cfg), nil
	case "mailgun":
		return mailgun.NewSender(cfg)
	case "ses":
		return ses.NewSender(cfg)
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q (want smtp, mailgun, or ses)", cfg.EmailProvider)
	}
}
