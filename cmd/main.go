package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	slackclient "tokenbot/clients/slack"
	"tokenbot/config"
	"tokenbot/handlers"
	"tokenbot/middleware"
	"tokenbot/usecases/tokens"
)

const appName = "tokenbot"

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     appName,
		LogsURL:     cfg.ServerLogsURL,
	}, nil)

	slackClient := slackclient.NewSlackClient(cfg.Credentials(), cfg.CallbackURL(), cfg.SlackConfig.UserScope, nil)
	tokensUseCase := tokens.NewTokensUseCase(slackClient)

	authorizationHandler := handlers.NewAuthorizationHandler(tokensUseCase)
	webhookHandler := handlers.NewWebhookHandler(tokensUseCase)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogging)

	authorizationHandler.SetupEndpoints(router, config.OAuthCallbackPath)
	webhookHandler.SetupEndpoints(router, middleware.SlackSignatureMiddleware(cfg.SlackConfig.SigningSecret))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	log.Printf("🔐 OAuth callback URL: %s", cfg.CallbackURL())

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Slack-Signature", "X-Slack-Request-Timestamp"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Printf("❌ Server error: %v", err)
		return err
	case <-stop:
		log.Printf("🛑 Shutdown signal received, cleaning up...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
