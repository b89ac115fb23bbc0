package main

import (
	"context"
	"errors"
	"log"
	"morningful_landing_go/config"
	"morningful_landing_go/db"
	"morningful_landing_go/handlers"
	"morningful_landing_go/middleware"
	"morningful_landing_go/models"
	"morningful_landing_go/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.SubmissionLog{}, &models.AnalyticsEvent{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	analytics := services.NewAnalytics(analyticsSinks(cfg)...)
	diagnostics := services.NewDiagnostics(db.DB)
	flows := services.NewFlows(cfg, services.NewLeadClient(cfg.LeadAPIURL, cfg.SubmitTimeout), analytics, diagnostics)

	script := services.DefaultChatbotScript()
	if cfg.ChatbotScriptPath != "" {
		loaded, err := services.LoadChatbotScript(cfg.ChatbotScriptPath)
		if err != nil {
			log.Fatalf("Failed to load chatbot script: %v", err)
		}
		script = loaded
	}

	store := services.NewSessionStore(flows, script, cfg.SessionTTL)
	store.StartCleanup(time.Minute)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = handlers.SonicSerializer{}

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.CSRF(cfg))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.Visitor(cfg))
	e.Use(handlers.Inject(handlers.Dependencies{
		Config:      cfg,
		Sessions:    store,
		Analytics:   analytics,
		Diagnostics: diagnostics,
	}))

	// Static files
	middleware.InitAssetVersions("")
	e.Static("/static", "static")

	// Public pages
	e.GET("/", handlers.LandingHandler)
	e.GET("/privacy", handlers.PrivacyHandler)
	e.GET("/terms", handlers.TermsHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.GetRobotsHandler)
	e.GET("/healthz", handlers.HealthHandler)

	// Lead forms
	forms := e.Group("/forms/:flow")
	forms.Use(middleware.FormEditRateLimiter.Middleware())
	{
		forms.GET("", handlers.OpenFormHandler)
		forms.POST("/field", handlers.EditFieldHandler)
		forms.PATCH("/fields", handlers.PatchFieldsHandler)
		forms.POST("/submit", handlers.SubmitFormHandler, middleware.PublicFormRateLimiter.Middleware())
		forms.GET("/status", handlers.FormStatusHandler)
		forms.POST("/close", handlers.CloseFormHandler)
	}

	// Chatbot widget
	chat := e.Group("/chat")
	chat.Use(middleware.ChatbotRateLimiter.Middleware())
	{
		chat.GET("", handlers.GetChatHandler)
		chat.POST("/open", handlers.OpenChatHandler)
		chat.POST("/close", handlers.CloseChatHandler)
		chat.POST("/topic", handlers.SelectTopicHandler)
		chat.POST("/message", handlers.ChatMessageHandler)
	}

	e.POST("/api/events", handlers.TrackEventHandler, middleware.EventsRateLimiter.Middleware())

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}
	store.Stop()
	analytics.Wait()
	diagnostics.Wait()
}

// analyticsSinks selects the event destinations for the configured keys
func analyticsSinks(cfg *config.Config) []services.AnalyticsSink {
	sinks := []services.AnalyticsSink{&services.DatabaseSink{DB: db.DB}}
	if cfg.GAAPISecret != "" && cfg.GAMeasurementID != "" {
		sinks = append(sinks, &services.GoogleAnalyticsSink{
			MeasurementID: cfg.GAMeasurementID,
			APISecret:     cfg.GAAPISecret,
		})
	}
	if cfg.MixpanelToken != "" {
		sinks = append(sinks, &services.MixpanelSink{
			Token:            cfg.MixpanelToken,
			BlockedCountries: cfg.MixpanelBlockedCountries,
		})
	}
	if cfg.Environment == "development" {
		sinks = append(sinks, services.LogSink{})
	}
	return sinks
}
