package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"npm-audit/config"
	"npm-audit/data"
	"npm-audit/handlers"
	"npm-audit/registry"
	"npm-audit/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		ForceColors:     true,
		DisableQuote:    true,
		PadLevelText:    true,
	})

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "./data/app.db"
	}

	db, err := sql.Open("sqlite3", sqlitePath)
	if err != nil {
		logger.Fatalf("failed to open DB: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	store := &storage.Storage{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.InitSchema(ctx); err != nil {
		logger.Fatalf("failed to initialize schema: %v", err)
	}

	registryURL := os.Getenv("REGISTRY_URL")
	if registryURL == "" {
		registryURL = config.BaseURL
	}

	client := &registry.AuditClient{
		BaseURL:    registryURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}

	auditor := &data.Auditor{
		Store:    store,
		Registry: client,
		Log:      logger,
	}

	handler := &handlers.Handler{
		Store:   store,
		Auditor: auditor,
		Log:     logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Logger)

	r.Post("/audits", handler.RunAudit)
	r.Get("/audits", handler.ListAudits)
	r.Get("/audits/{id}", handler.GetAudit)
	r.Delete("/audits/{id}", handler.DeleteAudit)

	projectPath := os.Getenv("PROJECT_PATH")

	if os.Getenv("WITH_INITIAL_AUDIT") == "true" && projectPath != "" {
		if _, err := auditor.RunAudit(ctx, projectPath, config.ReportDetailed); err != nil {
			logger.Fatalf("failed to run initial audit: %v", err)
		}
	}

	if os.Getenv("WITH_DAILY_AUDIT") == "true" && projectPath != "" {
		c := cron.New()
		_, err := c.AddFunc("0 0 * * *", func() {
			logger.Info("Scheduled audit triggered")
			ctx := context.Background()
			if _, err := auditor.RunAudit(ctx, projectPath, config.ReportDetailed); err != nil {
				logger.Errorf("scheduled audit failed: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("failed to schedule cron: %v", err)
		}
		c.Start()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("starting on port %s...", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal(err)
	}
}
