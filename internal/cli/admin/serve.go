package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mesaviva/menurag/internal/api/handlers"
	"github.com/mesaviva/menurag/internal/config"
	"github.com/mesaviva/menurag/internal/database"
	"github.com/mesaviva/menurag/internal/jobs"
	"github.com/mesaviva/menurag/internal/ollama"
	"github.com/mesaviva/menurag/internal/repository"
	"github.com/mesaviva/menurag/internal/server"
	"github.com/mesaviva/menurag/internal/service"
	"github.com/mesaviva/menurag/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the menurag API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().Bool("no-worker", false, "Disable the background embedding index worker")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.HasSentry() {
		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	dishRepo := repository.NewDishRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)
	embeddingRepo := repository.NewEmbeddingRepository(pool)
	chatRepo := repository.NewChatRepository(pool)

	provider := ollama.NewClient(ollama.Config{
		BaseURL:         cfg.OllamaURL,
		EmbedModel:      cfg.EmbedModel,
		ChatModel:       cfg.ChatModel,
		EmbedTimeout:    cfg.EmbedTimeout,
		ChatTimeout:     cfg.ChatTimeout,
		HealthTimeout:   cfg.HealthTimeout,
		EmbedDimensions: cfg.EmbedDimensions,
	})

	textSvc := service.NewTextService(service.ChunkConfig{
		ChunkSize:    cfg.ChunkSize,
		Overlap:      cfg.ChunkOverlap,
		PreviewChars: cfg.PreviewChars,
	})
	promptSvc := service.NewPromptService()
	retrievalSvc := service.NewRetrievalServiceWithConfig(embeddingRepo, service.RetrievalConfig{
		AnswerThreshold: cfg.AnswerThreshold,
		SoftThreshold:   cfg.SoftThreshold,
	})
	chatSvc := service.NewChatService(provider, textSvc, promptSvc, retrievalSvc, chatRepo)
	seedSvc := service.NewSeedService(dishRepo, chunkRepo, textSvc)
	indexSvc := service.NewIndexService(chunkRepo, embeddingRepo, provider)

	var indexWorker *jobs.Worker
	noWorker, _ := cmd.Flags().GetBool("no-worker")
	if !noWorker {
		indexProcessor := jobs.NewIndexProcessor(indexSvc)
		indexWorker = jobs.NewWorker(indexProcessor, cfg.IndexPollInterval)
		go indexWorker.Start(ctx)
		log.Println("index worker started")
	}

	routerCfg := server.RouterConfig{
		ChatHandler:   handlers.NewChatHandler(chatSvc, cfg.TopKDefault, cfg.TopKMax),
		DishHandler:   handlers.NewDishHandler(dishRepo),
		HealthHandler: handlers.NewHealthHandler(pool, provider),
		AdminHandler:  handlers.NewAdminHandler(seedSvc, indexSvc),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if indexWorker != nil {
		indexWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL, sourceURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		sourceURL,
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if upErr == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
