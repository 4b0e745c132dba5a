package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/theideaforge/forge/internal/server/middleware"
	"github.com/theideaforge/forge/internal/store"
	"github.com/theideaforge/forge/internal/util"
	"github.com/theideaforge/forge/pkg/ai"
	oai "github.com/theideaforge/forge/pkg/ai/ollama"
	gai "github.com/theideaforge/forge/pkg/ai/openai"
	"github.com/theideaforge/forge/pkg/forge"
	"github.com/theideaforge/forge/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func newAIClient() ai.ForgeAIClient {
	adapter := util.GetEnvString("AI_ADAPTER", "ollama")

	switch adapter {
	case "openai":
		return gai.NewForgeOpenAIClient(gai.NewForgeOpenAIClientParams{
			GenerateModel:  util.GetEnvString("AI_GENERATE_MODEL", "phi3:mini"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			EmbedDim:       int(util.GetEnvNumeric("AI_EMBED_DIM", 768)),

			BaseURL: util.GetEnv("AI_URL"),
			ApiKey:  util.GetEnv("AI_KEY"),

			Timeout:               time.Duration(util.GetEnvNumeric("AI_TIMEOUT_SEC", 60)) * time.Second,
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 5)),
		})
	default:
		client, err := oai.NewForgeOllamaClient(oai.NewForgeOllamaClientParams{
			GenerateModel:  util.GetEnvString("AI_GENERATE_MODEL", "phi3:mini"),
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			EmbedDim:       int(util.GetEnvNumeric("AI_EMBED_DIM", 768)),

			BaseURL: util.GetEnv("AI_URL"),
			ApiKey:  util.GetEnv("AI_KEY"),

			Timeout:               time.Duration(util.GetEnvNumeric("AI_TIMEOUT_SEC", 60)) * time.Second,
			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 5)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	}
}

func runMigrations(databaseURL string) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Fatal("Failed to open migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	jwtSecret := util.GetEnv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	runMigrations(databaseURL)

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("Failed to parse database URL", "err", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	conn, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	aiClient := newAIClient()
	if err := aiClient.LoadModels(ctx); err != nil {
		logger.Fatal("Configured models are not available", "err", err)
	}

	db := store.NewStore(conn)
	embedder := store.NewCachedEmbedder(store.NewCachedEmbedderParams{
		Store:  db,
		Client: aiClient,
		Dim:    int(util.GetEnvNumeric("AI_EMBED_DIM", 768)),
	})
	orchestrator := forge.NewOrchestrator(forge.NewOrchestratorParams{
		Client:     aiClient,
		MaxRetries: int(util.GetEnvNumeric("AI_MAX_RETRIES", 2)),
		Timeout:    time.Duration(util.GetEnvNumeric("AI_TIMEOUT_SEC", 60)) * time.Second,
	})

	app := &mid.App{
		DBConn:       conn,
		Store:        db,
		AiClient:     aiClient,
		Embedder:     embedder,
		Orchestrator: orchestrator,
		JWTSecret:    []byte(jwtSecret),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
