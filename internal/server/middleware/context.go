package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/theideaforge/forge/internal/store"
	"github.com/theideaforge/forge/pkg/ai"
	"github.com/theideaforge/forge/pkg/forge"
)

type AppUser struct {
	UserID   int64
	Username string
}

// App holds the process-wide dependencies. It is constructed once at
// startup and shared across all requests.
type App struct {
	DBConn       *pgxpool.Pool
	Store        *store.Store
	AiClient     ai.ForgeAIClient
	Embedder     forge.Embedder
	Orchestrator *forge.Orchestrator
	JWTSecret    []byte
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
