package routes

import (
	"net/http"

	"github.com/theideaforge/forge/internal/server/middleware"
	"github.com/theideaforge/forge/internal/store"
	"github.com/theideaforge/forge/pkg/ai"
	"github.com/theideaforge/forge/pkg/forge"
	"github.com/theideaforge/forge/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// ForgeHandler runs the full pipeline on submitted text: term
// extraction, concept graph construction, prompt generation and
// persistence. The response is the stored session.
func ForgeHandler(c echo.Context) error {
	type forgeBody struct {
		Text string `json:"text" validate:"required"`
	}

	type forgeResponse struct {
		Message string         `json:"message"`
		Session *store.Session `json:"session,omitempty"`
	}

	data := new(forgeBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, forgeResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, forgeResponse{
			Message: "Invalid request body",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, forgeResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	terms := forge.ExtractTerms(data.Text)

	graph, err := forge.BuildGraph(ctx, app.Embedder, terms)
	if err != nil {
		logger.Error("Failed to build concept graph", "kind", ai.ErrorKind(err), "err", err)
		return c.JSON(http.StatusBadGateway, forgeResponse{
			Message: "Concept graph construction failed, embedding model unavailable",
		})
	}

	prompts := app.Orchestrator.GeneratePrompts(ctx, terms, data.Text)

	session, err := app.Store.SaveSession(ctx, store.NewSessionParams{
		UserID:    user.UserID,
		InputText: data.Text,
		KeyTerms:  terms,
		Prompts:   prompts,
		GraphData: forge.ToDisplay(graph),
	})
	if err != nil {
		logger.Error("Failed to save session", "err", err)
		return c.JSON(http.StatusInternalServerError, forgeResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, forgeResponse{
		Message: "Session created",
		Session: session,
	})
}
