package routes

import (
	"errors"
	"net/http"

	"github.com/theideaforge/forge/internal/server/middleware"
	"github.com/theideaforge/forge/internal/store"
	"github.com/theideaforge/forge/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

const (
	defaultPerPage = 10
	maxPerPage     = 50
)

func GetSessionsHandler(c echo.Context) error {
	type getSessionsParams struct {
		Page    int `query:"page"`
		PerPage int `query:"per_page"`
	}

	type getSessionsResponse struct {
		Message    string          `json:"message"`
		Sessions   []store.Session `json:"sessions"`
		Page       int             `json:"page"`
		PerPage    int             `json:"per_page"`
		Total      int64           `json:"total"`
		TotalPages int64           `json:"total_pages"`
	}

	params := new(getSessionsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSessionsResponse{
			Message: "Invalid request params",
		})
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = defaultPerPage
	}
	if params.PerPage > maxPerPage {
		params.PerPage = maxPerPage
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getSessionsResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	offset := (params.Page - 1) * params.PerPage
	sessions, err := app.Store.ListSessions(ctx, user.UserID, params.PerPage, offset)
	if err != nil {
		logger.Error("Failed to list sessions", "err", err)
		return c.JSON(http.StatusInternalServerError, getSessionsResponse{
			Message: "Internal server error",
		})
	}

	total, err := app.Store.CountSessions(ctx, user.UserID)
	if err != nil {
		logger.Error("Failed to count sessions", "err", err)
		return c.JSON(http.StatusInternalServerError, getSessionsResponse{
			Message: "Internal server error",
		})
	}

	totalPages := (total + int64(params.PerPage) - 1) / int64(params.PerPage)

	return c.JSON(http.StatusOK, getSessionsResponse{
		Message:    "Sessions found",
		Sessions:   sessions,
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

func GetLatestSessionHandler(c echo.Context) error {
	type getLatestResponse struct {
		Message string         `json:"message"`
		Session *store.Session `json:"session,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getLatestResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	session, err := app.Store.GetLatestSession(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getLatestResponse{
				Message: "No sessions yet",
			})
		}
		logger.Error("Failed to load latest session", "err", err)
		return c.JSON(http.StatusInternalServerError, getLatestResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getLatestResponse{
		Message: "Session found",
		Session: session,
	})
}

func GetSessionHandler(c echo.Context) error {
	type getSessionParams struct {
		ID string `param:"id" validate:"required"`
	}

	type getSessionResponse struct {
		Message string         `json:"message"`
		Session *store.Session `json:"session,omitempty"`
	}

	params := new(getSessionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSessionResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, getSessionResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, getSessionResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	session, err := app.Store.GetSessionByPublicID(ctx, user.UserID, params.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getSessionResponse{
				Message: "Session not found",
			})
		}
		logger.Error("Failed to load session", "err", err)
		return c.JSON(http.StatusInternalServerError, getSessionResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getSessionResponse{
		Message: "Session found",
		Session: session,
	})
}
