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

func DeleteSessionHandler(c echo.Context) error {
	type deleteSessionParams struct {
		ID string `param:"id" validate:"required"`
	}

	type deleteSessionResponse struct {
		Message string `json:"message"`
	}

	params := new(deleteSessionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteSessionResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, deleteSessionResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, deleteSessionResponse{
			Message: "Unauthorized",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if err := app.Store.DeleteSession(ctx, user.UserID, params.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, deleteSessionResponse{
				Message: "Session not found",
			})
		}
		logger.Error("Failed to delete session", "err", err)
		return c.JSON(http.StatusInternalServerError, deleteSessionResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, deleteSessionResponse{
		Message: "Session deleted",
	})
}
