package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/theideaforge/forge/internal/server/middleware"
	"github.com/theideaforge/forge/internal/store"
	"github.com/theideaforge/forge/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

const tokenLifetime = 24 * time.Hour

func signToken(user *store.User, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString(secret)
}

func RegisterHandler(c echo.Context) error {
	type registerBody struct {
		Username string `json:"username" validate:"required,min=3,max=64"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	type registerResponse struct {
		Message  string `json:"message"`
		Token    string `json:"token,omitempty"`
		Username string `json:"username,omitempty"`
	}

	data := new(registerBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Message: "Invalid request body",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	user, err := app.Store.CreateUser(ctx, data.Username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.JSON(http.StatusConflict, registerResponse{
				Message: "Username is already taken",
			})
		}
		logger.Error("Failed to create user", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	token, err := signToken(user, app.JWTSecret)
	if err != nil {
		logger.Error("Failed to sign token", "err", err)
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message:  "Account created",
		Token:    token,
		Username: user.Username,
	})
}

func LoginHandler(c echo.Context) error {
	type loginBody struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	type loginResponse struct {
		Message  string `json:"message"`
		Token    string `json:"token,omitempty"`
		Username string `json:"username,omitempty"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	user, err := app.Store.GetUserByUsername(ctx, data.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, loginResponse{
				Message: "Invalid username or password",
			})
		}
		logger.Error("Failed to look up user", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, loginResponse{
			Message: "Invalid username or password",
		})
	}

	token, err := signToken(user, app.JWTSecret)
	if err != nil {
		logger.Error("Failed to sign token", "err", err)
		return c.JSON(http.StatusInternalServerError, loginResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Logged in",
		Token:    token,
		Username: user.Username,
	})
}
