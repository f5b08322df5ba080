package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/api/metrics"
	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates an ordinary user account and returns its first token.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "New account credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	return h.signup(c, false)
}

// SignupAdmin creates an ADMIN account. The route carries no role gate,
// same as the system this replaces.
//
// @Summary      Sign up an administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "New account credentials"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup-admin [post]
func (h *AuthHandler) SignupAdmin(c echo.Context) error {
	return h.signup(c, true)
}

func (h *AuthHandler) signup(c echo.Context, admin bool) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	var (
		result *ports.AuthResult
		err    error
	)
	if admin {
		result, err = h.authService.SignupAdmin(c.Request().Context(), input)
	} else {
		result, err = h.authService.Signup(c.Request().Context(), input)
	}
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(result.User.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// Signin verifies credentials and returns a fresh token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SigninsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}
