package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coworkflow/coworkflow/internal/config"
	"github.com/coworkflow/coworkflow/internal/logs"
	"github.com/coworkflow/coworkflow/internal/model"
	"github.com/coworkflow/coworkflow/internal/repository"
	"github.com/coworkflow/coworkflow/internal/utils"
)

// UsersHandler serves signup, login and profile lookups.
type UsersHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUsersHandler(cfg config.Config, u *repository.UserRepo) *UsersHandler {
	return &UsersHandler{Cfg: cfg, Users: u}
}

type signupReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResp struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Signup creates an account.  Unknown roles are stored as "user".
func (h *UsersHandler) Signup(c echo.Context) error {
	var req signupReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Password, req.Name, model.NormalizeRole(req.Role), h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return errorJSON(c, http.StatusBadRequest, "User already exists")
		}
		logs.For("users").WithError(err).Error("create user failed")
		return errorJSON(c, http.StatusInternalServerError, "Create user failed")
	}
	logs.For("users").WithField("user_id", u.ID).Info("user signed up")
	return messageJSON(c, http.StatusCreated, "User created")
}

// Login verifies credentials and issues a bearer token.
func (h *UsersHandler) Login(c echo.Context) error {
	var req loginReq
	if msg, ok := bindValid(c, &req); !ok {
		return errorJSON(c, http.StatusBadRequest, msg)
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
	}
	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTL)
	if err != nil {
		logs.For("users").WithError(err).Error("sign token failed")
		return errorJSON(c, http.StatusInternalServerError, "Issue token failed")
	}
	return c.JSON(http.StatusOK, loginResp{Token: tok.Token, Role: u.Role})
}

// Me decodes the caller's bearer token itself and returns the profile.
func (h *UsersHandler) Me(c echo.Context) error {
	claims, err := utils.VerifyToken(h.Cfg.JWTSecret, utils.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization)))
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "Invalid token")
	}
	u, err := h.Users.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

// List returns every profile.  Admin-only at the gateway.
func (h *UsersHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Users.List(c.Request().Context()))
}
