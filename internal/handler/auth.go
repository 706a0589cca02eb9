package handler

import (
	"net/http"

	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/middleware"
	"github.com/Misscott/LocationAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login exchanges username+password for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh exchanges a valid refresh token for a fresh pair. The new role
// comes from the database, not the old token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register creates a self-service account with the default role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req, middleware.Now(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dataEnvelope("user", resp))
}
