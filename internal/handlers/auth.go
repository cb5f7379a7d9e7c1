// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// GET /auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	utils.SuccessResponse(c, services.UserProfile{
		ID:    c.GetString("user_id"),
		Email: c.GetString("user_email"),
		Name:  c.GetString("user_name"),
	})
}

type redirectTargetRequest struct {
	Target string `json:"target" validate:"required"`
}

// PUT /auth/redirect-target
//
// Stores where this session should return after signing in with the hosted
// provider.
func (h *AuthHandler) SetRedirectTarget(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req redirectTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := h.authService.SetRedirectTarget(sessionID, req.Target); err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{"target": req.Target})
}

// GET /auth/redirect-target
//
// Returns and consumes the stored post-login target. Falls back to "/" when
// none was stored.
func (h *AuthHandler) ConsumeRedirectTarget(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	target, err := h.authService.RedirectTarget(sessionID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	if target == "" {
		target = "/"
	} else if err := h.authService.ClearRedirectTarget(sessionID); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"target": target})
}
