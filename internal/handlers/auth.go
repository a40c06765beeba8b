// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plmining/licensing-backend/internal/config"
	"github.com/plmining/licensing-backend/internal/i18n"
	"github.com/plmining/licensing-backend/internal/middleware"
	"github.com/plmining/licensing-backend/internal/services"
	"github.com/plmining/licensing-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	cookieName  string
	secure      bool
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieName:  cfg.JWT.CookieName,
		secure:      cfg.Environment == "production",
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, auth *services.AuthResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, auth.AccessToken, auth.ExpiresIn, "/", "", h.secure, true)
}

func authPayload(message string, auth *services.AuthResponse) gin.H {
	return gin.H{
		"message":    message,
		"user":       auth.User,
		"token":      auth.AccessToken,
		"token_type": auth.TokenType,
		"expires_in": auth.ExpiresIn,
		"expires_at": auth.ExpiresAt,
	}
}

// POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SignUpRequest
	if !bindAndValidate(c, &req) {
		return
	}

	auth, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, auth)
	utils.CreatedResponse(c, authPayload(i18n.T(lang, i18n.KeyAuthRegisterSuccess), auth))
}

// POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SignInRequest
	if !bindAndValidate(c, &req) {
		return
	}

	auth, err := h.authService.SignIn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, auth)
	utils.SuccessResponse(c, authPayload(i18n.T(lang, i18n.KeyAuthLoginSuccess), auth))
}

// POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), claims); err != nil {
		handleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.Me(c.Request.Context(), claims)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ForgotPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthResetRequested),
	})
}

// GET /api/auth/reset-password/:token
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	reset, err := h.authService.ValidateResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"valid":      true,
		"email":      reset.Email,
		"expires_at": reset.Expires,
	})
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthPasswordReset),
	})
}
