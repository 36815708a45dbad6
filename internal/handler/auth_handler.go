package handler

import (
	"net/http"

	"hangout/backend/internal/auth"
	"hangout/backend/internal/service"
	"hangout/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// region --- DTOs ---

// SendCodeInput defines the body for requesting a verification code.
type SendCodeInput struct {
	Phone string `json:"phone" binding:"required,min=10" example:"(555) 234-5678"`
}

// VerifyCodeInput defines the body for signing in with a code.
type VerifyCodeInput struct {
	Phone string `json:"phone" binding:"required,min=10" example:"(555) 234-5678"`
	Code  string `json:"code" binding:"required,len=6" example:"123456"`
}

// SessionResponse is returned after a successful sign in.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// endregion

type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool
}

func NewAuthHandler(auth *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: auth, secureCookie: secureCookie}
}

// SendCode godoc
// @Summary      Send a verification code
// @Description  Registers the phone number on first use and texts it a 6-digit code.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SendCodeInput true "Phone number"
// @Success      200 {object} map[string]string "{"message": "..."}"
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/send-code [post]
func (h *AuthHandler) SendCode(c *gin.Context) {
	var input SendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.SendCode(c.Request.Context(), input.Phone); err != nil {
		respondError(c, err, "Failed to send verification code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyCode godoc
// @Summary      Sign in with a verification code
// @Description  Returns a session token and also sets it as an HTTP-only cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body VerifyCodeInput true "Phone number and code"
// @Success      200 {object} SessionResponse
// @Failure      400 {object} ErrorResponse
// @Router       /auth/verify-code [post]
func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var input VerifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.auth.VerifyCode(c.Request.Context(), input.Phone, input.Code)
	if err != nil {
		respondError(c, err, "Failed to verify code")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(jwt.TokenTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, SessionResponse{Token: token, User: newUserResponse(*user)})
}

// Me godoc
// @Summary      Get the signed-in user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Me(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, newUserResponse(*user))
}

// Logout godoc
// @Summary      Sign out
// @Description  Clears the session cookie. Works with or without a valid session.
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID := auth.UserID(c); userID != "" {
		log.Info().Str("user_id", userID).Msg("user signed out")
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.Status(http.StatusNoContent)
}
