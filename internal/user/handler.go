package user

import (
	"net/http"

	"signature-builder/internal/auth"
	"signature-builder/internal/domain"
	"signature-builder/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const refreshCookie = "refresh_token"

// Handler handles HTTP requests for users
type Handler struct {
	service       Service
	signer        *auth.Signer
	secureCookies bool
}

// NewHandler creates a new user handler
func NewHandler(service Service, signer *auth.Signer, secureCookies bool) *Handler {
	return &Handler{service: service, signer: signer, secureCookies: secureCookies}
}

// FormLogin represents login form data
type FormLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FormRegister represents registration form data
type FormRegister struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register handles user registration
func (h *Handler) Register(c *gin.Context) {
	var form FormRegister
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user := &domain.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		IsActive: true,
	}

	if err := h.service.Register(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.ToSafeUser()})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var form FormLogin
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	user, err := h.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		c.Error(err)
		return
	}

	accessToken, err := h.signer.GenerateAccessToken(user.ID, user.TokenVersion)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}
	refreshToken, err := h.signer.GenerateRefreshToken(user.ID, user.TokenVersion)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}

	// Set refresh token as HttpOnly cookie
	c.SetCookie(refreshCookie, refreshToken, 7*24*3600, "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"user":         user.ToSafeUser(),
	})
}

// RefreshToken issues a new access token from the refresh cookie.
func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		c.Error(errors.Unauthorized("Refresh token not found", err))
		return
	}

	claims, err := h.signer.VerifyRefreshToken(refreshToken)
	if err != nil {
		c.Error(errors.Unauthorized("Invalid token or expired!", err))
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		c.Error(errors.Unauthorized("User not found", err))
		return
	}

	if user.TokenVersion != claims.TokenVersion {
		c.Error(errors.Unauthorized("Invalid token!", nil))
		return
	}

	accessToken, err := h.signer.GenerateAccessToken(user.ID, user.TokenVersion)
	if err != nil {
		c.Error(errors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout revokes every token of the current user.
func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := h.service.IncreaseTokenVersion(c.Request.Context(), userID); err != nil {
		log.Warn().Err(err).Uint64("user_id", userID).Msg("failed to revoke tokens")
	}
	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookies, true)
	c.Status(http.StatusNoContent)
}

// GetProfile handles getting the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.Error(errors.Unauthorized("user not found", nil))
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), userID.(uint64))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user.ToSafeUser())
}
