package handlers

import (
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		models.LoginRequest
		SessionID string `json:"sessionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.authService.RequestLogin(c.Request.Context(), req.SessionID, req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// VerifyOtp handles POST /auth/verify
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.VerifyOtp(c.Request.Context(), req.SessionID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Back handles POST /auth/back
func (h *AuthHandler) Back(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.authService.GoBack(req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Recovery handles POST /auth/recovery. The body is optional.
func (h *AuthHandler) Recovery(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	view, err := h.authService.Recovery(req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// BiometricLogin handles POST /auth/biometric. It answers once the prompt
// is approved; a client that goes away cancels it.
func (h *AuthHandler) BiometricLogin(c *gin.Context) {
	var req models.BiometricLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authService.BiometricLogin(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, msisdn := identity(c)
	if err := h.authService.Logout(c.Request.Context(), sessionID, msisdn); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SetBiometric handles PUT /auth/biometric
func (h *AuthHandler) SetBiometric(c *gin.Context) {
	var req models.BiometricSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, msisdn := identity(c)
	if err := h.authService.SetBiometricEnabled(c.Request.Context(), msisdn, *req.Enabled); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

// DeleteAccount handles DELETE /account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req models.ActionOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, msisdn := identity(c)
	if err := h.authService.DeleteAccount(c.Request.Context(), sessionID, msisdn, req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
