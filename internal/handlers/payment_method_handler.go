package handlers

import (
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PaymentMethodHandler handles linked wallet requests
type PaymentMethodHandler struct {
	paymentMethodService *services.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(paymentMethodService *services.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService}
}

// List handles GET /payment-methods
func (h *PaymentMethodHandler) List(c *gin.Context) {
	_, msisdn := identity(c)
	methods, err := h.paymentMethodService.List(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

// Add handles POST /payment-methods
func (h *PaymentMethodHandler) Add(c *gin.Context) {
	var req models.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, msisdn := identity(c)
	methods, err := h.paymentMethodService.Add(c.Request.Context(), msisdn, req.Provider, req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, methods)
}

// Remove handles DELETE /payment-methods/:id
func (h *PaymentMethodHandler) Remove(c *gin.Context) {
	_, msisdn := identity(c)
	methods, err := h.paymentMethodService.Remove(c.Request.Context(), msisdn, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

// SetPrimary handles PUT /payment-methods/:id/primary
func (h *PaymentMethodHandler) SetPrimary(c *gin.Context) {
	_, msisdn := identity(c)
	methods, err := h.paymentMethodService.SetPrimary(c.Request.Context(), msisdn, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}
