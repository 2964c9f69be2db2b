package handlers

import (
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles the signed-in screens
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// Session handles GET /session
func (h *WalletHandler) Session(c *gin.Context) {
	sessionID, msisdn := identity(c)
	view, err := h.walletService.Session(sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Navigate handles POST /session/navigate
func (h *WalletHandler) Navigate(c *gin.Context) {
	var req models.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, msisdn := identity(c)
	view, err := h.walletService.Navigate(sessionID, msisdn, req.Screen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Dashboard handles GET /dashboard
func (h *WalletHandler) Dashboard(c *gin.Context) {
	_, msisdn := identity(c)
	summary, err := h.walletService.Dashboard(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StartScan handles POST /scan
func (h *WalletHandler) StartScan(c *gin.Context) {
	sessionID, msisdn := identity(c)
	view, err := h.walletService.StartScan(sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, view)
}

// CancelScan handles DELETE /scan
func (h *WalletHandler) CancelScan(c *gin.Context) {
	sessionID, msisdn := identity(c)
	view, err := h.walletService.CancelScan(sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ConfirmPayment handles POST /payments/confirm
func (h *WalletHandler) ConfirmPayment(c *gin.Context) {
	sessionID, msisdn := identity(c)
	receipt, err := h.walletService.ConfirmPayment(c.Request.Context(), sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// CancelPayment handles POST /payments/cancel
func (h *WalletHandler) CancelPayment(c *gin.Context) {
	sessionID, msisdn := identity(c)
	view, err := h.walletService.CancelPayment(sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ClosePaymentSuccess handles POST /payments/success/close
func (h *WalletHandler) ClosePaymentSuccess(c *gin.Context) {
	sessionID, msisdn := identity(c)
	view, err := h.walletService.ClosePaymentSuccess(sessionID, msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Transactions handles GET /transactions?q=
func (h *WalletHandler) Transactions(c *gin.Context) {
	_, msisdn := identity(c)
	txs, err := h.walletService.Transactions(c.Request.Context(), msisdn, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// Transaction handles GET /transactions/:id
func (h *WalletHandler) Transaction(c *gin.Context) {
	sessionID, msisdn := identity(c)
	detail, err := h.walletService.Transaction(c.Request.Context(), sessionID, msisdn, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateOdometer handles PUT /transactions/:id/odometer
func (h *WalletHandler) UpdateOdometer(c *gin.Context) {
	var req models.OdometerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, msisdn := identity(c)
	detail, err := h.walletService.UpdateOdometer(c.Request.Context(), msisdn, c.Param("id"), req.Odometer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Budget handles GET /budget
func (h *WalletHandler) Budget(c *gin.Context) {
	_, msisdn := identity(c)
	view, err := h.walletService.Budget(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateBudget handles PUT /budget
func (h *WalletHandler) UpdateBudget(c *gin.Context) {
	var req models.BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, msisdn := identity(c)
	view, err := h.walletService.UpdateBudget(c.Request.Context(), sessionID, msisdn, req.Total)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Rewards handles GET /rewards
func (h *WalletHandler) Rewards(c *gin.Context) {
	_, msisdn := identity(c)
	view, err := h.walletService.Rewards(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
