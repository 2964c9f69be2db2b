package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/ledger"
	"github.com/ArowuTest/gaspay-backend/internal/middleware"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

var statusByError = []struct {
	err    error
	status int
}{
	{ledger.ErrInvalidAmount, http.StatusBadRequest},
	{ledger.ErrMissingStation, http.StatusBadRequest},
	{ledger.ErrInvalidBudget, http.StatusBadRequest},
	{ledger.ErrInvalidOdometer, http.StatusBadRequest},
	{ledger.ErrInvalidProvider, http.StatusBadRequest},
	{ledger.ErrMissingPhoneNumber, http.StatusBadRequest},
	{session.ErrEmptyPhoneNumber, http.StatusBadRequest},

	{session.ErrInvalidCode, http.StatusUnauthorized},
	{session.ErrNotAuthenticated, http.StatusUnauthorized},
	{services.ErrInvalidActionCode, http.StatusUnauthorized},
	{services.ErrBiometricDisabled, http.StatusUnauthorized},
	{services.ErrSessionMismatch, http.StatusUnauthorized},

	{services.ErrSessionNotFound, http.StatusNotFound},
	{ledger.ErrTransactionNotFound, http.StatusNotFound},
	{ledger.ErrPaymentMethodNotFound, http.StatusNotFound},

	{session.ErrNoLoginInProgress, http.StatusConflict},
	{session.ErrAlreadyAuthenticated, http.StatusConflict},
	{session.ErrNoPendingPayment, http.StatusConflict},
	{session.ErrNotScanning, http.StatusConflict},
	{session.ErrNoCompletedPayment, http.StatusConflict},
	{session.ErrBiometricCancelled, http.StatusConflict},

	{context.Canceled, http.StatusRequestTimeout},
	{context.DeadlineExceeded, http.StatusRequestTimeout},
}

// respondError writes err with the status its kind maps to. Unexpected
// errors are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	_ = c.Error(err)
	log.WithField("requestId", c.GetString(middleware.ContextRequestID)).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// identity returns the session id and msisdn set by the auth middleware
func identity(c *gin.Context) (sessionID, msisdn string) {
	return c.GetString(middleware.ContextSessionID), c.GetString(middleware.ContextMSISDN)
}
