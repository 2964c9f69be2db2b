package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/config"
	"github.com/ArowuTest/gaspay-backend/internal/handlers"
	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"github.com/ArowuTest/gaspay-backend/internal/repositories/memory"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/pkg/advisor"
	"github.com/ArowuTest/gaspay-backend/pkg/jwt"
	"github.com/ArowuTest/gaspay-backend/pkg/smsgateway"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newClient(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	login, err := services.NewOTPVerifier("1234", bcrypt.MinCost)
	require.NoError(t, err)
	action, err := services.NewOTPVerifier("1234", bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewKVStore()
	tokens := jwt.NewTokenService("test-secret", time.Hour)
	sessions := services.NewSessionManager(session.Config{
		ScanDelay:               5 * time.Millisecond,
		ScanFeedbackDelay:       5 * time.Millisecond,
		BiometricDelay:          5 * time.Millisecond,
		PaymentSuccessAutoClose: time.Minute,
	}, login, session.WithScanner(func() models.PendingPayment {
		return models.PendingPayment{Station: "Shell Airport", Amount: decimal.RequireFromString("62.40")}
	}))
	t.Cleanup(func() { sessions.Sweep(time.Now(), -1) })

	accounts := services.NewAccounts(repositories.NewAccountRepository(store), notify.NewSink())
	adv := advisor.NewClient("", "", "gemini-2.5-flash", true, time.Second)

	router := SetupRouter(cfg, HandlerDependencies{
		AuthHandler:          handlers.NewAuthHandler(services.NewAuthService(sessions, accounts, tokens, smsgateway.NewMockGateway("test"), action, "1234")),
		WalletHandler:        handlers.NewWalletHandler(services.NewWalletService(sessions, accounts)),
		NotificationHandler:  handlers.NewNotificationHandler(services.NewNotificationService(accounts)),
		PaymentMethodHandler: handlers.NewPaymentMethodHandler(services.NewPaymentMethodService(accounts)),
		AdvisoryHandler:      handlers.NewAdvisoryHandler(services.NewAdvisoryService(adv, accounts)),
		Tokens:               tokens,
		Store:                store,
	})
	return &client{t: t, router: router}
}

func (c *client) do(method, path string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (c *client) doList(method, path string) (int, []interface{}) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var out []interface{}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func (c *client) signIn() {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/api/v1/auth/login", gin.H{"phoneNumber": "024 123 4567"})
	require.Equal(c.t, http.StatusOK, status)
	status, body = c.do(http.MethodPost, "/api/v1/auth/verify", gin.H{"sessionId": body["sessionId"], "code": "1234"})
	require.Equal(c.t, http.StatusOK, status)
	c.token = body["token"].(string)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	status, body := c.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestLoginFlow(t *testing.T) {
	c := newClient(t)

	status, body := c.do(http.MethodPost, "/api/v1/auth/login", gin.H{"phoneNumber": "024 123 4567"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OTP", body["screen"])
	sessionID := body["sessionId"]

	status, _ = c.do(http.MethodPost, "/api/v1/auth/verify", gin.H{"sessionId": sessionID, "code": "12a4"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodPost, "/api/v1/auth/verify", gin.H{"sessionId": sessionID, "code": "0000"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid code", body["error"])

	status, body = c.do(http.MethodPost, "/api/v1/auth/verify", gin.H{"sessionId": sessionID, "code": "1234"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DASHBOARD", body["screen"])
	assert.NotEmpty(t, body["token"])

	status, _ = c.do(http.MethodPost, "/api/v1/auth/verify", gin.H{"sessionId": "unknown", "code": "1234"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	c := newClient(t)
	status, _ := c.do(http.MethodGet, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPaymentFlow(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, body := c.do(http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(22), body["points"])

	status, body = c.do(http.MethodPost, "/api/v1/scan", nil)
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "SCAN", body["screen"])
	assert.Equal(t, false, body["navBarVisible"])

	require.Eventually(t, func() bool {
		_, view := c.do(http.MethodGet, "/api/v1/session", nil)
		return view["screen"] == "PAYMENT"
	}, time.Second, 5*time.Millisecond)

	status, body = c.do(http.MethodPost, "/api/v1/payments/confirm", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "PAYMENT_SUCCESS", body["screen"])
	tx := body["transaction"].(map[string]interface{})
	assert.Equal(t, "Shell Airport", tx["station"])
	assert.Equal(t, float64(6), tx["pointsEarned"])

	status, _ = c.do(http.MethodPost, "/api/v1/payments/confirm", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = c.do(http.MethodPost, "/api/v1/payments/success/close", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DASHBOARD", body["screen"])

	status, body = c.do(http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), body["unread"])
	first := body["notifications"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "You earned 6 points!", first["message"])

	status, body = c.do(http.MethodPost, "/api/v1/notifications/read", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["unread"])
}

func TestBudgetValidation(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, _ := c.do(http.MethodPut, "/api/v1/budget", gin.H{"total": "abc"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := c.do(http.MethodPut, "/api/v1/budget", gin.H{"total": "750"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "750", body["budget"].(map[string]interface{})["total"])
}

func TestTransactionsAndOdometer(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, list := c.doList(http.MethodGet, "/api/v1/transactions?q=goil")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)

	status, body := c.do(http.MethodGet, "/api/v1/transactions/tx1", nil)
	require.Equal(t, http.StatusOK, status)
	eff := body["efficiency"].(map[string]interface{})
	assert.Equal(t, float64(250), eff["distance"])

	status, _ = c.do(http.MethodGet, "/api/v1/transactions/zzz", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = c.do(http.MethodPut, "/api/v1/transactions/tx4/odometer", gin.H{"odometer": 0})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = c.do(http.MethodPut, "/api/v1/transactions/tx4/odometer", gin.H{"odometer": 49300})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(49300), body["transaction"].(map[string]interface{})["odometer"])
}

func TestPaymentMethods(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, _ := c.do(http.MethodPost, "/api/v1/payment-methods", gin.H{"provider": "Glo", "phoneNumber": "0240000000"})
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment-methods", bytes.NewBufferString(`{"provider":"AirtelTigo","phoneNumber":"0270000000"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var methods []models.PaymentMethod
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	require.Len(t, methods, 3)

	status, _ = c.do(http.MethodPut, "/api/v1/payment-methods/"+methods[2].ID+"/primary", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodDelete, "/api/v1/payment-methods/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdvisoryRoutes(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, tips := c.doList(http.MethodGet, "/api/v1/tips")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, tips, 3)

	status, body := c.do(http.MethodGet, "/api/v1/stations?lat=oops", nil)
	require.Equal(t, http.StatusOK, status)
	loc := body["location"].(map[string]interface{})
	assert.Equal(t, 5.6037, loc["lat"])
	assert.Len(t, body["stations"], 4)
}

func TestDeleteAccount(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, _ := c.do(http.MethodDelete, "/api/v1/account", gin.H{"code": "9999"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodDelete, "/api/v1/account", gin.H{"code": "1234"})
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLogout(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, _ := c.do(http.MethodPost, "/api/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodPost, "/api/v1/session/navigate", gin.H{"screen": "HISTORY"})
	assert.Equal(t, http.StatusNotFound, status)
}
