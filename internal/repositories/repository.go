package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/gaspay-backend/internal/models"
)

// ErrNotFound is returned by a Store when a key has never been set
var ErrNotFound = errors.New("key not found")

// Store keys. Every account has its own set of these.
const (
	KeyTransactions       = "transactions"
	KeyBudget             = "budget"
	KeyUser               = "user"
	KeyNotifications      = "notifications"
	KeyRewardPoints       = "rewardPoints"
	KeyPaymentMethods     = "paymentMethods"
	KeyIsAuthenticated    = "isAuthenticated"
	KeyIsBiometricEnabled = "isBiometricEnabled"
)

// Store is durable key-value storage for textual values, partitioned by scope
type Store interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	// Clear removes every key of scope
	Clear(ctx context.Context, scope string) error
	Ping(ctx context.Context) error
}

// AccountRepository defines typed access to an account's stored state
type AccountRepository interface {
	HasData(ctx context.Context, msisdn string) (bool, error)

	GetTransactions(ctx context.Context, msisdn string) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, msisdn string, transactions []models.Transaction) error
	GetBudget(ctx context.Context, msisdn string) (models.Budget, error)
	SaveBudget(ctx context.Context, msisdn string, budget models.Budget) error
	GetUser(ctx context.Context, msisdn string) (*models.User, error)
	SaveUser(ctx context.Context, msisdn string, user *models.User) error
	GetNotifications(ctx context.Context, msisdn string) ([]models.Notification, error)
	SaveNotifications(ctx context.Context, msisdn string, notifications []models.Notification) error
	GetRewardPoints(ctx context.Context, msisdn string) (models.RewardPoints, error)
	SaveRewardPoints(ctx context.Context, msisdn string, points models.RewardPoints) error
	GetPaymentMethods(ctx context.Context, msisdn string) ([]models.PaymentMethod, error)
	SavePaymentMethods(ctx context.Context, msisdn string, methods []models.PaymentMethod) error

	IsAuthenticated(ctx context.Context, msisdn string) (bool, error)
	SetAuthenticated(ctx context.Context, msisdn string, status bool) error
	IsBiometricEnabled(ctx context.Context, msisdn string) (bool, error)
	SetBiometricEnabled(ctx context.Context, msisdn string, enabled bool) error

	// ClearAllData removes every key of the account
	ClearAllData(ctx context.Context, msisdn string) error
}
