package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	log "github.com/sirupsen/logrus"
)

// Compile-time check to ensure accountRepository implements the interface
var _ AccountRepository = (*accountRepository)(nil)

type accountRepository struct {
	store Store
}

// NewAccountRepository creates an AccountRepository storing JSON in store
func NewAccountRepository(store Store) AccountRepository {
	return &accountRepository{store: store}
}

// load decodes key into dest. A missing key leaves dest untouched; an
// unreadable value is logged and treated as missing.
func (r *accountRepository) load(ctx context.Context, msisdn, key string, dest interface{}) error {
	raw, err := r.store.Get(ctx, msisdn, key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.WithFields(log.Fields{"msisdn": msisdn, "key": key}).WithError(err).Warn("discarding unreadable stored value")
	}
	return nil
}

func (r *accountRepository) save(ctx context.Context, msisdn, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, msisdn, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// setFlag stores a set flag and removes a cleared one, false being the
// default of a missing key
func (r *accountRepository) setFlag(ctx context.Context, msisdn, key string, on bool) error {
	if on {
		return r.save(ctx, msisdn, key, true)
	}
	if err := r.store.Delete(ctx, msisdn, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// HasData reports whether the account has been seeded
func (r *accountRepository) HasData(ctx context.Context, msisdn string) (bool, error) {
	_, err := r.store.Get(ctx, msisdn, KeyTransactions)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *accountRepository) GetTransactions(ctx context.Context, msisdn string) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := r.load(ctx, msisdn, KeyTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *accountRepository) SaveTransactions(ctx context.Context, msisdn string, transactions []models.Transaction) error {
	return r.save(ctx, msisdn, KeyTransactions, transactions)
}

func (r *accountRepository) GetBudget(ctx context.Context, msisdn string) (models.Budget, error) {
	var budget models.Budget
	err := r.load(ctx, msisdn, KeyBudget, &budget)
	return budget, err
}

func (r *accountRepository) SaveBudget(ctx context.Context, msisdn string, budget models.Budget) error {
	return r.save(ctx, msisdn, KeyBudget, budget)
}

func (r *accountRepository) GetUser(ctx context.Context, msisdn string) (*models.User, error) {
	user := &models.User{PhoneNumber: msisdn}
	if err := r.load(ctx, msisdn, KeyUser, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *accountRepository) SaveUser(ctx context.Context, msisdn string, user *models.User) error {
	return r.save(ctx, msisdn, KeyUser, user)
}

func (r *accountRepository) GetNotifications(ctx context.Context, msisdn string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.load(ctx, msisdn, KeyNotifications, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *accountRepository) SaveNotifications(ctx context.Context, msisdn string, notifications []models.Notification) error {
	return r.save(ctx, msisdn, KeyNotifications, notifications)
}

func (r *accountRepository) GetRewardPoints(ctx context.Context, msisdn string) (models.RewardPoints, error) {
	points := models.RewardPoints{History: []models.RewardEntry{}}
	err := r.load(ctx, msisdn, KeyRewardPoints, &points)
	return points, err
}

func (r *accountRepository) SaveRewardPoints(ctx context.Context, msisdn string, points models.RewardPoints) error {
	return r.save(ctx, msisdn, KeyRewardPoints, points)
}

func (r *accountRepository) GetPaymentMethods(ctx context.Context, msisdn string) ([]models.PaymentMethod, error) {
	methods := []models.PaymentMethod{}
	if err := r.load(ctx, msisdn, KeyPaymentMethods, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *accountRepository) SavePaymentMethods(ctx context.Context, msisdn string, methods []models.PaymentMethod) error {
	return r.save(ctx, msisdn, KeyPaymentMethods, methods)
}

func (r *accountRepository) IsAuthenticated(ctx context.Context, msisdn string) (bool, error) {
	var status bool
	err := r.load(ctx, msisdn, KeyIsAuthenticated, &status)
	return status, err
}

func (r *accountRepository) SetAuthenticated(ctx context.Context, msisdn string, status bool) error {
	return r.setFlag(ctx, msisdn, KeyIsAuthenticated, status)
}

func (r *accountRepository) IsBiometricEnabled(ctx context.Context, msisdn string) (bool, error) {
	var enabled bool
	err := r.load(ctx, msisdn, KeyIsBiometricEnabled, &enabled)
	return enabled, err
}

func (r *accountRepository) SetBiometricEnabled(ctx context.Context, msisdn string, enabled bool) error {
	return r.setFlag(ctx, msisdn, KeyIsBiometricEnabled, enabled)
}

func (r *accountRepository) ClearAllData(ctx context.Context, msisdn string) error {
	return r.store.Clear(ctx, msisdn)
}
