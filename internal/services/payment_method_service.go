package services

import (
	"context"

	"github.com/ArowuTest/gaspay-backend/internal/ledger"
	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
)

// PaymentMethodService manages the account's linked mobile money wallets
type PaymentMethodService struct {
	accounts *Accounts
	newID    func() string
}

// NewPaymentMethodService creates a new PaymentMethodService
func NewPaymentMethodService(accounts *Accounts) *PaymentMethodService {
	return &PaymentMethodService{accounts: accounts, newID: utils.GenerateID}
}

// List returns the linked wallets
func (s *PaymentMethodService) List(ctx context.Context, msisdn string) ([]models.PaymentMethod, error) {
	return s.accounts.repo.GetPaymentMethods(ctx, msisdn)
}

// Add links a wallet. The first wallet linked becomes primary.
func (s *PaymentMethodService) Add(ctx context.Context, msisdn string, provider models.Provider, phoneNumber string) ([]models.PaymentMethod, error) {
	return s.update(ctx, msisdn, func(methods []models.PaymentMethod) ([]models.PaymentMethod, error) {
		return ledger.AddPaymentMethod(methods, s.newID(), provider, phoneNumber)
	})
}

// Remove unlinks a wallet
func (s *PaymentMethodService) Remove(ctx context.Context, msisdn, id string) ([]models.PaymentMethod, error) {
	return s.update(ctx, msisdn, func(methods []models.PaymentMethod) ([]models.PaymentMethod, error) {
		return ledger.RemovePaymentMethod(methods, id)
	})
}

// SetPrimary makes one wallet the primary one
func (s *PaymentMethodService) SetPrimary(ctx context.Context, msisdn, id string) ([]models.PaymentMethod, error) {
	return s.update(ctx, msisdn, func(methods []models.PaymentMethod) ([]models.PaymentMethod, error) {
		return ledger.SetPrimaryPaymentMethod(methods, id)
	})
}

func (s *PaymentMethodService) update(ctx context.Context, msisdn string, apply func([]models.PaymentMethod) ([]models.PaymentMethod, error)) ([]models.PaymentMethod, error) {
	unlock := s.accounts.lock(msisdn)
	defer unlock()

	methods, err := s.accounts.repo.GetPaymentMethods(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	updated, err := apply(methods)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.repo.SavePaymentMethods(ctx, msisdn, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
