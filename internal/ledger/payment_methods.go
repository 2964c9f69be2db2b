package ledger

import (
	"errors"
	"strings"

	"github.com/ArowuTest/gaspay-backend/internal/models"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrInvalidProvider       = errors.New("provider must be MTN, Vodafone or AirtelTigo")
	ErrMissingPhoneNumber    = errors.New("phone number is required")
)

// AddPaymentMethod appends a new wallet. It becomes primary only when it is
// the first one.
func AddPaymentMethod(methods []models.PaymentMethod, id string, provider models.Provider, phoneNumber string) ([]models.PaymentMethod, error) {
	if !provider.Valid() {
		return nil, ErrInvalidProvider
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, ErrMissingPhoneNumber
	}
	out := make([]models.PaymentMethod, 0, len(methods)+1)
	out = append(out, methods...)
	return append(out, models.PaymentMethod{
		ID:          id,
		Provider:    provider,
		PhoneNumber: strings.TrimSpace(phoneNumber),
		IsPrimary:   len(methods) == 0,
	}), nil
}

// SetPrimaryPaymentMethod makes the method with id the only primary one
func SetPrimaryPaymentMethod(methods []models.PaymentMethod, id string) ([]models.PaymentMethod, error) {
	if !containsMethod(methods, id) {
		return nil, ErrPaymentMethodNotFound
	}
	out := make([]models.PaymentMethod, len(methods))
	for i, m := range methods {
		m.IsPrimary = m.ID == id
		out[i] = m
	}
	return out, nil
}

// RemovePaymentMethod drops the method with id. If no primary remains, the
// first remaining method in original order is promoted.
func RemovePaymentMethod(methods []models.PaymentMethod, id string) ([]models.PaymentMethod, error) {
	if !containsMethod(methods, id) {
		return nil, ErrPaymentMethodNotFound
	}
	out := make([]models.PaymentMethod, 0, len(methods))
	hasPrimary := false
	for _, m := range methods {
		if m.ID == id {
			continue
		}
		hasPrimary = hasPrimary || m.IsPrimary
		out = append(out, m)
	}
	if !hasPrimary && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out, nil
}

// PrimaryCount returns how many methods are flagged primary
func PrimaryCount(methods []models.PaymentMethod) int {
	n := 0
	for _, m := range methods {
		if m.IsPrimary {
			n++
		}
	}
	return n
}

func containsMethod(methods []models.PaymentMethod, id string) bool {
	for _, m := range methods {
		if m.ID == id {
			return true
		}
	}
	return false
}
