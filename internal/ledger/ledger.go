// Package ledger holds the pure bookkeeping rules of the wallet: budget,
// reward points, transactions and payment methods. Functions never mutate
// their inputs; they return fresh values for the caller to persist.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrMissingStation      = errors.New("payment station is required")
	ErrInvalidBudget       = errors.New("budget total must be a positive number")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidOdometer     = errors.New("odometer reading must be positive")
)

var pointsDivisor = decimal.NewFromInt(10)

// PaymentResult is the outcome of confirming a pending payment
type PaymentResult struct {
	Transaction models.Transaction
	Budget      models.Budget
	Points      models.RewardPoints
	// Events are in emission order: success, then reward.
	Events []models.NotificationEvent
}

// PointsFor returns the loyalty points earned for amount: one per GH₵10
func PointsFor(amount decimal.Decimal) int {
	if !amount.IsPositive() {
		return 0
	}
	return int(amount.Div(pointsDivisor).Floor().IntPart())
}

// ConfirmPayment turns a pending payment into a transaction and the updated
// budget and reward points.
func ConfirmPayment(pending models.PendingPayment, budget models.Budget, points models.RewardPoints, id string, at time.Time) (*PaymentResult, error) {
	if !pending.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(pending.Station) == "" {
		return nil, ErrMissingStation
	}

	earned := PointsFor(pending.Amount)
	tx := models.Transaction{
		ID:           id,
		Station:      pending.Station,
		Amount:       pending.Amount,
		Date:         at,
		PointsEarned: earned,
	}

	history := make([]models.RewardEntry, 0, len(points.History)+1)
	history = append(history, models.RewardEntry{TransactionID: id, Points: earned, Date: at})
	history = append(history, points.History...)

	return &PaymentResult{
		Transaction: tx,
		Budget: models.Budget{
			Total: budget.Total,
			Spent: budget.Spent.Add(pending.Amount),
		},
		Points: models.RewardPoints{
			Balance: points.Balance + earned,
			History: history,
		},
		Events: []models.NotificationEvent{
			{
				Message: fmt.Sprintf("Payment of %s to %s was successful.", utils.FormatCedi(tx.Amount), tx.Station),
				Type:    models.NotificationSuccess,
			},
			{
				Message: fmt.Sprintf("You earned %d points!", earned),
				Type:    models.NotificationReward,
			},
		},
	}, nil
}

// PrependTransaction returns transactions with tx in front
func PrependTransaction(transactions []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(transactions)+1)
	out = append(out, tx)
	return append(out, transactions...)
}

// ParseBudgetTotal validates a budget total typed by the user
func ParseBudgetTotal(raw string) (decimal.Decimal, error) {
	total, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidBudget
	}
	if !total.IsPositive() {
		return decimal.Zero, ErrInvalidBudget
	}
	return total, nil
}

// UpdateBudgetTotal replaces the budget total, leaving spent untouched
func UpdateBudgetTotal(budget models.Budget, total decimal.Decimal) (models.Budget, models.NotificationEvent, error) {
	if !total.IsPositive() {
		return budget, models.NotificationEvent{}, ErrInvalidBudget
	}
	updated := models.Budget{Total: total, Spent: budget.Spent}
	event := models.NotificationEvent{
		Message: fmt.Sprintf("Your monthly budget has been updated to %s.", utils.FormatCedi(total)),
		Type:    models.NotificationInfo,
	}
	return updated, event, nil
}

// UpdateOdometer attaches an odometer reading to the transaction with id
func UpdateOdometer(transactions []models.Transaction, id string, odometer int) ([]models.Transaction, error) {
	if odometer <= 0 {
		return nil, ErrInvalidOdometer
	}
	out := make([]models.Transaction, len(transactions))
	found := false
	for i, tx := range transactions {
		if tx.ID == id {
			reading := odometer
			tx.Odometer = &reading
			found = true
		}
		out[i] = tx
	}
	if !found {
		return nil, ErrTransactionNotFound
	}
	return out, nil
}

// FindTransaction returns the transaction with id
func FindTransaction(transactions []models.Transaction, id string) (models.Transaction, error) {
	for _, tx := range transactions {
		if tx.ID == id {
			return tx, nil
		}
	}
	return models.Transaction{}, ErrTransactionNotFound
}

// FilterByStation returns the transactions whose station contains query,
// ignoring case. An empty query matches everything.
func FilterByStation(transactions []models.Transaction, query string) []models.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.Station), q) {
			out = append(out, tx)
		}
	}
	return out
}
