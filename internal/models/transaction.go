package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a confirmed fuel payment
type Transaction struct {
	ID           string          `bson:"id" json:"id"`
	Station      string          `bson:"station" json:"station"`
	Amount       decimal.Decimal `bson:"amount" json:"amount"`
	Date         time.Time       `bson:"date" json:"date"`
	PointsEarned int             `bson:"pointsEarned" json:"pointsEarned"`
	Odometer     *int            `bson:"odometer,omitempty" json:"odometer,omitempty"` // km, attached after the payment
}

// HasOdometer reports whether a usable odometer reading is attached
func (t Transaction) HasOdometer() bool {
	return t.Odometer != nil && *t.Odometer > 0
}

// PendingPayment is a scanned but unconfirmed payment
type PendingPayment struct {
	Station string          `json:"station"`
	Amount  decimal.Decimal `json:"amount"`
}

// Budget is the monthly fuel budget
type Budget struct {
	Total decimal.Decimal `bson:"total" json:"total"`
	Spent decimal.Decimal `bson:"spent" json:"spent"`
}

var lowBudgetRatio = decimal.NewFromFloat(0.15)

// Remaining returns total minus spent
func (b Budget) Remaining() decimal.Decimal {
	return b.Total.Sub(b.Spent)
}

// PercentSpent returns spent as a percentage of total, 0 when no total is set
func (b Budget) PercentSpent() decimal.Decimal {
	if !b.Total.IsPositive() {
		return decimal.Zero
	}
	return b.Spent.Div(b.Total).Mul(decimal.NewFromInt(100))
}

// IsLow reports whether less than 15% of the budget remains
func (b Budget) IsLow() bool {
	if !b.Total.IsPositive() {
		return false
	}
	return b.Remaining().Div(b.Total).LessThan(lowBudgetRatio)
}
