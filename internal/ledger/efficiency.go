package ledger

import (
	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Efficiency is the fuel cost per kilometre between two odometer readings
type Efficiency struct {
	Distance  int             `json:"distance"`
	CostPerKm decimal.Decimal `json:"costPerKm"`
}

// previousReading returns the most recent transaction with an odometer
// reading dated strictly before tx.
func previousReading(tx models.Transaction, transactions []models.Transaction) (models.Transaction, bool) {
	var prev models.Transaction
	found := false
	for _, t := range transactions {
		if !t.HasOdometer() || !t.Date.Before(tx.Date) {
			continue
		}
		if !found || t.Date.After(prev.Date) {
			prev = t
			found = true
		}
	}
	return prev, found
}

// EfficiencyFor computes the cost per km of tx against the nearest earlier
// odometer reading. ok is false when tx has no reading, there is no earlier
// reading, or the odometer did not advance.
func EfficiencyFor(tx models.Transaction, transactions []models.Transaction) (Efficiency, bool) {
	if !tx.HasOdometer() {
		return Efficiency{}, false
	}
	prev, found := previousReading(tx, transactions)
	if !found || *tx.Odometer <= *prev.Odometer {
		return Efficiency{}, false
	}
	distance := *tx.Odometer - *prev.Odometer
	return Efficiency{
		Distance:  distance,
		CostPerKm: tx.Amount.Div(decimal.NewFromInt(int64(distance))),
	}, true
}

// ComputeEfficiency applies EfficiencyFor to the latest transaction that
// carries an odometer reading.
func ComputeEfficiency(transactions []models.Transaction) (Efficiency, bool) {
	var latest models.Transaction
	found := false
	for _, t := range transactions {
		if !t.HasOdometer() {
			continue
		}
		if !found || t.Date.After(latest.Date) {
			latest = t
			found = true
		}
	}
	if !found {
		return Efficiency{}, false
	}
	return EfficiencyFor(latest, transactions)
}
