package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// seedAccount stores the demo data every account starts with. The caller
// holds the account lock.
func seedAccount(ctx context.Context, repo repositories.AccountRepository, msisdn string, now time.Time) error {
	now = now.UTC()
	odometer := func(km int) *int { return &km }

	transactions := []models.Transaction{
		{ID: "tx1", Station: "Goil Adenta", Amount: decimal.NewFromInt(50), Date: now.Add(-2 * day), PointsEarned: 5, Odometer: odometer(50000)},
		{ID: "tx2", Station: "Shell East Legon", Amount: decimal.RequireFromString("75.50"), Date: now.Add(-5 * day), PointsEarned: 7, Odometer: odometer(49750)},
		{ID: "tx3", Station: "TotalEnergies Airport", Amount: decimal.NewFromInt(60), Date: now.Add(-10 * day), PointsEarned: 6, Odometer: odometer(49500)},
		{ID: "tx4", Station: "Allied Oil Madina", Amount: decimal.NewFromInt(45), Date: now.Add(-15 * day), PointsEarned: 4},
	}

	spent := decimal.Zero
	points := models.RewardPoints{History: make([]models.RewardEntry, 0, len(transactions))}
	for _, tx := range transactions {
		spent = spent.Add(tx.Amount)
		points.Balance += tx.PointsEarned
		points.History = append(points.History, models.RewardEntry{
			TransactionID: tx.ID,
			Points:        tx.PointsEarned,
			Date:          tx.Date,
		})
	}

	notifications := []models.Notification{
		{ID: "n1", Message: "You earned 5 loyalty points from your purchase at Goil Adenta.", Date: now.Add(-2 * day), Type: models.NotificationReward},
		{ID: "n2", Message: "Your monthly budget has been set to GH₵500.00.", Date: now.Add(-30 * day), Read: true, Type: models.NotificationInfo},
		{ID: "n3", Message: "Welcome to GasPay! Your account is ready.", Date: now.Add(-31 * day), Read: true, Type: models.NotificationSuccess},
	}

	methods := []models.PaymentMethod{
		{ID: "pm1", Provider: models.ProviderMTN, PhoneNumber: msisdn, IsPrimary: true},
		{ID: "pm2", Provider: models.ProviderVodafone, PhoneNumber: "050 987 6543"},
	}

	steps := []struct {
		name string
		save func() error
	}{
		{"budget", func() error {
			return repo.SaveBudget(ctx, msisdn, models.Budget{Total: decimal.NewFromInt(500), Spent: spent})
		}},
		{"user", func() error { return repo.SaveUser(ctx, msisdn, &models.User{PhoneNumber: msisdn}) }},
		{"notifications", func() error { return repo.SaveNotifications(ctx, msisdn, notifications) }},
		{"reward points", func() error { return repo.SaveRewardPoints(ctx, msisdn, points) }},
		{"payment methods", func() error { return repo.SavePaymentMethods(ctx, msisdn, methods) }},
		// transactions last: their presence marks the account as seeded
		{"transactions", func() error { return repo.SaveTransactions(ctx, msisdn, transactions) }},
	}
	for _, step := range steps {
		if err := step.save(); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}
	return nil
}
