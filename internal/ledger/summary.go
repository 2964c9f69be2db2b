package ledger

import (
	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/shopspring/decimal"
)

var rewardTiers = []models.RewardTier{
	{PointsNeeded: 100, Reward: "GH₵10 Fuel Discount"},
	{PointsNeeded: 250, Reward: "GH₵30 Fuel Discount"},
	{PointsNeeded: 500, Reward: "Free Car Wash Coupon"},
}

// RewardTiers lists the redemption options and whether balance unlocks them
func RewardTiers(balance int) []models.RewardTier {
	out := make([]models.RewardTier, len(rewardTiers))
	for i, tier := range rewardTiers {
		tier.Unlocked = balance >= tier.PointsNeeded
		out[i] = tier
	}
	return out
}

// Summary is the dashboard view of an account
type Summary struct {
	Budget              models.Budget        `json:"budget"`
	Remaining           decimal.Decimal      `json:"remaining"`
	PercentSpent        decimal.Decimal      `json:"percentSpent"`
	LowBudget           bool                 `json:"lowBudget"`
	Points              int                  `json:"points"`
	UnreadNotifications int                  `json:"unreadNotifications"`
	Efficiency          *Efficiency          `json:"efficiency,omitempty"`
	RecentTransactions  []models.Transaction `json:"recentTransactions"`
}

const recentTransactionCount = 3

// Summarize builds the dashboard summary
func Summarize(budget models.Budget, transactions []models.Transaction, points models.RewardPoints, unread int) Summary {
	s := Summary{
		Budget:              budget,
		Remaining:           budget.Remaining(),
		PercentSpent:        budget.PercentSpent().Round(2),
		LowBudget:           budget.IsLow(),
		Points:              points.Balance,
		UnreadNotifications: unread,
	}
	if eff, ok := ComputeEfficiency(transactions); ok {
		s.Efficiency = &eff
	}
	n := len(transactions)
	if n > recentTransactionCount {
		n = recentTransactionCount
	}
	s.RecentTransactions = append([]models.Transaction{}, transactions[:n]...)
	return s
}
