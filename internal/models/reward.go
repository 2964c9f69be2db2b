package models

import "time"

// RewardEntry records points awarded for one transaction
type RewardEntry struct {
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	Points        int       `bson:"points" json:"points"`
	Date          time.Time `bson:"date" json:"date"`
}

// RewardPoints holds the loyalty balance and its history, most recent first
type RewardPoints struct {
	Balance int           `bson:"balance" json:"balance"`
	History []RewardEntry `bson:"history" json:"history"`
}

// Consistent reports whether the balance equals the sum of the history
func (r RewardPoints) Consistent() bool {
	sum := 0
	for _, e := range r.History {
		sum += e.Points
	}
	return sum == r.Balance && r.Balance >= 0
}

// RewardTier is a redemption option on the rewards screen
type RewardTier struct {
	PointsNeeded int    `json:"pointsNeeded"`
	Reward       string `json:"reward"`
	Unlocked     bool   `json:"unlocked"`
}
