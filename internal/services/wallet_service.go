package services

import (
	"context"

	"github.com/ArowuTest/gaspay-backend/internal/ledger"
	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PaymentReceipt is the outcome of a confirmed payment
type PaymentReceipt struct {
	Transaction models.Transaction  `json:"transaction"`
	Budget      models.Budget       `json:"budget"`
	Points      models.RewardPoints `json:"points"`
	Screen      session.ScreenName  `json:"screen"`
}

// TransactionDetail is one transaction with its fuel efficiency, if known
type TransactionDetail struct {
	Transaction models.Transaction `json:"transaction"`
	Efficiency  *ledger.Efficiency `json:"efficiency,omitempty"`
}

// BudgetView is the budget screen
type BudgetView struct {
	Budget       models.Budget   `json:"budget"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentSpent decimal.Decimal `json:"percentSpent"`
	LowBudget    bool            `json:"lowBudget"`
}

// RewardsView is the rewards screen
type RewardsView struct {
	Points models.RewardPoints `json:"points"`
	Tiers  []models.RewardTier `json:"tiers"`
}

// WalletService drives the signed-in screens: scanning, paying, budget,
// history and rewards.
type WalletService struct {
	sessions *SessionManager
	accounts *Accounts
	newID    func() string
}

// NewWalletService creates a new WalletService
func NewWalletService(sessions *SessionManager, accounts *Accounts) *WalletService {
	return &WalletService{
		sessions: sessions,
		accounts: accounts,
		newID:    utils.GenerateID,
	}
}

// Session describes the session's current screen
func (s *WalletService) Session(sessionID, msisdn string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// Navigate asks the router for a screen. Unknown names are treated as
// invalid navigation and redirected.
func (s *WalletService) Navigate(sessionID, msisdn, screen string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	name, _ := session.ParseScreenName(screen)
	sess.Navigate(name)
	return sess.View(), nil
}

// Dashboard builds the dashboard summary
func (s *WalletService) Dashboard(ctx context.Context, msisdn string) (ledger.Summary, error) {
	repo := s.accounts.repo
	budget, err := repo.GetBudget(ctx, msisdn)
	if err != nil {
		return ledger.Summary{}, err
	}
	transactions, err := repo.GetTransactions(ctx, msisdn)
	if err != nil {
		return ledger.Summary{}, err
	}
	points, err := repo.GetRewardPoints(ctx, msisdn)
	if err != nil {
		return ledger.Summary{}, err
	}
	notifications, err := repo.GetNotifications(ctx, msisdn)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(budget, transactions, points, notify.Unread(notifications)), nil
}

// StartScan opens the QR scanner
func (s *WalletService) StartScan(sessionID, msisdn string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	if err := sess.StartScan(); err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// CancelScan closes the scanner
func (s *WalletService) CancelScan(sessionID, msisdn string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	if err := sess.CancelScan(); err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// CancelPayment drops the pending payment
func (s *WalletService) CancelPayment(sessionID, msisdn string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	if err := sess.CancelPayment(); err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// ClosePaymentSuccess returns from the success screen to the dashboard
func (s *WalletService) ClosePaymentSuccess(sessionID, msisdn string) (session.View, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return session.View{}, err
	}
	if err := sess.ClosePaymentSuccess(); err != nil {
		return session.View{}, err
	}
	return sess.View(), nil
}

// ConfirmPayment records the pending payment of the session, updating the
// budget, reward points and notifications of the account together.
func (s *WalletService) ConfirmPayment(ctx context.Context, sessionID, msisdn string) (*PaymentReceipt, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return nil, err
	}

	var receipt PaymentReceipt
	_, err = sess.ConfirmPayment(func(pending models.PendingPayment) (models.Transaction, error) {
		unlock := s.accounts.lock(msisdn)
		defer unlock()

		repo := s.accounts.repo
		budget, err := repo.GetBudget(ctx, msisdn)
		if err != nil {
			return models.Transaction{}, err
		}
		points, err := repo.GetRewardPoints(ctx, msisdn)
		if err != nil {
			return models.Transaction{}, err
		}
		transactions, err := repo.GetTransactions(ctx, msisdn)
		if err != nil {
			return models.Transaction{}, err
		}
		notifications, err := repo.GetNotifications(ctx, msisdn)
		if err != nil {
			return models.Transaction{}, err
		}

		result, err := ledger.ConfirmPayment(pending, budget, points, s.newID(), s.accounts.now().UTC())
		if err != nil {
			return models.Transaction{}, err
		}

		// transactions go last: a failed earlier write is restored and
		// nothing is recorded
		err = applyWrites(ctx, msisdn, []accountWrite{
			{
				name:    "budget",
				apply:   func(ctx context.Context) error { return repo.SaveBudget(ctx, msisdn, result.Budget) },
				restore: func(ctx context.Context) error { return repo.SaveBudget(ctx, msisdn, budget) },
			},
			{
				name:    "reward points",
				apply:   func(ctx context.Context) error { return repo.SaveRewardPoints(ctx, msisdn, result.Points) },
				restore: func(ctx context.Context) error { return repo.SaveRewardPoints(ctx, msisdn, points) },
			},
			{
				name: "notifications",
				apply: func(ctx context.Context) error {
					return repo.SaveNotifications(ctx, msisdn, s.accounts.sink.AppendEvents(notifications, result.Events...))
				},
				restore: func(ctx context.Context) error { return repo.SaveNotifications(ctx, msisdn, notifications) },
			},
			{
				name: "transaction",
				apply: func(ctx context.Context) error {
					return repo.SaveTransactions(ctx, msisdn, ledger.PrependTransaction(transactions, result.Transaction))
				},
			},
		})
		if err != nil {
			return models.Transaction{}, err
		}

		receipt.Transaction = result.Transaction
		receipt.Budget = result.Budget
		receipt.Points = result.Points
		return result.Transaction, nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"msisdn":        msisdn,
		"transactionId": receipt.Transaction.ID,
		"station":       receipt.Transaction.Station,
		"amount":        receipt.Transaction.Amount.StringFixed(2),
	}).Info("payment confirmed")
	receipt.Screen = sess.Current().Name()
	return &receipt, nil
}

// Transactions lists the account's transactions, most recent first,
// optionally filtered by station name.
func (s *WalletService) Transactions(ctx context.Context, msisdn, query string) ([]models.Transaction, error) {
	transactions, err := s.accounts.repo.GetTransactions(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	return ledger.FilterByStation(transactions, query), nil
}

// Transaction opens the detail screen of one transaction
func (s *WalletService) Transaction(ctx context.Context, sessionID, msisdn, id string) (*TransactionDetail, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return nil, err
	}
	transactions, err := s.accounts.repo.GetTransactions(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	tx, err := ledger.FindTransaction(transactions, id)
	if err != nil {
		return nil, err
	}
	if _, err := sess.ViewTransaction(tx); err != nil {
		return nil, err
	}
	return detailOf(tx, transactions), nil
}

// UpdateOdometer attaches an odometer reading to a transaction
func (s *WalletService) UpdateOdometer(ctx context.Context, msisdn, id string, odometer int) (*TransactionDetail, error) {
	unlock := s.accounts.lock(msisdn)
	defer unlock()

	repo := s.accounts.repo
	transactions, err := repo.GetTransactions(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	updated, err := ledger.UpdateOdometer(transactions, id, odometer)
	if err != nil {
		return nil, err
	}
	if err := repo.SaveTransactions(ctx, msisdn, updated); err != nil {
		return nil, err
	}
	tx, err := ledger.FindTransaction(updated, id)
	if err != nil {
		return nil, err
	}
	return detailOf(tx, updated), nil
}

func detailOf(tx models.Transaction, transactions []models.Transaction) *TransactionDetail {
	detail := &TransactionDetail{Transaction: tx}
	if eff, ok := ledger.EfficiencyFor(tx, transactions); ok {
		detail.Efficiency = &eff
	}
	return detail
}

// Budget returns the budget screen
func (s *WalletService) Budget(ctx context.Context, msisdn string) (*BudgetView, error) {
	budget, err := s.accounts.repo.GetBudget(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	return budgetView(budget), nil
}

// UpdateBudget replaces the budget total with raw, as typed by the user, and
// returns the session to the dashboard.
func (s *WalletService) UpdateBudget(ctx context.Context, sessionID, msisdn, raw string) (*BudgetView, error) {
	sess, err := sessionFor(s.sessions, sessionID, msisdn)
	if err != nil {
		return nil, err
	}
	total, err := ledger.ParseBudgetTotal(raw)
	if err != nil {
		return nil, err
	}

	updated, err := s.saveBudgetTotal(ctx, msisdn, total)
	if err != nil {
		return nil, err
	}

	// account lock released: lock order is session, then account
	sess.Navigate(session.ScreenDashboard)
	return budgetView(updated), nil
}

func (s *WalletService) saveBudgetTotal(ctx context.Context, msisdn string, total decimal.Decimal) (models.Budget, error) {
	unlock := s.accounts.lock(msisdn)
	defer unlock()

	repo := s.accounts.repo
	budget, err := repo.GetBudget(ctx, msisdn)
	if err != nil {
		return models.Budget{}, err
	}
	updated, event, err := ledger.UpdateBudgetTotal(budget, total)
	if err != nil {
		return models.Budget{}, err
	}
	if err := repo.SaveBudget(ctx, msisdn, updated); err != nil {
		return models.Budget{}, err
	}
	if err := s.accounts.notifyLocked(ctx, msisdn, event); err != nil {
		return models.Budget{}, err
	}
	return updated, nil
}

func budgetView(budget models.Budget) *BudgetView {
	return &BudgetView{
		Budget:       budget,
		Remaining:    budget.Remaining(),
		PercentSpent: budget.PercentSpent().Round(2),
		LowBudget:    budget.IsLow(),
	}
}

// Rewards returns the points balance, history and redemption tiers
func (s *WalletService) Rewards(ctx context.Context, msisdn string) (*RewardsView, error) {
	points, err := s.accounts.repo.GetRewardPoints(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	return &RewardsView{Points: points, Tiers: ledger.RewardTiers(points.Balance)}, nil
}
