package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"github.com/ArowuTest/gaspay-backend/internal/repositories/memory"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/pkg/smsgateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testMSISDN = "0241234567"

type fakeTokens struct {
	err error
}

func (f fakeTokens) Issue(msisdn, sessionID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + msisdn + "-" + sessionID, nil
}

type fakeAdvisor struct {
	tips     []models.FuelSavingTip
	stations []models.GasStation
	err      error
	seen     []models.Transaction
}

func (f *fakeAdvisor) FuelTips(ctx context.Context, transactions []models.Transaction) ([]models.FuelSavingTip, error) {
	f.seen = transactions
	return f.tips, f.err
}

func (f *fakeAdvisor) NearbyStations(ctx context.Context, coord models.Coordinate) ([]models.GasStation, error) {
	return f.stations, f.err
}

var errBoom = errors.New("boom")

type fixture struct {
	store    *memory.KVStore
	repo     repositories.AccountRepository
	sms      *smsgateway.MockGateway
	sessions *SessionManager
	accounts *Accounts
	auth     *AuthService
	wallet   *WalletService
	notes    *NotificationService
	methods  *PaymentMethodService
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	tokens TokenIssuer
	wrap   func(repositories.AccountRepository) repositories.AccountRepository
}

func withTokens(tokens TokenIssuer) fixtureOption {
	return func(c *fixtureConfig) { c.tokens = tokens }
}

func withRepo(wrap func(repositories.AccountRepository) repositories.AccountRepository) fixtureOption {
	return func(c *fixtureConfig) { c.wrap = wrap }
}

func fastConfig() session.Config {
	return session.Config{
		ScanDelay:               10 * time.Millisecond,
		ScanFeedbackDelay:       5 * time.Millisecond,
		BiometricDelay:          10 * time.Millisecond,
		PaymentSuccessAutoClose: time.Minute,
	}
}

func fixedScanner() session.Scanner {
	return func() models.PendingPayment {
		return models.PendingPayment{Station: "Goil Osu", Amount: decimal.RequireFromString("45.50")}
	}
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	cfg := fixtureConfig{tokens: fakeTokens{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	login, err := NewOTPVerifier("1234", bcrypt.MinCost)
	require.NoError(t, err)
	action, err := NewOTPVerifier("4321", bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{store: memory.NewKVStore(), sms: smsgateway.NewMockGateway("test")}
	f.repo = repositories.NewAccountRepository(f.store)
	if cfg.wrap != nil {
		f.repo = cfg.wrap(f.repo)
	}
	f.sessions = NewSessionManager(fastConfig(), login, session.WithScanner(fixedScanner()))
	f.accounts = NewAccounts(f.repo, notify.NewSink())
	f.auth = NewAuthService(f.sessions, f.accounts, cfg.tokens, f.sms, action, "1234")
	f.wallet = NewWalletService(f.sessions, f.accounts)
	f.notes = NewNotificationService(f.accounts)
	f.methods = NewPaymentMethodService(f.accounts)

	t.Cleanup(func() { f.sessions.Sweep(time.Now().Add(time.Hour), 0) })
	return f
}

// signIn runs the phone login and returns the session id
func (f *fixture) signIn(t *testing.T) string {
	t.Helper()
	view, err := f.auth.RequestLogin(context.Background(), "", "024 123 4567")
	require.NoError(t, err)
	resp, err := f.auth.VerifyOtp(context.Background(), view.SessionID, "1234")
	require.NoError(t, err)
	return resp.SessionID
}

// flakyRepo fails the save named by failOn and slows budget reads
type flakyRepo struct {
	repositories.AccountRepository
	failOn      string
	budgetDelay time.Duration
}

func (r *flakyRepo) GetBudget(ctx context.Context, msisdn string) (models.Budget, error) {
	time.Sleep(r.budgetDelay)
	return r.AccountRepository.GetBudget(ctx, msisdn)
}

func (r *flakyRepo) SaveBudget(ctx context.Context, msisdn string, budget models.Budget) error {
	if r.failOn == "budget" {
		return errBoom
	}
	return r.AccountRepository.SaveBudget(ctx, msisdn, budget)
}

func (r *flakyRepo) SaveRewardPoints(ctx context.Context, msisdn string, points models.RewardPoints) error {
	if r.failOn == "reward points" {
		return errBoom
	}
	return r.AccountRepository.SaveRewardPoints(ctx, msisdn, points)
}

func (r *flakyRepo) SaveNotifications(ctx context.Context, msisdn string, list []models.Notification) error {
	if r.failOn == "notifications" {
		return errBoom
	}
	return r.AccountRepository.SaveNotifications(ctx, msisdn, list)
}

func (r *flakyRepo) SaveTransactions(ctx context.Context, msisdn string, transactions []models.Transaction) error {
	if r.failOn == "transactions" {
		return errBoom
	}
	return r.AccountRepository.SaveTransactions(ctx, msisdn, transactions)
}

func newFlakyFixture(t *testing.T) (*fixture, *flakyRepo) {
	t.Helper()
	flaky := &flakyRepo{}
	f := newFixture(t, withRepo(func(repo repositories.AccountRepository) repositories.AccountRepository {
		flaky.AccountRepository = repo
		return flaky
	}))
	return f, flaky
}
