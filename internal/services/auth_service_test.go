package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoginSendsCode(t *testing.T) {
	f := newFixture(t)

	view, err := f.auth.RequestLogin(context.Background(), "", "024 123 4567")
	require.NoError(t, err)

	assert.Equal(t, session.ScreenOtp, view.Screen)
	assert.Equal(t, testMSISDN, view.PhoneNumber)
	sent := f.sms.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, testMSISDN, sent[0].MSISDN)
	assert.Contains(t, sent[0].Message, "1234")
}

func TestRequestLoginRejectsEmptyPhone(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.RequestLogin(context.Background(), "", "  ")
	assert.ErrorIs(t, err, session.ErrEmptyPhoneNumber)
	assert.Zero(t, f.sessions.Count())
	assert.Empty(t, f.sms.Sent())
}

func TestVerifyOtpSeedsAccountAndIssuesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	view, err := f.auth.RequestLogin(ctx, "", "024 123 4567")
	require.NoError(t, err)

	_, err = f.auth.VerifyOtp(ctx, view.SessionID, "0000")
	assert.ErrorIs(t, err, session.ErrInvalidCode)
	has, err := f.repo.HasData(ctx, testMSISDN)
	require.NoError(t, err)
	assert.False(t, has)

	resp, err := f.auth.VerifyOtp(ctx, view.SessionID, "1234")
	require.NoError(t, err)
	assert.Equal(t, "token-"+testMSISDN+"-"+view.SessionID, resp.Token)
	assert.Equal(t, string(session.ScreenDashboard), resp.Screen)

	txs, err := f.repo.GetTransactions(ctx, testMSISDN)
	require.NoError(t, err)
	assert.Len(t, txs, 4)

	points, err := f.repo.GetRewardPoints(ctx, testMSISDN)
	require.NoError(t, err)
	assert.True(t, points.Consistent())

	budget, err := f.repo.GetBudget(ctx, testMSISDN)
	require.NoError(t, err)
	assert.True(t, budget.Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, budget.Spent.Equal(decimal.RequireFromString("230.50")))

	notes, err := f.repo.GetNotifications(ctx, testMSISDN)
	require.NoError(t, err)
	require.Len(t, notes, 4)
	assert.Equal(t, "Successfully signed in.", notes[0].Message)
	assert.Equal(t, models.NotificationInfo, notes[0].Type)
	assert.False(t, notes[0].Read)

	authed, err := f.repo.IsAuthenticated(ctx, testMSISDN)
	require.NoError(t, err)
	assert.True(t, authed)
}

func TestSecondLoginKeepsExistingData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signIn(t)
	require.NoError(t, f.repo.SaveBudget(ctx, testMSISDN, models.Budget{Total: decimal.NewFromInt(900)}))

	f.signIn(t)

	budget, err := f.repo.GetBudget(ctx, testMSISDN)
	require.NoError(t, err)
	assert.True(t, budget.Total.Equal(decimal.NewFromInt(900)))
	notes, err := f.repo.GetNotifications(ctx, testMSISDN)
	require.NoError(t, err)
	assert.Len(t, notes, 5)
}

func TestVerifyOtpRollsBackWhenTokenFails(t *testing.T) {
	f := newFixture(t, withTokens(fakeTokens{err: errBoom}))
	view, err := f.auth.RequestLogin(context.Background(), "", "024 123 4567")
	require.NoError(t, err)

	_, err = f.auth.VerifyOtp(context.Background(), view.SessionID, "1234")
	assert.ErrorIs(t, err, errBoom)

	sess, err := f.sessions.Get(view.SessionID)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestGoBackAndRecovery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	view, err := f.auth.RequestLogin(ctx, "", "024 123 4567")
	require.NoError(t, err)

	back, err := f.auth.GoBack(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.ScreenLogin, back.Screen)
	assert.Empty(t, back.PhoneNumber)

	rec, err := f.auth.Recovery(view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.ScreenRecovery, rec.Screen)

	_, err = f.auth.GoBack("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBiometricLoginRequiresOptIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.BiometricLogin(ctx, "024 123 4567")
	assert.ErrorIs(t, err, ErrBiometricDisabled)

	require.NoError(t, f.auth.SetBiometricEnabled(ctx, testMSISDN, true))
	resp, err := f.auth.BiometricLogin(ctx, "024 123 4567")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, string(session.ScreenDashboard), resp.Screen)

	sess, err := f.sessions.Get(resp.SessionID)
	require.NoError(t, err)
	assert.True(t, sess.Authenticated())
}

func TestBiometricLoginCancelledByContext(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.auth.SetBiometricEnabled(context.Background(), testMSISDN, true))
	f.sessions.cfg.BiometricDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.auth.BiometricLogin(ctx, testMSISDN)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, f.sessions.Count())

	authed, err := f.repo.IsAuthenticated(context.Background(), testMSISDN)
	require.NoError(t, err)
	assert.False(t, authed)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.signIn(t)

	require.NoError(t, f.auth.Logout(ctx, id, testMSISDN))

	_, err := f.sessions.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	authed, err := f.repo.IsAuthenticated(ctx, testMSISDN)
	require.NoError(t, err)
	assert.False(t, authed)

	_, err = f.wallet.Session(id, testMSISDN)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteAccountNeedsActionCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.signIn(t)

	assert.ErrorIs(t, f.auth.DeleteAccount(ctx, id, testMSISDN, "1234"), ErrInvalidActionCode)
	has, err := f.repo.HasData(ctx, testMSISDN)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, f.auth.DeleteAccount(ctx, id, testMSISDN, "4321"))
	assert.Empty(t, f.store.Keys(testMSISDN))
	_, err = f.sessions.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
