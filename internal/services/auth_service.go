package services

import (
	"context"
	"fmt"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
	"github.com/ArowuTest/gaspay-backend/pkg/smsgateway"
	log "github.com/sirupsen/logrus"
)

const signedInMessage = "Successfully signed in."

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(msisdn, sessionID string) (string, error)
}

// AuthService handles sign in, sign out and account removal
type AuthService struct {
	sessions       *SessionManager
	accounts       *Accounts
	tokens         TokenIssuer
	sms            smsgateway.Gateway
	actionVerifier session.CodeVerifier
	otpCode        string
}

// NewAuthService creates a new AuthService. otpCode is the code delivered by
// SMS; actionVerifier guards destructive account actions.
func NewAuthService(
	sessions *SessionManager,
	accounts *Accounts,
	tokens TokenIssuer,
	sms smsgateway.Gateway,
	actionVerifier session.CodeVerifier,
	otpCode string,
) *AuthService {
	return &AuthService{
		sessions:       sessions,
		accounts:       accounts,
		tokens:         tokens,
		sms:            sms,
		actionVerifier: actionVerifier,
		otpCode:        otpCode,
	}
}

// RequestLogin starts (or restarts) a phone login. An empty sessionID opens a
// new session. The code is sent over SMS; delivery failures are logged only.
func (s *AuthService) RequestLogin(ctx context.Context, sessionID, phoneNumber string) (session.View, error) {
	var sess *session.Session
	if sessionID == "" {
		sess = s.sessions.Create()
	} else {
		found, err := s.sessions.Get(sessionID)
		if err != nil {
			return session.View{}, err
		}
		sess = found
	}

	if err := sess.RequestLogin(phoneNumber); err != nil {
		if sessionID == "" {
			s.sessions.Remove(sess.ID())
		}
		return session.View{}, err
	}

	msisdn := sess.PhoneNumber()
	message := fmt.Sprintf("Your GasPay verification code is %s", s.otpCode)
	if _, err := s.sms.SendSMS(ctx, msisdn, message); err != nil {
		log.WithField("msisdn", msisdn).WithError(err).Warn("failed to deliver login code")
	}
	return sess.View(), nil
}

// VerifyOtp completes a phone login and returns a session token
func (s *AuthService) VerifyOtp(ctx context.Context, sessionID, code string) (*models.AuthResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.VerifyOtp(code); err != nil {
		return nil, err
	}
	return s.completeSignIn(ctx, sess)
}

// GoBack returns a pre-authentication session to the login screen
func (s *AuthService) GoBack(sessionID string) (session.View, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return session.View{}, err
	}
	sess.GoBack()
	return sess.View(), nil
}

// Recovery opens the account recovery screen, creating a session if needed
func (s *AuthService) Recovery(sessionID string) (session.View, error) {
	var sess *session.Session
	if sessionID == "" {
		sess = s.sessions.Create()
	} else {
		found, err := s.sessions.Get(sessionID)
		if err != nil {
			return session.View{}, err
		}
		sess = found
	}
	sess.Navigate(session.ScreenRecovery)
	return sess.View(), nil
}

// BiometricLogin signs in with the biometric shortcut. It blocks until the
// prompt is approved or ctx is done, in which case the prompt is cancelled.
func (s *AuthService) BiometricLogin(ctx context.Context, phoneNumber string) (*models.AuthResponse, error) {
	msisdn := utils.NormalizeMSISDN(phoneNumber)
	if msisdn == "" {
		return nil, session.ErrEmptyPhoneNumber
	}
	enabled, err := s.accounts.repo.IsBiometricEnabled(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, ErrBiometricDisabled
	}

	sess := s.sessions.Create()
	prompt, err := sess.BeginBiometric(msisdn)
	if err != nil {
		s.sessions.Remove(sess.ID())
		return nil, err
	}

	select {
	case <-prompt.Done():
	case <-ctx.Done():
		sess.CancelBiometric()
		s.sessions.Remove(sess.ID())
		return nil, ctx.Err()
	}

	if err := sess.CompleteBiometric(prompt); err != nil {
		s.sessions.Remove(sess.ID())
		return nil, err
	}
	return s.completeSignIn(ctx, sess)
}

// completeSignIn persists the signed-in state of an authenticated session.
// On failure the session is signed out again.
func (s *AuthService) completeSignIn(ctx context.Context, sess *session.Session) (*models.AuthResponse, error) {
	msisdn := sess.PhoneNumber()
	rollback := func(err error) (*models.AuthResponse, error) {
		sess.Logout()
		return nil, err
	}

	if err := s.persistSignIn(ctx, msisdn); err != nil {
		return rollback(err)
	}

	token, err := s.tokens.Issue(msisdn, sess.ID())
	if err != nil {
		return rollback(err)
	}

	return &models.AuthResponse{
		Token:     token,
		SessionID: sess.ID(),
		Screen:    string(sess.Current().Name()),
	}, nil
}

func (s *AuthService) persistSignIn(ctx context.Context, msisdn string) error {
	unlock := s.accounts.lock(msisdn)
	defer unlock()

	repo := s.accounts.repo
	seeded, err := repo.HasData(ctx, msisdn)
	if err != nil {
		return err
	}
	if !seeded {
		if err := seedAccount(ctx, repo, msisdn, s.accounts.now()); err != nil {
			return err
		}
		log.WithField("msisdn", msisdn).Info("seeded new account")
	}
	if err := repo.SetAuthenticated(ctx, msisdn, true); err != nil {
		return err
	}
	return s.accounts.notifyLocked(ctx, msisdn, models.NotificationEvent{
		Message: signedInMessage,
		Type:    models.NotificationInfo,
	})
}

// Logout signs the session out and forgets it
func (s *AuthService) Logout(ctx context.Context, sessionID, msisdn string) error {
	if sess, err := s.sessions.Get(sessionID); err == nil {
		sess.Logout()
		s.sessions.Remove(sessionID)
	}
	unlock := s.accounts.lock(msisdn)
	defer unlock()
	return s.accounts.repo.SetAuthenticated(ctx, msisdn, false)
}

// SetBiometricEnabled toggles the biometric shortcut for the account
func (s *AuthService) SetBiometricEnabled(ctx context.Context, msisdn string, enabled bool) error {
	unlock := s.accounts.lock(msisdn)
	defer unlock()
	return s.accounts.repo.SetBiometricEnabled(ctx, msisdn, enabled)
}

// DeleteAccount removes every stored key of the account once code confirms
// the action, then signs the session out.
func (s *AuthService) DeleteAccount(ctx context.Context, sessionID, msisdn, code string) error {
	if !s.actionVerifier.Verify(code) {
		log.WithField("msisdn", msisdn).Info("invalid action code for account deletion")
		return ErrInvalidActionCode
	}

	unlock := s.accounts.lock(msisdn)
	err := s.accounts.repo.ClearAllData(ctx, msisdn)
	unlock()
	if err != nil {
		return err
	}

	if sess, err := s.sessions.Get(sessionID); err == nil {
		sess.Logout()
		s.sessions.Remove(sessionID)
	}
	log.WithField("msisdn", msisdn).Info("account data cleared")
	return nil
}

// sessionFor returns the session bound to a token, checking it still belongs to msisdn
func sessionFor(sessions *SessionManager, sessionID, msisdn string) (*session.Session, error) {
	sess, err := sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}
	if sess.PhoneNumber() != msisdn {
		return nil, ErrSessionMismatch
	}
	return sess, nil
}
