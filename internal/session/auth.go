package session

import (
	"strings"

	"github.com/ArowuTest/gaspay-backend/internal/utils"
)

// RequestLogin stores the phone number and waits for the OTP
func (s *Session) RequestLogin(phoneNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.authenticated {
		return ErrAlreadyAuthenticated
	}
	phone := utils.NormalizeMSISDN(phoneNumber)
	if phone == "" {
		return ErrEmptyPhoneNumber
	}
	s.cancelBiometric()
	s.phoneNumber = phone
	s.setScreen(OtpScreen{phoneNumber: phone})
	s.logger.WithField("msisdn", phone).Info("login requested")
	return nil
}

// VerifyOtp signs the session in when code matches. A wrong code leaves the
// session untouched and may be retried.
func (s *Session) VerifyOtp(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.authenticated {
		return ErrAlreadyAuthenticated
	}
	if s.screen.Name() != ScreenOtp {
		return ErrNoLoginInProgress
	}
	if !s.verifier.Verify(strings.TrimSpace(code)) {
		s.logger.WithField("msisdn", s.phoneNumber).Info("invalid otp")
		return ErrInvalidCode
	}
	s.signIn()
	return nil
}

// GoBack leaves the OTP or recovery screen for the login screen
func (s *Session) GoBack() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.authenticated {
		s.phoneNumber = ""
		s.setScreen(plainScreen{name: ScreenLogin})
	}
	return s.screen
}

// Logout clears the identity and every transient state
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.cancelAllTimers()
	s.cancelBiometric()
	s.authenticated = false
	s.phoneNumber = ""
	s.pending = nil
	s.lastCompleted = nil
	s.selected = nil
	s.scanStatus = ""
	s.screen = plainScreen{name: ScreenLogin}
	s.logger.Info("logged out")
}

func (s *Session) signIn() {
	s.authenticated = true
	s.setScreen(plainScreen{name: ScreenDashboard})
	s.logger.WithField("msisdn", s.phoneNumber).Info("signed in")
}

// BiometricPrompt is a pending biometric approval
type BiometricPrompt struct {
	done     chan struct{}
	approved bool
	finished bool
}

// Done is closed once the prompt is approved or cancelled
func (p *BiometricPrompt) Done() <-chan struct{} { return p.done }

func (p *BiometricPrompt) finish(approved bool) {
	if p.finished {
		return
	}
	p.finished = true
	p.approved = approved
	close(p.done)
}

// BeginBiometric shows the biometric prompt for phoneNumber. Approval is
// simulated after the configured delay.
func (s *Session) BeginBiometric(phoneNumber string) (*BiometricPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.authenticated {
		return nil, ErrAlreadyAuthenticated
	}
	phone := utils.NormalizeMSISDN(phoneNumber)
	if phone == "" {
		return nil, ErrEmptyPhoneNumber
	}
	s.cancelBiometric()
	s.setScreen(plainScreen{name: ScreenLogin})
	s.phoneNumber = phone

	prompt := &BiometricPrompt{done: make(chan struct{})}
	s.biometric = prompt
	s.schedule(ScreenLogin, s.cfg.BiometricDelay, func() {
		if s.biometric == prompt {
			prompt.finish(true)
		}
	}, func() {
		prompt.finish(false)
		if s.biometric == prompt {
			s.biometric = nil
			if !s.authenticated {
				s.phoneNumber = ""
			}
		}
	})
	return prompt, nil
}

// CompleteBiometric signs in if prompt was approved and not cancelled since
func (s *Session) CompleteBiometric(prompt *BiometricPrompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.biometric != prompt || !prompt.approved {
		return ErrBiometricCancelled
	}
	s.biometric = nil
	s.signIn()
	return nil
}

// CancelBiometric dismisses the prompt without side effects
func (s *Session) CancelBiometric() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelBiometric()
}

func (s *Session) cancelBiometric() {
	if s.biometric == nil {
		return
	}
	prompt := s.biometric
	s.biometric = nil
	s.cancelTimers(ScreenLogin)
	prompt.finish(false)
	if !s.authenticated {
		s.phoneNumber = ""
	}
}
