// Package session implements the per-login state machine: the auth gate
// (phone, OTP, biometric shortcut) and the screen router with its guarded
// transitions. Every action and every timer completion runs under the
// session mutex, one at a time.
package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyPhoneNumber     = errors.New("phone number is required")
	ErrInvalidCode          = errors.New("Invalid code")
	ErrNoLoginInProgress    = errors.New("no login in progress")
	ErrAlreadyAuthenticated = errors.New("session is already authenticated")
	ErrNotAuthenticated     = errors.New("session is not authenticated")
	ErrNoPendingPayment     = errors.New("no pending payment")
	ErrNotScanning          = errors.New("no scan in progress")
	ErrNoCompletedPayment   = errors.New("no completed payment to close")
	ErrBiometricCancelled   = errors.New("biometric prompt was cancelled")
)

// Config holds the simulated delays
type Config struct {
	ScanDelay               time.Duration
	ScanFeedbackDelay       time.Duration
	BiometricDelay          time.Duration
	PaymentSuccessAutoClose time.Duration
}

// DefaultConfig mirrors the delays of the mobile prototype
func DefaultConfig() Config {
	return Config{
		ScanDelay:               2500 * time.Millisecond,
		ScanFeedbackDelay:       700 * time.Millisecond,
		BiometricDelay:          1500 * time.Millisecond,
		PaymentSuccessAutoClose: 4 * time.Second,
	}
}

// CodeVerifier checks a one-time code
type CodeVerifier interface {
	Verify(code string) bool
}

// Scanner produces the payment read from a station QR code
type Scanner func() models.PendingPayment

// RandomScanner simulates a QR scan at one of stations for GH₵25 to GH₵70
func RandomScanner(stations []string) Scanner {
	return func() models.PendingPayment {
		station := "Allied Oil Madina"
		if len(stations) > 0 {
			station = stations[rand.Intn(len(stations))]
		}
		cents := 2500 + rand.Int63n(4501)
		return models.PendingPayment{
			Station: station,
			Amount:  decimal.New(cents, -2),
		}
	}
}

// Session is one login's state machine
type Session struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	verifier CodeVerifier
	scanner  Scanner
	logger   *log.Entry

	authenticated bool
	phoneNumber   string
	screen        Screen
	scanStatus    string
	pending       *models.PendingPayment
	lastCompleted *models.Transaction
	selected      *models.Transaction
	biometric     *BiometricPrompt
	timers        []*timer
	lastActivity  time.Time
}

// Option configures a Session
type Option func(*Session)

// WithScanner replaces the simulated QR scanner
func WithScanner(scanner Scanner) Option {
	return func(s *Session) { s.scanner = scanner }
}

// WithLogger sets the base logger
func WithLogger(logger *log.Entry) Option {
	return func(s *Session) { s.logger = logger }
}

// New creates an unauthenticated session on the login screen
func New(id string, cfg Config, verifier CodeVerifier, opts ...Option) *Session {
	s := &Session{
		id:           id,
		cfg:          cfg,
		verifier:     verifier,
		scanner:      RandomScanner(nil),
		logger:       log.NewEntry(log.StandardLogger()),
		screen:       plainScreen{name: ScreenLogin},
		lastActivity: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("sessionId", id)
	return s
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Authenticated reports whether the session is signed in
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// PhoneNumber returns the signed-in or pending login phone number
func (s *Session) PhoneNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phoneNumber
}

// LastActivity returns when the session last handled an action
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Close cancels every outstanding timer
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAllTimers()
	if s.biometric != nil {
		s.biometric.finish(false)
		s.biometric = nil
	}
}

func (s *Session) touch() {
	s.lastActivity = time.Now()
}

// setScreen moves to next, cancelling timers owned by the screen being left
// and dropping a pending payment that was not confirmed.
func (s *Session) setScreen(next Screen) {
	current := s.screen.Name()
	if current != next.Name() {
		s.cancelTimers(current)
		if current == ScreenPayment {
			s.pending = nil
		}
		if current == ScreenScan {
			s.scanStatus = ""
		}
	}
	s.screen = next
}

func (s *Session) requireAuth() error {
	if !s.authenticated {
		return ErrNotAuthenticated
	}
	return nil
}
