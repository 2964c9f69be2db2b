package session

import (
	"github.com/ArowuTest/gaspay-backend/internal/models"
	log "github.com/sirupsen/logrus"
)

const (
	scanStatusScanning = "Scanning..."
	scanStatusSuccess  = "Scan successful!"
)

// Current returns the screen being shown
func (s *Session) Current() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// NavBarVisible reports whether the bottom navigation bar is shown
func (s *Session) NavBarVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navBarVisible()
}

func (s *Session) navBarVisible() bool {
	return s.authenticated && !hidesNavBar(s.screen.Name())
}

// View describes the session for clients
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:     s.id,
		Screen:        s.screen.Name(),
		Authenticated: s.authenticated,
		NavBarVisible: s.navBarVisible(),
		PhoneNumber:   s.phoneNumber,
	}
	switch screen := s.screen.(type) {
	case PaymentScreen:
		p := screen.Pending()
		v.Pending = &p
	case PaymentSuccessScreen:
		tx := screen.Transaction()
		v.Transaction = &tx
	case TransactionDetailScreen:
		tx := screen.Transaction()
		v.Transaction = &tx
	case plainScreen:
		if screen.name == ScreenScan {
			v.Status = s.scanStatus
		}
	}
	return v
}

// Navigate moves to the named screen. Targets the session is not allowed to
// show, or that lack the data they need, redirect to a safe screen instead:
// Login while signed out, Dashboard while signed in.
func (s *Session) Navigate(name ScreenName) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.authenticated && name == ScreenScan {
		s.startScan()
		return s.screen
	}
	// leaving the login screen drops a pending biometric prompt, and with it
	// the phone number it was started for
	if name != s.screen.Name() {
		s.cancelBiometric()
	}
	s.setScreen(s.resolve(name))
	return s.screen
}

func (s *Session) redirect(from ScreenName, to ScreenName, reason string) Screen {
	s.logger.WithFields(log.Fields{
		"requested":  from,
		"redirectTo": to,
		"reason":     reason,
	}).Warn("invalid navigation redirected")
	return plainScreen{name: to}
}

func (s *Session) resolve(name ScreenName) Screen {
	if !s.authenticated {
		switch name {
		case ScreenLogin, ScreenRecovery:
			return plainScreen{name: name}
		case ScreenOtp:
			if s.phoneNumber != "" {
				return OtpScreen{phoneNumber: s.phoneNumber}
			}
			return s.redirect(name, ScreenLogin, "no phone number entered")
		default:
			return s.redirect(name, ScreenLogin, "not authenticated")
		}
	}

	switch name {
	case ScreenLogin, ScreenOtp, ScreenRecovery:
		return s.redirect(name, ScreenDashboard, "already authenticated")
	case ScreenPayment:
		if s.screen.Name() == ScreenPayment {
			return s.screen
		}
		if s.pending == nil {
			return s.redirect(name, ScreenDashboard, "no pending payment")
		}
		return PaymentScreen{pending: *s.pending}
	case ScreenPaymentSuccess:
		if s.screen.Name() == ScreenPaymentSuccess {
			return s.screen
		}
		if s.lastCompleted == nil {
			return s.redirect(name, ScreenDashboard, "no completed transaction")
		}
		return PaymentSuccessScreen{transaction: *s.lastCompleted}
	case ScreenTransactionDetail:
		if s.selected == nil {
			return s.redirect(name, ScreenDashboard, "no transaction selected")
		}
		return TransactionDetailScreen{transaction: *s.selected}
	case "":
		return s.redirect(name, ScreenDashboard, "unknown screen")
	default:
		return plainScreen{name: name}
	}
}

// StartScan opens the scanner. After the scan and feedback delays the scanned
// payment becomes pending and the Payment screen opens, unless the scan was
// cancelled first.
func (s *Session) StartScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.requireAuth(); err != nil {
		return err
	}
	s.startScan()
	return nil
}

func (s *Session) startScan() {
	// restart from scratch when already scanning
	s.cancelTimers(ScreenScan)
	s.setScreen(plainScreen{name: ScreenScan})
	s.scanStatus = scanStatusScanning
	s.schedule(ScreenScan, s.cfg.ScanDelay, func() {
		scanned := s.scanner()
		s.scanStatus = scanStatusSuccess
		s.schedule(ScreenScan, s.cfg.ScanFeedbackDelay, func() {
			s.pending = &scanned
			s.setScreen(PaymentScreen{pending: scanned})
			s.logger.WithFields(log.Fields{
				"station": scanned.Station,
				"amount":  scanned.Amount.StringFixed(2),
			}).Info("scan completed")
		}, nil)
	}, nil)
}

// CancelScan closes the scanner and suppresses its pending completion
func (s *Session) CancelScan() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen.Name() != ScreenScan {
		return ErrNotScanning
	}
	s.setScreen(plainScreen{name: ScreenDashboard})
	return nil
}

// CancelPayment drops the pending payment and returns to the dashboard
func (s *Session) CancelPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen.Name() != ScreenPayment {
		return ErrNoPendingPayment
	}
	s.pending = nil
	s.setScreen(plainScreen{name: ScreenDashboard})
	return nil
}

// ConfirmPayment hands the pending payment to commit, which persists it and
// returns the resulting transaction. On success the session shows
// PaymentSuccess and schedules the auto-close; on failure nothing changes.
func (s *Session) ConfirmPayment(commit func(models.PendingPayment) (models.Transaction, error)) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.requireAuth(); err != nil {
		return models.Transaction{}, err
	}
	screen, ok := s.screen.(PaymentScreen)
	if !ok || s.pending == nil {
		return models.Transaction{}, ErrNoPendingPayment
	}

	tx, err := commit(screen.Pending())
	if err != nil {
		return models.Transaction{}, err
	}

	s.pending = nil
	s.lastCompleted = &tx
	s.setScreen(PaymentSuccessScreen{transaction: tx})
	s.schedule(ScreenPaymentSuccess, s.cfg.PaymentSuccessAutoClose, func() {
		s.setScreen(plainScreen{name: ScreenDashboard})
	}, nil)
	return tx, nil
}

// ClosePaymentSuccess leaves the success screen for the dashboard
func (s *Session) ClosePaymentSuccess() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen.Name() != ScreenPaymentSuccess {
		return ErrNoCompletedPayment
	}
	s.setScreen(plainScreen{name: ScreenDashboard})
	return nil
}

// ViewTransaction opens the detail screen for tx
func (s *Session) ViewTransaction(tx models.Transaction) (Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if err := s.requireAuth(); err != nil {
		return nil, err
	}
	s.selected = &tx
	s.setScreen(TransactionDetailScreen{transaction: tx})
	return s.screen, nil
}
