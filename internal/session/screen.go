package session

import (
	"strings"

	"github.com/ArowuTest/gaspay-backend/internal/models"
)

// ScreenName identifies a screen of the app
type ScreenName string

const (
	ScreenLogin             ScreenName = "LOGIN"
	ScreenOtp               ScreenName = "OTP"
	ScreenRecovery          ScreenName = "RECOVERY"
	ScreenDashboard         ScreenName = "DASHBOARD"
	ScreenHistory           ScreenName = "HISTORY"
	ScreenBudget            ScreenName = "BUDGET"
	ScreenStations          ScreenName = "STATIONS"
	ScreenProfile           ScreenName = "PROFILE"
	ScreenNotifications     ScreenName = "NOTIFICATIONS"
	ScreenRewards           ScreenName = "REWARDS"
	ScreenPaymentMethods    ScreenName = "PAYMENT_METHODS"
	ScreenScan              ScreenName = "SCAN"
	ScreenPayment           ScreenName = "PAYMENT"
	ScreenPaymentSuccess    ScreenName = "PAYMENT_SUCCESS"
	ScreenTransactionDetail ScreenName = "TRANSACTION_DETAIL"
)

var allScreens = []ScreenName{
	ScreenLogin, ScreenOtp, ScreenRecovery, ScreenDashboard, ScreenHistory,
	ScreenBudget, ScreenStations, ScreenProfile, ScreenNotifications,
	ScreenRewards, ScreenPaymentMethods, ScreenScan, ScreenPayment,
	ScreenPaymentSuccess, ScreenTransactionDetail,
}

// ParseScreenName matches a screen name case-insensitively
func ParseScreenName(s string) (ScreenName, bool) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, name := range allScreens {
		if string(name) == want {
			return name, true
		}
	}
	return "", false
}

// publicScreen reports whether an unauthenticated session may show name
func publicScreen(name ScreenName) bool {
	return name == ScreenLogin || name == ScreenOtp || name == ScreenRecovery
}

// hidesNavBar reports whether name is a full-screen payment step
func hidesNavBar(name ScreenName) bool {
	return name == ScreenScan || name == ScreenPayment || name == ScreenPaymentSuccess
}

// Screen is the current router state. Screens that need data carry it, and
// can only be built from that data inside this package.
type Screen interface {
	Name() ScreenName
}

type plainScreen struct {
	name ScreenName
}

func (s plainScreen) Name() ScreenName { return s.name }

// OtpScreen waits for the code sent to a phone number
type OtpScreen struct {
	phoneNumber string
}

func (s OtpScreen) Name() ScreenName    { return ScreenOtp }
func (s OtpScreen) PhoneNumber() string { return s.phoneNumber }

// PaymentScreen asks the user to confirm a scanned payment
type PaymentScreen struct {
	pending models.PendingPayment
}

func (s PaymentScreen) Name() ScreenName               { return ScreenPayment }
func (s PaymentScreen) Pending() models.PendingPayment { return s.pending }

// PaymentSuccessScreen shows the payment that just completed
type PaymentSuccessScreen struct {
	transaction models.Transaction
}

func (s PaymentSuccessScreen) Name() ScreenName                { return ScreenPaymentSuccess }
func (s PaymentSuccessScreen) Transaction() models.Transaction { return s.transaction }

// TransactionDetailScreen shows one transaction from the history
type TransactionDetailScreen struct {
	transaction models.Transaction
}

func (s TransactionDetailScreen) Name() ScreenName                { return ScreenTransactionDetail }
func (s TransactionDetailScreen) Transaction() models.Transaction { return s.transaction }

// View is the client-facing description of a session
type View struct {
	SessionID     string                 `json:"sessionId"`
	Screen        ScreenName             `json:"screen"`
	Authenticated bool                   `json:"authenticated"`
	NavBarVisible bool                   `json:"navBarVisible"`
	PhoneNumber   string                 `json:"phoneNumber,omitempty"`
	Status        string                 `json:"status,omitempty"`
	Pending       *models.PendingPayment `json:"pending,omitempty"`
	Transaction   *models.Transaction    `json:"transaction,omitempty"`
}
