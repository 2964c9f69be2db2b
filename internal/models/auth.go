package models

// LoginRequest starts a phone number login
type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// VerifyOtpRequest completes a login with the code sent by SMS
type VerifyOtpRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Code      string `json:"code" binding:"required,len=4,numeric"`
}

// SessionRequest addresses a pre-authentication session
type SessionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// BiometricLoginRequest signs in with the device biometric shortcut
type BiometricLoginRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// BiometricSettingRequest toggles the biometric shortcut
type BiometricSettingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ActionOtpRequest confirms a sensitive action with an OTP
type ActionOtpRequest struct {
	Code string `json:"code" binding:"required,len=4,numeric"`
}

// AuthResponse is returned after a successful sign in
type AuthResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	Screen    string `json:"screen"`
}

// NavigateRequest asks the router for a screen
type NavigateRequest struct {
	Screen string `json:"screen" binding:"required"`
}

// BudgetRequest carries the raw budget total as typed by the user
type BudgetRequest struct {
	Total string `json:"total" binding:"required"`
}

// OdometerRequest attaches an odometer reading to a transaction
type OdometerRequest struct {
	Odometer int `json:"odometer" binding:"required,gt=0"`
}

// PaymentMethodRequest links a new mobile money wallet
type PaymentMethodRequest struct {
	Provider    Provider `json:"provider" binding:"required"`
	PhoneNumber string   `json:"phoneNumber" binding:"required"`
}
