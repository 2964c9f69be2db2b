package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid token")

// SessionClaims identifies the account and login session behind a request
type SessionClaims struct {
	MSISDN    string `json:"msisdn"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates session tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with HS256
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for msisdn bound to sessionID
func (s *TokenService) Issue(msisdn, sessionID string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		MSISDN:    msisdn,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   msisdn,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns its claims
func (s *TokenService) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.MSISDN == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
