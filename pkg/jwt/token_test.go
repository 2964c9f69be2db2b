package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("+233241234567", "sess-1")
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "+233241234567", claims.MSISDN)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	token, err := NewTokenService("other", time.Hour).Issue("+233241234567", "sess-1")
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	issued := time.Date(2024, 7, 20, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue("+233241234567", "sess-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
