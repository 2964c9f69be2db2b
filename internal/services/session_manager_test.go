package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerSweepsIdleSessions(t *testing.T) {
	f := newFixture(t)
	s := f.sessions.Create()
	require.Equal(t, 1, f.sessions.Count())

	assert.Zero(t, f.sessions.Sweep(time.Now(), time.Hour))
	assert.Equal(t, 1, f.sessions.Sweep(time.Now().Add(2*time.Hour), time.Hour))

	_, err := f.sessions.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOTPVerifier(t *testing.T) {
	v, err := NewOTPVerifier("1234", 4)
	require.NoError(t, err)
	assert.True(t, v.Verify("1234"))
	assert.False(t, v.Verify("1235"))
	assert.False(t, v.Verify(""))
}
