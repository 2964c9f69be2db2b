package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signIn(t)

	list, err := f.notes.List(ctx, testMSISDN)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Unread)

	list, err = f.notes.MarkAllRead(ctx, testMSISDN)
	require.NoError(t, err)
	assert.Zero(t, list.Unread)
	assert.Len(t, list.Notifications, 4)

	stored, err := f.notes.List(ctx, testMSISDN)
	require.NoError(t, err)
	assert.Zero(t, stored.Unread)
	for _, n := range stored.Notifications {
		assert.True(t, n.Read)
	}
}
