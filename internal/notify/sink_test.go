package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSink() *Sink {
	seq := 0
	at := time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC)
	return NewSink(
		WithClock(func() time.Time { return at }),
		WithIDs(func() string { seq++; return fmt.Sprintf("n%d", seq) }),
	)
}

func TestAppendPrependsUnread(t *testing.T) {
	s := testSink()
	list := s.Append(nil, "Welcome to GasPay!", models.NotificationInfo)
	list = s.Append(list, "Successfully signed in.", models.NotificationInfo)

	require.Len(t, list, 2)
	assert.Equal(t, "n2", list[0].ID)
	assert.Equal(t, "Successfully signed in.", list[0].Message)
	assert.False(t, list[0].Read)
	assert.Equal(t, "n1", list[1].ID)
}

func TestAppendEventsOrder(t *testing.T) {
	s := testSink()
	list := s.AppendEvents(nil,
		models.NotificationEvent{Message: "paid", Type: models.NotificationSuccess},
		models.NotificationEvent{Message: "points", Type: models.NotificationReward},
	)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationReward, list[0].Type)
	assert.Equal(t, models.NotificationSuccess, list[1].Type)
}

func TestAppendUnknownTypeFallsBackToInfo(t *testing.T) {
	list := testSink().Append(nil, "x", models.NotificationType("alert"))
	assert.Equal(t, models.NotificationInfo, list[0].Type)
}

func TestMarkAllReadKeepsEntries(t *testing.T) {
	s := testSink()
	list := s.Append(nil, "a", models.NotificationInfo)
	list = s.Append(list, "b", models.NotificationWarning)
	assert.Equal(t, 2, Unread(list))

	read := MarkAllRead(list)
	require.Len(t, read, 2)
	assert.Equal(t, 0, Unread(read))
	assert.Equal(t, list[0].ID, read[0].ID)
	assert.Equal(t, list[1].Message, read[1].Message)
	assert.Equal(t, 2, Unread(list), "input untouched")
}
