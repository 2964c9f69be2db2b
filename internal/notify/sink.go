// Package notify keeps the append-only list of in-app notifications.
package notify

import (
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/utils"
)

// Sink builds notification lists. Lists are most recent first and entries are
// never removed; only the read flag changes.
type Sink struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Sink
type Option func(*Sink)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.now = now }
}

// WithIDs overrides the id generator
func WithIDs(newID func() string) Option {
	return func(s *Sink) { s.newID = newID }
}

// NewSink creates a Sink
func NewSink(opts ...Option) *Sink {
	s := &Sink{now: time.Now, newID: utils.GenerateID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append returns list with a new unread notification in front
func (s *Sink) Append(list []models.Notification, message string, typ models.NotificationType) []models.Notification {
	if !typ.Valid() {
		typ = models.NotificationInfo
	}
	out := make([]models.Notification, 0, len(list)+1)
	out = append(out, models.Notification{
		ID:      s.newID(),
		Message: message,
		Date:    s.now().UTC(),
		Type:    typ,
	})
	return append(out, list...)
}

// AppendEvents appends each event in order, so the last event ends up first
func (s *Sink) AppendEvents(list []models.Notification, events ...models.NotificationEvent) []models.Notification {
	for _, e := range events {
		list = s.Append(list, e.Message, e.Type)
	}
	return list
}

// MarkAllRead returns list with every entry read
func MarkAllRead(list []models.Notification) []models.Notification {
	out := make([]models.Notification, len(list))
	for i, n := range list {
		n.Read = true
		out[i] = n
	}
	return out
}

// Unread counts unread entries
func Unread(list []models.Notification) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}
