package services

import (
	"context"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
)

// NotificationList is the notifications screen
type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	Unread        int                   `json:"unread"`
}

// NotificationService handles notification-related business logic
type NotificationService struct {
	accounts *Accounts
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(accounts *Accounts) *NotificationService {
	return &NotificationService{accounts: accounts}
}

// List returns the account's notifications, most recent first
func (s *NotificationService) List(ctx context.Context, msisdn string) (*NotificationList, error) {
	list, err := s.accounts.repo.GetNotifications(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: list, Unread: notify.Unread(list)}, nil
}

// MarkAllRead flags every notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context, msisdn string) (*NotificationList, error) {
	unlock := s.accounts.lock(msisdn)
	defer unlock()

	list, err := s.accounts.repo.GetNotifications(ctx, msisdn)
	if err != nil {
		return nil, err
	}
	list = notify.MarkAllRead(list)
	if err := s.accounts.repo.SaveNotifications(ctx, msisdn, list); err != nil {
		return nil, err
	}
	return &NotificationList{Notifications: list, Unread: 0}, nil
}
