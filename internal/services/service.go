package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ArowuTest/gaspay-backend/internal/models"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrBiometricDisabled = errors.New("biometric login is not enabled for this account")
	ErrInvalidActionCode = errors.New("Invalid code")
	ErrSessionMismatch   = errors.New("session belongs to another account")
)

// keyedMutex serialises work per key. Entries live only while some caller
// holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

// accountWrite is one step of a multi-key update. restore puts back the
// value apply replaced; nil means the step cannot be undone.
type accountWrite struct {
	name    string
	apply   func(ctx context.Context) error
	restore func(ctx context.Context) error
}

// applyWrites runs writes in order. When one fails, the steps already
// applied are restored in reverse order and the failure is returned.
func applyWrites(ctx context.Context, msisdn string, writes []accountWrite) error {
	for i, w := range writes {
		if err := w.apply(ctx); err != nil {
			restoreCtx := context.WithoutCancel(ctx)
			for j := i - 1; j >= 0; j-- {
				if writes[j].restore == nil {
					continue
				}
				if rerr := writes[j].restore(restoreCtx); rerr != nil {
					log.WithFields(log.Fields{"msisdn": msisdn, "key": writes[j].name}).WithError(rerr).Error("failed to restore account state")
				}
			}
			return fmt.Errorf("failed to save %s: %w", w.name, err)
		}
	}
	return nil
}

// Accounts bundles the account repository with the notification sink. Every
// read-modify-write of one account's state runs under that account's lock.
type Accounts struct {
	repo  repositories.AccountRepository
	sink  *notify.Sink
	locks *keyedMutex
	now   func() time.Time
}

// NewAccounts creates the shared account access used by the services
func NewAccounts(repo repositories.AccountRepository, sink *notify.Sink) *Accounts {
	return &Accounts{
		repo:  repo,
		sink:  sink,
		locks: newKeyedMutex(),
		now:   time.Now,
	}
}

// Repository returns the underlying repository
func (a *Accounts) Repository() repositories.AccountRepository { return a.repo }

func (a *Accounts) lock(msisdn string) func() {
	return a.locks.lock(msisdn)
}

// notifyLocked appends events to the account's notifications. The caller
// holds the account lock.
func (a *Accounts) notifyLocked(ctx context.Context, msisdn string, events ...models.NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}
	list, err := a.repo.GetNotifications(ctx, msisdn)
	if err != nil {
		return err
	}
	list = a.sink.AppendEvents(list, events...)
	if err := a.repo.SaveNotifications(ctx, msisdn, list); err != nil {
		return fmt.Errorf("failed to save notifications: %w", err)
	}
	return nil
}

// Notify appends events to the account's notifications
func (a *Accounts) Notify(ctx context.Context, msisdn string, events ...models.NotificationEvent) error {
	unlock := a.lock(msisdn)
	defer unlock()
	return a.notifyLocked(ctx, msisdn, events...)
}
