package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerialisesAndForgetsKeys(t *testing.T) {
	k := newKeyedMutex()

	var wg sync.WaitGroup
	inside, counter := 0, 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.lock(testMSISDN)
			defer unlock()
			inside++
			assert.Equal(t, 1, inside)
			counter++
			inside--
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Zero(t, k.size())

	unlockA := k.lock("a")
	unlockB := k.lock("b")
	assert.Equal(t, 2, k.size())
	unlockA()
	unlockB()
	assert.Zero(t, k.size())
}

func TestAccountLocksReleasedAfterUse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.signIn(t)

	_, err := f.wallet.UpdateBudget(ctx, id, testMSISDN, "600")
	assert.NoError(t, err)
	assert.Zero(t, f.accounts.locks.size())
}

func TestApplyWritesRestoresInReverse(t *testing.T) {
	var order []string
	step := func(name string, fail bool) accountWrite {
		return accountWrite{
			name: name,
			apply: func(ctx context.Context) error {
				if fail {
					return errBoom
				}
				order = append(order, "apply "+name)
				return nil
			},
			restore: func(ctx context.Context) error {
				order = append(order, "restore "+name)
				return nil
			},
		}
	}

	err := applyWrites(context.Background(), testMSISDN, []accountWrite{
		step("a", false), step("b", false), step("c", true), step("d", false),
	})
	assert.ErrorIs(t, err, errBoom)
	assert.EqualError(t, err, "failed to save c: boom")
	assert.Equal(t, []string{"apply a", "apply b", "restore b", "restore a"}, order)
}
