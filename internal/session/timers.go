package session

import "time"

// timer is a delayed completion owned by a screen. Leaving the owning screen
// cancels it, and a callback that already fired re-checks under the session
// lock before touching state.
type timer struct {
	owner     ScreenName
	t         *time.Timer
	cancelled bool
	onCancel  func()
}

// schedule must be called with s.mu held
func (s *Session) schedule(owner ScreenName, d time.Duration, fn func(), onCancel func()) *timer {
	tm := &timer{owner: owner, onCancel: onCancel}
	tm.t = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if tm.cancelled || s.screen.Name() != tm.owner {
			return
		}
		s.dropTimer(tm)
		fn()
	})
	s.timers = append(s.timers, tm)
	return tm
}

func (s *Session) dropTimer(tm *timer) {
	for i, t := range s.timers {
		if t == tm {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (s *Session) cancelTimer(tm *timer) {
	if tm.cancelled {
		return
	}
	tm.cancelled = true
	tm.t.Stop()
	if tm.onCancel != nil {
		tm.onCancel()
	}
}

// cancelTimers stops every timer owned by owner
func (s *Session) cancelTimers(owner ScreenName) {
	kept := s.timers[:0]
	for _, tm := range s.timers {
		if tm.owner == owner {
			s.cancelTimer(tm)
			continue
		}
		kept = append(kept, tm)
	}
	s.timers = kept
}

func (s *Session) cancelAllTimers() {
	for _, tm := range s.timers {
		s.cancelTimer(tm)
	}
	s.timers = nil
}

// PendingTimers reports how many delayed completions are still scheduled
func (s *Session) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
