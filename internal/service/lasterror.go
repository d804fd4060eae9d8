package service

import "sync"

// errSlot is the last-error slot every service embeds.  The surrounding UI
// renders inline error state from it instead of wrapping each call in its
// own handler; an error persists until the next successful call of the same
// service clears it.  Guarded by a mutex because a service instance is
// shared across requests.
type errSlot struct {
	mu   sync.Mutex
	last error
}

// LastError returns the most recent failure of this service, or nil after
// a successful call.
func (s *errSlot) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// record stores err (or clears the slot when err is nil) and returns err
// unchanged so call sites can `return s.record(op(...))`.
func (s *errSlot) record(err error) error {
	s.mu.Lock()
	s.last = err
	s.mu.Unlock()
	return err
}
