package app

import "time"

// SetNow replaces the service clock in tests.
func (s *AuthService) SetNow(now func() time.Time) {
	s.now = now
}
