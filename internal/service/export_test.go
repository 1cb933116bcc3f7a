package service

import "time"

// SetClock overrides the wall clock of an AskService for tests.
func SetClock(svc AskService, now func() time.Time) {
	svc.(*askService).now = now
}
