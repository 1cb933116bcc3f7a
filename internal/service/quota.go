package service

import "time"

// dayKey buckets usage by UTC calendar day so that the quota resets at
// the same moment for every caller.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
