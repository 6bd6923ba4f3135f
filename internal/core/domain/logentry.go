package domain

import "time"

// LogEntry records a single inventory mutation. Entries live only for the
// lifetime of the owning store; they are never written to the inventory
// file.
type LogEntry struct {
	ID      string
	At      time.Time
	Message string
}

func (e LogEntry) String() string {
	return e.At.Format(time.RFC3339) + ": " + e.Message
}
