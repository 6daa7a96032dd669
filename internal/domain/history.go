package domain

import "time"

// Event records one status transition of a domain. PreviousStatus is nil
// when the domain was seen for the first time.
type Event struct {
	Date           time.Time `json:"date"`
	Domain         string    `json:"domain"`
	Status         Status    `json:"status"`
	PreviousStatus *Status   `json:"previousStatus"`
}

// StatusEntry is the last known status of a domain.
type StatusEntry struct {
	Status Status `json:"status"`
}

// History is the durable cross-run record: chronological transition events
// plus the last known status per domain ever seen.
type History struct {
	Events    []Event                `json:"events"`
	LastState map[string]StatusEntry `json:"lastState"`
}

// EmptyHistory returns a valid history with no events. Also the recovery
// value when the persisted document is missing or malformed.
func EmptyHistory() History {
	return History{
		Events:    []Event{},
		LastState: map[string]StatusEntry{},
	}
}
