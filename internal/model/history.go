package model

import "time"

// HistoryCapacity bounds a task's change history.
const HistoryCapacity = 10

// ChangeRecord is one entry in a task's bounded change history.
// Progress and Completed snapshot the values relevant to the change:
// field updates record the resulting state, completion toggles record
// the prior progress so un-completing can restore it.
type ChangeRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Changes   string    `json:"changes"`
	Progress  *int      `json:"progress,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
}

// AppendHistory appends rec to h, evicting the oldest entry once the
// capacity is reached. Entries are ordered oldest first.
func AppendHistory(h []ChangeRecord, rec ChangeRecord) []ChangeRecord {
	h = append(h, rec)
	if len(h) > HistoryCapacity {
		h = h[len(h)-HistoryCapacity:]
	}
	return h
}
