// Package models defines the domain types for Modulear.
//
// Wire field names deliberately match the original web client's
// localStorage JSON (camelCase), so backups produced by either side
// import cleanly into the other.
package models

import "time"

// Todo is a single to-do list item.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// DiaryEntry is a dated journal entry. Date is fixed at creation;
// title and content may be edited afterwards.
type DiaryEntry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// Countdown counts down to a target moment. The target must lie in the
// future when the countdown is created, but is allowed to lapse later.
type Countdown struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TargetDate time.Time `json:"targetDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WorldClock shows the current time in a city. Timezone is an IANA
// zone identifier; it is checked when the clock is created, and clients
// render a placeholder for zones the host no longer recognizes.
type WorldClock struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Timezone  string    `json:"timezone"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Mastery level bounds for vocabulary items.
const (
	MinMastery = 0
	MaxMastery = 5
)

// ClampMastery forces level into the [MinMastery, MaxMastery] range.
func ClampMastery(level int) int {
	if level < MinMastery {
		return MinMastery
	}
	if level > MaxMastery {
		return MaxMastery
	}
	return level
}

// VocabularyItem is a word under study. LastReviewed is set only by
// mastery updates (quiz answers, manual level changes), never by edits.
type VocabularyItem struct {
	ID           string     `json:"id"`
	Word         string     `json:"word"`
	Definition   string     `json:"definition"`
	Example      string     `json:"example,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	MasteryLevel int        `json:"masteryLevel"`
}
