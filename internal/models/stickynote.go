package models

import (
	"encoding/json"
	"time"
)

// NoteColor is one of the fixed sticky-note palette colors.
type NoteColor string

// The sticky-note palette.
const (
	NoteYellow NoteColor = "yellow"
	NoteBlue   NoteColor = "blue"
	NoteGreen  NoteColor = "green"
	NotePink   NoteColor = "pink"
	NotePurple NoteColor = "purple"
)

// legacyColors maps the original web client's Tailwind class values to
// palette names, so pre-existing backups revive cleanly.
var legacyColors = map[string]NoteColor{
	"bg-yellow-200": NoteYellow,
	"bg-blue-200":   NoteBlue,
	"bg-green-200":  NoteGreen,
	"bg-pink-200":   NotePink,
	"bg-purple-200": NotePurple,
}

// Palette returns every valid sticky-note color.
func Palette() []NoteColor {
	return []NoteColor{NoteYellow, NoteBlue, NoteGreen, NotePink, NotePurple}
}

// Valid reports whether c is a palette color.
func (c NoteColor) Valid() bool {
	switch c {
	case NoteYellow, NoteBlue, NoteGreen, NotePink, NotePurple:
		return true
	}
	return false
}

// UnmarshalJSON revives both palette names and legacy Tailwind class
// strings. Unknown values pass through unchanged; the store only ever
// writes palette names.
func (c *NoteColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if mapped, ok := legacyColors[s]; ok {
		*c = mapped
		return nil
	}
	*c = NoteColor(s)
	return nil
}

// Sticky-note dimension bounds in pixels.
const (
	MinNoteSize     = 80
	MaxNoteSize     = 1200
	DefaultNoteSize = 100
)

// ClampNoteSize forces a dimension into [MinNoteSize, MaxNoteSize].
// Non-positive values fall back to the default.
func ClampNoteSize(px int) int {
	if px <= 0 {
		return DefaultNoteSize
	}
	if px < MinNoteSize {
		return MinNoteSize
	}
	if px > MaxNoteSize {
		return MaxNoteSize
	}
	return px
}

// StickyNote is a colored free-form note. Width and height live on the
// record itself so dimensions survive reloads and travel with backups.
type StickyNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Color     NoteColor `json:"color"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"createdAt"`
}
