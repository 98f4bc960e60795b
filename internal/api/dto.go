package api

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"modulear/internal/models"
	"modulear/internal/quiz"
)

// Boundary validation lives here: the stores never see blank text,
// past-dated countdown targets, unknown timezones, or off-palette
// colors. Rules accept both plain and pointer fields (pointer fields
// mark optional updates; nil means "leave unchanged").

func notBlank(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if s, _ := v.(string); strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

func futureDate(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	t, _ := v.(time.Time)
	if !t.After(time.Now()) {
		return errors.New("must be in the future")
	}
	return nil
}

func knownTimezone(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, _ := v.(string)
	if _, err := time.LoadLocation(s); err != nil {
		return errors.New("unknown timezone")
	}
	return nil
}

func paletteColor(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	c, _ := v.(models.NoteColor)
	if c == "" {
		// Absent color falls back to the default at creation.
		return nil
	}
	if !c.Valid() {
		return errors.New("unknown color")
	}
	return nil
}

// CreateTodoRequest is the request body for creating a to-do.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

func (r CreateTodoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.By(notBlank)),
	)
}

// UpdateTodoRequest carries optional to-do field updates.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (r UpdateTodoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.By(notBlank)),
	)
}

// CreateDiaryRequest is the request body for a new diary entry.
type CreateDiaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r CreateDiaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Content, validation.Required, validation.By(notBlank)),
	)
}

// UpdateDiaryRequest replaces an entry's title and content.
type UpdateDiaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r UpdateDiaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Content, validation.Required, validation.By(notBlank)),
	)
}

// CreateCountdownRequest is the request body for a new countdown.
// The target date must lie strictly in the future at creation time.
type CreateCountdownRequest struct {
	Title      string    `json:"title"`
	TargetDate time.Time `json:"targetDate"`
}

func (r CreateCountdownRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.By(notBlank)),
		validation.Field(&r.TargetDate, validation.Required, validation.By(futureDate)),
	)
}

// CreateClockRequest is the request body for a new world clock.
type CreateClockRequest struct {
	City     string `json:"city"`
	Timezone string `json:"timezone"`
	Label    string `json:"label"`
}

func (r CreateClockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.City, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Timezone, validation.Required, validation.By(knownTimezone)),
	)
}

// UpdateClockRequest changes a clock's display label.
type UpdateClockRequest struct {
	Label string `json:"label"`
}

// CreateVocabularyRequest is the request body for a new word.
type CreateVocabularyRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Notes      string `json:"notes"`
}

func (r CreateVocabularyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Word, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Definition, validation.Required, validation.By(notBlank)),
	)
}

// UpdateVocabularyRequest carries optional word field updates.
// Mastery is deliberately not editable here; see SetMasteryRequest.
type UpdateVocabularyRequest struct {
	Word       *string `json:"word"`
	Definition *string `json:"definition"`
	Example    *string `json:"example"`
	Notes      *string `json:"notes"`
}

func (r UpdateVocabularyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Word, validation.By(notBlank)),
		validation.Field(&r.Definition, validation.By(notBlank)),
	)
}

// SetMasteryRequest sets a word's mastery level. Out-of-range levels
// are accepted and clamped by the store.
type SetMasteryRequest struct {
	Level int `json:"level"`
}

// CreateNoteRequest is the request body for a new sticky note.
// An empty color defaults to yellow.
type CreateNoteRequest struct {
	Content string           `json:"content"`
	Color   models.NoteColor `json:"color"`
}

func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Color, validation.By(paletteColor)),
	)
}

// UpdateNoteRequest carries optional sticky-note field updates.
// Dimensions are clamped by the store.
type UpdateNoteRequest struct {
	Content *string           `json:"content"`
	Color   *models.NoteColor `json:"color"`
	Width   *int              `json:"width"`
	Height  *int              `json:"height"`
}

func (r UpdateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.By(notBlank)),
		validation.Field(&r.Color, validation.By(paletteColor)),
	)
}

// StartQuizRequest begins a quiz session in the given direction.
type StartQuizRequest struct {
	Direction quiz.Direction `json:"direction"`
}

func (r StartQuizRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction, validation.Required,
			validation.In(quiz.WordToDefinition, quiz.DefinitionToWord)),
	)
}

// AnswerRequest records the caller's judgment of the revealed card.
type AnswerRequest struct {
	Correct *bool `json:"correct"`
}

func (r AnswerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Correct, validation.NotNil),
	)
}
