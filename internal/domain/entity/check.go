package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultExcerptLength is the number of characters shown in history listings
const DefaultExcerptLength = 50

// Check records one classified text for the recent checks list
type Check struct {
	ID         uuid.UUID   `json:"id"`
	Text       string      `json:"text"`
	Prediction *Prediction `json:"prediction"`
	CheckedAt  time.Time   `json:"checked_at"`
}

// NewCheck creates a new Check stamped with the current time
func NewCheck(text string, prediction *Prediction) *Check {
	return &Check{
		ID:         uuid.New(),
		Text:       text,
		Prediction: prediction,
		CheckedAt:  time.Now().UTC(),
	}
}

// Excerpt returns at most n characters of the text, with "..." appended when
// the text was cut.
func (c *Check) Excerpt(n int) string {
	runes := []rune(c.Text)
	if n <= 0 || len(runes) <= n {
		return c.Text
	}
	return string(runes[:n]) + "..."
}
