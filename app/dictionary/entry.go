package dictionary

import "errors"

// ErrNotFound is returned when no dictionary data exists for a word
var ErrNotFound = errors.New("word not found")

// Sense is a single part of speech with its definition
type Sense struct {
	PartOfSpeech string `json:"pos"`
	Definition   string `json:"definition"`
}

// Entry holds parsed dictionary data for a single word
type Entry struct {
	Word   string  `json:"word"`
	US     *string `json:"us,omitempty"`
	UK     *string `json:"uk,omitempty"`
	Senses []Sense `json:"senses"`
}

// IsEmpty returns true if entry has no senses
func (e Entry) IsEmpty() bool {
	return len(e.Senses) == 0
}

// Pronunciations returns US and UK pronunciations, empty strings when unset
func (e Entry) Pronunciations() (us string, uk string) {
	if e.US != nil {
		us = *e.US
	}
	if e.UK != nil {
		uk = *e.UK
	}
	return us, uk
}

func ptrStr(s string) *string {
	return &s
}
