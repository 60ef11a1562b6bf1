package domain

import (
	"errors"
	"fmt"
)

// Question is one prompt in the interview protocol. Questions are loaded once
// at startup and never mutated.
type Question struct {
	Ordinal int
	Section string
	Prompt  string
}

// Protocol is the fixed, ordered question sequence for a session.
type Protocol []Question

var ErrEmptyProtocol = errors.New("interview protocol has no questions")

// Validate checks that the protocol is non-empty, that every prompt is
// present, and that ordinals are contiguous starting at 1.
func (p Protocol) Validate() error {
	if len(p) == 0 {
		return ErrEmptyProtocol
	}

	for i, question := range p {
		if question.Ordinal != i+1 {
			return fmt.Errorf("question at index %d has ordinal %d, want %d", i, question.Ordinal, i+1)
		}
		if question.Prompt == "" {
			return fmt.Errorf("question %d has an empty prompt", question.Ordinal)
		}
		if question.Section == "" {
			return fmt.Errorf("question %d has an empty section label", question.Ordinal)
		}
	}

	return nil
}
