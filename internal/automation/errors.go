package automation

import "errors"

var (
	// ErrNotFound indicates no rule matched the given ID or name.
	ErrNotFound = errors.New("automation: not found")

	// ErrDuplicateName indicates a rule with the same name already
	// exists (names are unique case-insensitively).
	ErrDuplicateName = errors.New("automation: duplicate name")

	// ErrInvalidRule indicates the rule failed validation.
	ErrInvalidRule = errors.New("automation: invalid rule")
)
