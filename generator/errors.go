package generator

import "errors"

var (
	// ErrNoContent is returned when the language model responds without
	// any usable text.
	ErrNoContent = errors.New("language model returned no content")
)
