package bounded_copy

import "errors"

var (
	ErrInvalidLimit = errors.New("copy limit must not be negative")
)
