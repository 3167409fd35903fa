package command

import "errors"

var (
	ErrNoCommand           = errors.New("must be either join or split")
	ErrConflictingCommands = errors.New("must be either join or split, not both")
	ErrMissingSize         = errors.New("select a chunk size, for example 1GB")
	ErrUnknownKind         = errors.New("unknown command kind")
)
