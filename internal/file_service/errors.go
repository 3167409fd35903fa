package file_service

import (
	"errors"

	"github.com/AnishMulay/sandsplit/internal/chunk"
)

var (
	// Split errors
	ErrInvalidChunkSize  = errors.New("chunk size must be positive")
	ErrSourceNotFound    = errors.New("source file does not exist")
	ErrSourceIsDirectory = errors.New("source is a directory")
	ErrTooManyChunks     = errors.New("split would need more than 999 chunks")

	// Join errors
	ErrFirstChunkNotFound = errors.New("first chunk does not exist")
	ErrNotAChunkPath      = chunk.ErrNotAChunkPath

	ErrOutputDirNotFound = errors.New("output directory does not exist")
)
