package chunk_service

import "io"

// ChunkService stores the numbered chunk files of a chunk set. A chunk set
// is identified by its prefix, the path up to and including the separator
// in front of the sequence digits.
type ChunkService interface {
	CreateChunk(prefix string, seq int) (io.WriteCloser, error)
	OpenChunk(prefix string, seq int) (io.ReadCloser, error)
	DeleteChunk(prefix string, seq int) error
	ListChunks(prefix string) ([]int, error)
}
