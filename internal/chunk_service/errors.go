package chunk_service

import "errors"

var (
	// Chunk operation errors
	ErrChunkCreateFailed = errors.New("failed to create chunk")
	ErrChunkOpenFailed   = errors.New("failed to open chunk")
	ErrChunkDeleteFailed = errors.New("failed to delete chunk")
	ErrChunkListFailed   = errors.New("failed to list chunks")
	ErrChunkNotFound     = errors.New("chunk not found")
)
