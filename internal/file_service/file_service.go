package file_service

import "github.com/AnishMulay/sandsplit/internal/chunk"

// SplitConfig describes one split of Source into chunks of ChunkSize bytes.
// An empty OutputDir writes the chunks next to Source.
type SplitConfig struct {
	Source    string
	OutputDir string
	ChunkSize int64
	Verify    bool
	// OnDigest, when set, receives the source digest as soon as it is
	// computed, before the first chunk is written.
	OnDigest func(digest string)
}

// JoinConfig describes one join of the chunk set FirstChunk belongs to.
// An empty OutputDir writes the joined file next to the chunks.
type JoinConfig struct {
	FirstChunk string
	OutputDir  string
	Verify     bool
}

type SplitResult struct {
	Source    string
	Chunks    []chunk.FileChunk
	TotalSize int64
	// Digest is set only when the split was verified.
	Digest string
}

type JoinResult struct {
	Destination string
	Chunks      []chunk.FileChunk
	TotalSize   int64
	// Digest is set only when the join was verified.
	Digest string
	// Ignored holds chunk numbers found on disc past the first gap.
	Ignored []int
}

type FileService interface {
	Split(cfg SplitConfig) (*SplitResult, error)
	Join(cfg JoinConfig) (*JoinResult, error)
}
