package chunk

import "errors"

var (
	ErrNotAChunkPath      = errors.New("not a chunk path, expected a .NNN suffix")
	ErrSequenceOutOfRange = errors.New("chunk sequence out of range")
)
