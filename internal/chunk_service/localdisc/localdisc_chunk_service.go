package localdisc

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnishMulay/sandsplit/internal/chunk"
	"github.com/AnishMulay/sandsplit/internal/chunk_service"
	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type LocalDiscChunkService struct {
	ls log_service.LogService
}

func NewLocalDiscChunkService(ls log_service.LogService) *LocalDiscChunkService {
	return &LocalDiscChunkService{
		ls: ls,
	}
}

func (cs *LocalDiscChunkService) chunkPath(prefix string, seq int) (string, error) {
	if !chunk.ValidSequence(seq) {
		return "", errors.Wrapf(chunk.ErrSequenceOutOfRange, "%d", seq)
	}
	return chunk.Name(prefix, seq), nil
}

// CreateChunk creates or truncates the chunk file.
func (cs *LocalDiscChunkService) CreateChunk(prefix string, seq int) (io.WriteCloser, error) {
	path, err := cs.chunkPath(prefix, seq)
	if err != nil {
		return nil, err
	}

	cs.ls.Debug(log_service.LogEvent{
		Message:  "Creating chunk",
		Metadata: map[string]any{"path": path, "seq": seq},
	})

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to create chunk",
			Metadata: map[string]any{"path": path, "error": err.Error()},
		})
		return nil, errors.Wrapf(chunk_service.ErrChunkCreateFailed, "%s: %v", path, err)
	}
	return f, nil
}

// OpenChunk opens the chunk for reading. A missing chunk is reported as
// chunk_service.ErrChunkNotFound.
func (cs *LocalDiscChunkService) OpenChunk(prefix string, seq int) (io.ReadCloser, error) {
	path, err := cs.chunkPath(prefix, seq)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cs.ls.Debug(log_service.LogEvent{
				Message:  "Chunk not found",
				Metadata: map[string]any{"path": path, "seq": seq},
			})
			return nil, errors.Wrapf(chunk_service.ErrChunkNotFound, "%s", path)
		}
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to open chunk",
			Metadata: map[string]any{"path": path, "error": err.Error()},
		})
		return nil, errors.Wrapf(chunk_service.ErrChunkOpenFailed, "%s: %v", path, err)
	}

	cs.ls.Debug(log_service.LogEvent{
		Message:  "Opened chunk",
		Metadata: map[string]any{"path": path, "seq": seq},
	})
	return f, nil
}

func (cs *LocalDiscChunkService) DeleteChunk(prefix string, seq int) error {
	path, err := cs.chunkPath(prefix, seq)
	if err != nil {
		return err
	}

	cs.ls.Debug(log_service.LogEvent{
		Message:  "Deleting chunk",
		Metadata: map[string]any{"path": path, "seq": seq},
	})

	if err := os.Remove(path); err != nil {
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to delete chunk",
			Metadata: map[string]any{"path": path, "error": err.Error()},
		})
		if os.IsNotExist(err) {
			return errors.Wrapf(chunk_service.ErrChunkNotFound, "%s", path)
		}
		return errors.Wrapf(chunk_service.ErrChunkDeleteFailed, "%s: %v", path, err)
	}
	return nil
}

// ListChunks returns the sorted sequence numbers of the chunk files that
// exist for prefix, gaps included.
func (cs *LocalDiscChunkService) ListChunks(prefix string) ([]int, error) {
	dir, base := filepath.Split(prefix)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		cs.ls.Error(log_service.LogEvent{
			Message:  "Failed to list chunks",
			Metadata: map[string]any{"dir": dir, "error": err.Error()},
		})
		return nil, errors.Wrapf(chunk_service.ErrChunkListFailed, "%s: %v", dir, err)
	}

	var seqs []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || len(name) != len(base)+chunk.SuffixDigits || !strings.HasPrefix(name, base) {
			continue
		}
		if seq, ok := chunk.ParseSuffix(name[len(base):]); ok && chunk.ValidSequence(seq) {
			seqs = append(seqs, seq)
		}
	}
	slices.Sort(seqs)

	return seqs, nil
}

var _ chunk_service.ChunkService = (*LocalDiscChunkService)(nil)
