package simple

import (
	"io"
	"os"

	"github.com/AnishMulay/sandsplit/internal/bounded_copy"
	"github.com/AnishMulay/sandsplit/internal/chunk"
	"github.com/AnishMulay/sandsplit/internal/chunk_service"
	"github.com/AnishMulay/sandsplit/internal/digest_service"
	"github.com/AnishMulay/sandsplit/internal/file_service"
	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/pkg/errors"
)

// SimpleFileService splits and joins files one chunk at a time. Only the
// source (split) or destination (join) stays open for the whole run.
type SimpleFileService struct {
	cs         chunk_service.ChunkService
	ds         digest_service.DigestService
	ls         log_service.LogService
	bufferSize int
}

func NewSimpleFileService(
	cs chunk_service.ChunkService,
	ds digest_service.DigestService,
	ls log_service.LogService,
	bufferSize int,
) *SimpleFileService {
	if bufferSize <= 0 {
		bufferSize = bounded_copy.DefaultBufferSize
	}
	return &SimpleFileService{
		cs:         cs,
		ds:         ds,
		ls:         ls,
		bufferSize: bufferSize,
	}
}

// --- Split ---

func (s *SimpleFileService) Split(cfg file_service.SplitConfig) (*file_service.SplitResult, error) {
	s.ls.Info(log_service.LogEvent{
		Message:  "Splitting file",
		Metadata: map[string]any{"source": cfg.Source, "chunkSize": cfg.ChunkSize, "output": cfg.OutputDir},
	})

	if cfg.ChunkSize <= 0 {
		return nil, errors.Wrapf(file_service.ErrInvalidChunkSize, "got %d", cfg.ChunkSize)
	}

	src, err := os.Open(cfg.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(file_service.ErrSourceNotFound, "%s", cfg.Source)
		}
		return nil, errors.Wrapf(err, "open source %s", cfg.Source)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat source %s", cfg.Source)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(file_service.ErrSourceIsDirectory, "%s", cfg.Source)
	}
	if n := chunk.CountFor(info.Size(), cfg.ChunkSize); n > chunk.MaxSequence {
		return nil, errors.Wrapf(file_service.ErrTooManyChunks, "%s needs %d chunks of %d bytes", cfg.Source, n, cfg.ChunkSize)
	}
	if err := checkOutputDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	result := &file_service.SplitResult{Source: cfg.Source}

	if cfg.Verify {
		digest, err := s.ds.FileDigest(cfg.Source)
		if err != nil {
			return nil, err
		}
		result.Digest = digest
		if cfg.OnDigest != nil {
			cfg.OnDigest(digest)
		}
	}

	prefix := chunk.SplitPrefix(cfg.OutputDir, cfg.Source)
	// Every run ends by truncating and deleting the chunk after the last one
	// written, so a shorter re-split never leaves that chunk of an older set.
	for seq := 1; ; seq++ {
		if !chunk.ValidSequence(seq) {
			if err := s.checkExhausted(src, cfg.Source); err != nil {
				return nil, err
			}
			break
		}

		n, err := s.writeChunk(src, prefix, seq, cfg.ChunkSize)
		if err != nil {
			return nil, err
		}

		if n == 0 {
			if err := s.cs.DeleteChunk(prefix, seq); err != nil {
				return nil, err
			}
			break
		}

		result.Chunks = append(result.Chunks, chunk.FileChunk{
			Seq:  seq,
			Path: chunk.Name(prefix, seq),
			Size: n,
		})
		result.TotalSize += n
	}

	s.ls.Info(log_service.LogEvent{
		Message:  "File split successfully",
		Metadata: map[string]any{"source": cfg.Source, "chunks": len(result.Chunks), "size": result.TotalSize},
	})

	return result, nil
}

// writeChunk copies at most limit bytes of src into chunk seq and returns
// how many bytes it holds.
func (s *SimpleFileService) writeChunk(src io.Reader, prefix string, seq int, limit int64) (int64, error) {
	w, err := s.cs.CreateChunk(prefix, seq)
	if err != nil {
		return 0, err
	}

	n, err := bounded_copy.Copy(w, src, s.bufferSize, limit)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		s.ls.Error(log_service.LogEvent{
			Message:  "Failed to write chunk",
			Metadata: map[string]any{"chunk": chunk.Name(prefix, seq), "error": err.Error()},
		})
		return n, errors.Wrapf(err, "write chunk %s", chunk.Name(prefix, seq))
	}

	s.ls.Debug(log_service.LogEvent{
		Message:  "Chunk written",
		Metadata: map[string]any{"chunk": chunk.Name(prefix, seq), "size": n},
	})
	return n, nil
}

// checkExhausted is called once the last sequence number has been used. The
// split only succeeds if nothing is left to read.
func (s *SimpleFileService) checkExhausted(src io.Reader, source string) error {
	_, err := io.ReadFull(src, make([]byte, 1))
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return errors.Wrapf(err, "read source %s", source)
	}

	// The source grew after it was measured.
	s.ls.Error(log_service.LogEvent{
		Message:  "Source does not fit the last chunk",
		Metadata: map[string]any{"source": source, "maxChunks": chunk.MaxSequence},
	})
	return errors.Wrapf(file_service.ErrTooManyChunks, "%s", source)
}

// --- Join ---

func (s *SimpleFileService) Join(cfg file_service.JoinConfig) (*file_service.JoinResult, error) {
	s.ls.Info(log_service.LogEvent{
		Message:  "Joining file",
		Metadata: map[string]any{"firstChunk": cfg.FirstChunk, "output": cfg.OutputDir},
	})

	prefix, destination, _, err := chunk.ParseFirstChunk(cfg.FirstChunk)
	if err != nil {
		return nil, err
	}
	destination = chunk.JoinDestination(cfg.OutputDir, destination)
	if err := checkOutputDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	// Joining always starts at the first chunk of the set.
	r, err := s.cs.OpenChunk(prefix, 1)
	if err != nil {
		if errors.Is(err, chunk_service.ErrChunkNotFound) {
			return nil, errors.Wrapf(file_service.ErrFirstChunkNotFound, "%s", chunk.Name(prefix, 1))
		}
		return nil, err
	}

	out, err := os.OpenFile(destination, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		r.Close()
		return nil, errors.Wrapf(err, "create destination %s", destination)
	}

	result := &file_service.JoinResult{Destination: destination}

	if err := s.appendChunks(out, r, prefix, result); err != nil {
		out.Close()
		return nil, err
	}
	if err := out.Close(); err != nil {
		return nil, errors.Wrapf(err, "close destination %s", destination)
	}

	s.reportIgnored(prefix, result)

	if cfg.Verify {
		digest, err := s.ds.FileDigest(destination)
		if err != nil {
			return nil, err
		}
		result.Digest = digest
	}

	s.ls.Info(log_service.LogEvent{
		Message:  "File joined successfully",
		Metadata: map[string]any{"destination": destination, "chunks": len(result.Chunks), "size": result.TotalSize},
	})

	return result, nil
}

// appendChunks copies r (chunk 1) and every following chunk onto out until
// the first missing sequence number.
func (s *SimpleFileService) appendChunks(out io.Writer, r io.ReadCloser, prefix string, result *file_service.JoinResult) error {
	for seq := 1; ; {
		n, err := bounded_copy.Copy(out, r, s.bufferSize, bounded_copy.Unbounded)
		r.Close()
		if err != nil {
			s.ls.Error(log_service.LogEvent{
				Message:  "Failed to append chunk",
				Metadata: map[string]any{"chunk": chunk.Name(prefix, seq), "error": err.Error()},
			})
			return errors.Wrapf(err, "append chunk %s", chunk.Name(prefix, seq))
		}

		s.ls.Debug(log_service.LogEvent{
			Message:  "Chunk appended",
			Metadata: map[string]any{"chunk": chunk.Name(prefix, seq), "size": n},
		})
		result.Chunks = append(result.Chunks, chunk.FileChunk{
			Seq:  seq,
			Path: chunk.Name(prefix, seq),
			Size: n,
		})
		result.TotalSize += n

		seq++
		if !chunk.ValidSequence(seq) {
			return nil
		}
		r, err = s.cs.OpenChunk(prefix, seq)
		if errors.Is(err, chunk_service.ErrChunkNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// reportIgnored records chunks that exist past the gap that ended the join.
func (s *SimpleFileService) reportIgnored(prefix string, result *file_service.JoinResult) {
	seqs, err := s.cs.ListChunks(prefix)
	if err != nil {
		s.ls.Warn(log_service.LogEvent{
			Message:  "Could not look for chunks past the gap",
			Metadata: map[string]any{"prefix": prefix, "error": err.Error()},
		})
		return
	}

	gap := len(result.Chunks) + 1
	for _, seq := range seqs {
		if seq > gap {
			result.Ignored = append(result.Ignored, seq)
		}
	}

	if len(result.Ignored) > 0 {
		s.ls.Warn(log_service.LogEvent{
			Message:  "Chunks after a missing chunk were not joined",
			Metadata: map[string]any{"missing": chunk.Name(prefix, gap), "ignored": result.Ignored},
		})
	}
}

func checkOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(file_service.ErrOutputDirNotFound, "%s", dir)
	}
	return nil
}

var _ file_service.FileService = (*SimpleFileService)(nil)
