package sandsplit

import (
	"github.com/AnishMulay/sandsplit/internal/chunk_service/localdisc"
	"github.com/AnishMulay/sandsplit/internal/digest_service"
	"github.com/AnishMulay/sandsplit/internal/file_service"
	"github.com/AnishMulay/sandsplit/internal/file_service/simple"
	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/AnishMulay/sandsplit/internal/log_service/logrus_log"
	"github.com/google/uuid"
)

type Options struct {
	// RunID tags every log line of this run. Generated when empty.
	RunID       string
	Digest      string
	BufferSize  int
	LogLevel    string
	LogLocation string
}

// Tool is a wired split/join service for one run.
type Tool struct {
	RunID string
	Files file_service.FileService
	Log   log_service.LogService

	closeLog func() error
}

func (t *Tool) Close() error {
	if t.closeLog == nil {
		return nil
	}
	return t.closeLog()
}

func Build(opts Options) (*Tool, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}

	// 1. Logging
	ls, err := logrus_log.NewLogrusLogService(opts.LogLocation, opts.RunID, opts.LogLevel)
	if err != nil {
		return nil, err
	}

	// 2. Digests
	ds, err := digest_service.NewHashDigestService(opts.Digest, ls)
	if err != nil {
		ls.Close()
		return nil, err
	}

	// 3. Chunk storage
	cs := localdisc.NewLocalDiscChunkService(ls)

	// 4. Split/join orchestration
	fs := simple.NewSimpleFileService(cs, ds, ls, opts.BufferSize)

	ls.Debug(log_service.LogEvent{
		Message:  "Tool wired",
		Metadata: map[string]any{"digest": ds.Algorithm(), "bufferSize": opts.BufferSize},
	})

	return &Tool{
		RunID:    opts.RunID,
		Files:    fs,
		Log:      ls,
		closeLog: ls.Close,
	}, nil
}
