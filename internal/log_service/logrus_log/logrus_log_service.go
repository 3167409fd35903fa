package logrus_log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// StderrLocation selects standard error as the log output.
const StderrLocation = "stderr"

// LogrusLogService writes log events through a logrus.Logger. Every event
// carries the run ID so the lines of one split or join can be grepped out
// of a shared log file.
type LogrusLogService struct {
	logger *logrus.Logger
	runID  string

	mu   sync.Mutex
	file *os.File
}

// NewLogrusLogService opens location ("stderr" or a file path, appended
// to) and returns a service that drops events below minLogLevel.
func NewLogrusLogService(location string, runID string, minLogLevel string) (*LogrusLogService, error) {
	if location == "" || location == StderrLocation {
		return NewLogrusLogServiceWithWriter(os.Stderr, runID, minLogLevel), nil
	}

	f, err := os.OpenFile(location, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", location)
	}

	ls := NewLogrusLogServiceWithWriter(f, runID, minLogLevel)
	ls.file = f
	return ls, nil
}

func NewLogrusLogServiceWithWriter(w io.Writer, runID string, minLogLevel string) *LogrusLogService {
	logger := logrus.New()
	logger.Out = w
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	}

	ls := &LogrusLogService{
		logger: logger,
		runID:  runID,
	}
	ls.SetMinLogLevel(minLogLevel)
	return ls
}

func (ls *LogrusLogService) SetMinLogLevel(level string) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	switch log_service.GetLevelValue(level) {
	case log_service.DebugLevelValue:
		ls.logger.SetLevel(logrus.DebugLevel)
	case log_service.WarnLevelValue:
		ls.logger.SetLevel(logrus.WarnLevel)
	case log_service.ErrorLevelValue:
		ls.logger.SetLevel(logrus.ErrorLevel)
	default:
		ls.logger.SetLevel(logrus.InfoLevel)
	}
}

// Close releases the log file, if one was opened.
func (ls *LogrusLogService) Close() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.file == nil {
		return nil
	}
	err := ls.file.Close()
	ls.file = nil
	return err
}

func (ls *LogrusLogService) entry(event log_service.LogEvent) *logrus.Entry {
	fields := make(logrus.Fields, len(event.Metadata)+1)
	for k, v := range event.Metadata {
		fields[k] = v
	}

	runID := event.RunID
	if runID == "" {
		runID = ls.runID
	}
	fields["run_id"] = runID

	e := ls.logger.WithFields(fields)
	if !event.Timestamp.IsZero() {
		e = e.WithTime(event.Timestamp)
	}
	return e
}

func (ls *LogrusLogService) Debug(event log_service.LogEvent) {
	ls.entry(event).Debug(event.Message)
}

func (ls *LogrusLogService) Info(event log_service.LogEvent) {
	ls.entry(event).Info(event.Message)
}

func (ls *LogrusLogService) Warn(event log_service.LogEvent) {
	ls.entry(event).Warn(event.Message)
}

func (ls *LogrusLogService) Error(event log_service.LogEvent) {
	ls.entry(event).Error(event.Message)
}

var _ log_service.LogService = (*LogrusLogService)(nil)
