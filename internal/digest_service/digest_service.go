package digest_service

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/AnishMulay/sandsplit/internal/log_service"
	"github.com/pkg/errors"
)

const (
	MD5    = "md5"
	SHA256 = "sha256"
)

// readSize is the fixed read size used while hashing a file.
const readSize = 4096

type DigestService interface {
	Algorithm() string
	FileDigest(path string) (string, error)
	Digest(r io.Reader) (string, error)
}

// HashDigestService digests whole files with a crypto hash.
type HashDigestService struct {
	algorithm string
	newHash   func() hash.Hash
	ls        log_service.LogService
}

// NewHashDigestService returns a digest service for algorithm. An empty
// algorithm selects md5, which matches the checksums printed by older
// split tools.
func NewHashDigestService(algorithm string, ls log_service.LogService) (*HashDigestService, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))

	var newHash func() hash.Hash
	switch algorithm {
	case "", MD5:
		algorithm = MD5
		newHash = md5.New
	case SHA256:
		newHash = sha256.New
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}

	return &HashDigestService{
		algorithm: algorithm,
		newHash:   newHash,
		ls:        ls,
	}, nil
}

func (ds *HashDigestService) Algorithm() string {
	return ds.algorithm
}

func (ds *HashDigestService) Digest(r io.Reader) (string, error) {
	h := ds.newHash()
	buf := make([]byte, readSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (ds *HashDigestService) FileDigest(path string) (string, error) {
	ds.ls.Debug(log_service.LogEvent{
		Message:  "Computing file digest",
		Metadata: map[string]any{"path": path, "algorithm": ds.algorithm},
	})

	f, err := os.Open(path)
	if err != nil {
		ds.ls.Error(log_service.LogEvent{
			Message:  "Failed to open file for digest",
			Metadata: map[string]any{"path": path, "error": err.Error()},
		})
		return "", errors.Wrapf(ErrDigestFailed, "%s: %v", path, err)
	}
	defer f.Close()

	sum, err := ds.Digest(f)
	if err != nil {
		ds.ls.Error(log_service.LogEvent{
			Message:  "Failed to read file for digest",
			Metadata: map[string]any{"path": path, "error": err.Error()},
		})
		return "", errors.Wrapf(ErrDigestFailed, "%s: %v", path, err)
	}

	ds.ls.Debug(log_service.LogEvent{
		Message:  "File digest computed",
		Metadata: map[string]any{"path": path, "digest": sum},
	})
	return sum, nil
}

var _ DigestService = (*HashDigestService)(nil)
