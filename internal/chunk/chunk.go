package chunk

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// SuffixDigits is the width of the zero-padded sequence suffix.
	SuffixDigits = 3
	// MaxSequence is the last sequence number the suffix can hold.
	MaxSequence = 999
	// Separator goes between the source name and the suffix.
	Separator = "."
)

// FileChunk describes one chunk file written by a split or read by a join.
type FileChunk struct {
	Seq  int
	Path string
	Size int64
}

// Name returns the path of chunk seq in the set identified by prefix.
// The prefix already ends with its separator, e.g. "archive.tar.".
func Name(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, SuffixDigits, seq)
}

// SplitPrefix returns the chunk prefix for source written into outputDir.
// An empty outputDir keeps the chunks next to the source.
func SplitPrefix(outputDir, source string) string {
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	return filepath.Join(outputDir, filepath.Base(source)) + Separator
}

// ParseFirstChunk takes the path of a chunk file and returns the prefix of
// its chunk set, the path the joined file should get, and the sequence
// number the path carried. The separator in front of the digits may be any
// single character; it stays part of the prefix.
func ParseFirstChunk(path string) (prefix string, destination string, seq int, err error) {
	if len(path) < SuffixDigits+2 {
		return "", "", 0, errors.Wrapf(ErrNotAChunkPath, "%q", path)
	}

	seq, ok := ParseSuffix(path[len(path)-SuffixDigits:])
	if !ok {
		return "", "", 0, errors.Wrapf(ErrNotAChunkPath, "%q", path)
	}

	prefix = path[:len(path)-SuffixDigits]
	destination = prefix[:len(prefix)-1]
	if isSeparator(prefix[len(prefix)-1]) || isSeparator(destination[len(destination)-1]) {
		return "", "", 0, errors.Wrapf(ErrNotAChunkPath, "%q", path)
	}
	return prefix, destination, seq, nil
}

// ParseSuffix reads a SuffixDigits-wide decimal suffix.
func ParseSuffix(digits string) (int, bool) {
	if len(digits) != SuffixDigits {
		return 0, false
	}
	seq := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
		seq = seq*10 + int(digits[i]-'0')
	}
	return seq, true
}

func isSeparator(c byte) bool {
	return c == '/' || os.IsPathSeparator(c)
}

// JoinDestination moves destination into outputDir when one is given.
func JoinDestination(outputDir, destination string) string {
	if outputDir == "" {
		return destination
	}
	return filepath.Join(outputDir, filepath.Base(destination))
}

// CountFor returns how many chunks of chunkSize a file of size bytes needs.
func CountFor(size, chunkSize int64) int64 {
	if size <= 0 || chunkSize <= 0 {
		return 0
	}
	return (size + chunkSize - 1) / chunkSize
}

// ValidSequence reports whether seq fits the suffix.
func ValidSequence(seq int) bool {
	return seq >= 1 && seq <= MaxSequence
}
