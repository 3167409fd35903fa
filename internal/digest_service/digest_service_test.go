package digest_service

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnishMulay/sandsplit/internal/log_service/logrus_log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, algorithm string) *HashDigestService {
	t.Helper()
	ls := logrus_log.NewLogrusLogServiceWithWriter(io.Discard, "test", "debug")
	ds, err := NewHashDigestService(algorithm, ls)
	require.NoError(t, err)
	return ds
}

func TestHashDigestService_FileDigest(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		data      []byte
		want      string
	}{
		{
			name:      "md5 of hello world",
			algorithm: MD5,
			data:      []byte("hello world"),
			want:      "5eb63bbbe01eeed093cb22bb8f5acdc3",
		},
		{
			name:      "md5 of empty file",
			algorithm: "",
			data:      []byte{},
			want:      "d41d8cd98f00b204e9800998ecf8427e",
		},
		{
			name:      "sha256 of hello world",
			algorithm: "SHA256",
			data:      []byte("hello world"),
			want:      "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.bin")
			require.NoError(t, os.WriteFile(path, tt.data, 0644))
			ds := newTestService(t, tt.algorithm)

			got, err := ds.FileDigest(path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashDigestService_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	data := bytes.Repeat([]byte{0x00, 0x7f, 0xff, 0x10}, 10000)
	require.NoError(t, os.WriteFile(path, data, 0644))
	ds := newTestService(t, MD5)

	first, err := ds.FileDigest(path)
	require.NoError(t, err)
	second, err := ds.FileDigest(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	fromReader, err := ds.Digest(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, first, fromReader)
}

func TestHashDigestService_MissingFile(t *testing.T) {
	ds := newTestService(t, MD5)

	_, err := ds.FileDigest(filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, ErrDigestFailed)
}

func TestNewHashDigestService_UnknownAlgorithm(t *testing.T) {
	_, err := NewHashDigestService("crc32", nil)

	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestHashDigestService_Algorithm(t *testing.T) {
	assert.Equal(t, MD5, newTestService(t, "").Algorithm())
	assert.Equal(t, SHA256, newTestService(t, " sha256 ").Algorithm())
}
