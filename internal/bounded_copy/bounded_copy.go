package bounded_copy

import (
	"io"

	"github.com/pkg/errors"
)

// DefaultBufferSize is used when the caller passes a non-positive buffer size.
const DefaultBufferSize = 64 * 1024

// Unbounded as a limit copies until src is exhausted.
const Unbounded int64 = 0

// Copy moves bytes from src to dst, reading at most bufferSize bytes at a
// time, until limit bytes have been copied or src reports end of stream.
// A limit of Unbounded copies everything. The returned count is exact:
// 0 means src had nothing left, less than limit means src ran out first.
func Copy(dst io.Writer, src io.Reader, bufferSize int, limit int64) (int64, error) {
	if limit < 0 {
		return 0, ErrInvalidLimit
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if limit > 0 && limit < int64(bufferSize) {
		bufferSize = int(limit)
	}

	buf := make([]byte, bufferSize)
	var copied int64

	for limit == Unbounded || copied < limit {
		want := len(buf)
		if limit != Unbounded {
			if remaining := limit - copied; remaining < int64(want) {
				want = int(remaining)
			}
		}

		nr, rerr := src.Read(buf[:want])
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			if nw < 0 || nr < nw {
				nw = 0
				if werr == nil {
					werr = errors.New("invalid write result")
				}
			}
			copied += int64(nw)
			if werr != nil {
				return copied, errors.Wrap(werr, "write")
			}
			if nr != nw {
				return copied, io.ErrShortWrite
			}
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return copied, errors.Wrap(rerr, "read")
		}
	}

	return copied, nil
}
