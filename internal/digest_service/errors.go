package digest_service

import "errors"

var (
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")
	ErrDigestFailed     = errors.New("failed to compute digest")
)
