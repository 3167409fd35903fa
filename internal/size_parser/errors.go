package size_parser

import "errors"

var (
	ErrUnknownUnit = errors.New("unrecognized size unit")
	ErrInvalidSize = errors.New("invalid size")
)
