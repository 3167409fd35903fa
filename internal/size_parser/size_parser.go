package size_parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Units maps the accepted two-letter suffixes to their decimal multiplier.
var Units = map[string]int64{
	"KB": 1000,
	"MB": 1000 * 1000,
	"GB": 1000 * 1000 * 1000,
}

// Parse turns "<integer><KB|MB|GB>" into a byte count. The unit is
// case-insensitive and the magnitude must be a positive integer.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, errors.Wrapf(ErrInvalidSize, "%q", s)
	}

	number, unit := s[:len(s)-2], strings.ToUpper(s[len(s)-2:])
	multiplier, ok := Units[unit]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownUnit, "%q in %q, use KB, MB or GB", unit, s)
	}

	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "%q", s)
	}
	if n > math.MaxInt64/multiplier {
		return 0, errors.Wrapf(ErrInvalidSize, "%q overflows", s)
	}

	return n * multiplier, nil
}
