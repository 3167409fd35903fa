package size_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int64
		wantErr error
	}{
		{name: "kilobytes", in: "10KB", want: 10000},
		{name: "megabytes", in: "5MB", want: 5000000},
		{name: "gigabytes", in: "2GB", want: 2000000000},
		{name: "lower case", in: "10kb", want: 10000},
		{name: "mixed case", in: "1Mb", want: 1000000},
		{name: "surrounding space", in: " 3GB\n", want: 3000000000},
		{name: "unknown unit", in: "10xx", wantErr: ErrUnknownUnit},
		{name: "binary unit", in: "10KiB", wantErr: ErrUnknownUnit},
		{name: "bare number", in: "1000", wantErr: ErrUnknownUnit},
		{name: "unit only", in: "KB", wantErr: ErrInvalidSize},
		{name: "empty", in: "", wantErr: ErrInvalidSize},
		{name: "zero", in: "0MB", wantErr: ErrInvalidSize},
		{name: "negative", in: "-1MB", wantErr: ErrInvalidSize},
		{name: "fraction", in: "1.5MB", wantErr: ErrInvalidSize},
		{name: "overflow", in: "99999999999GB", wantErr: ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	upper, err := Parse("10KB")
	require.NoError(t, err)
	lower, err := Parse("10kb")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
}
