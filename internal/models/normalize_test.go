package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr error
	}{
		{name: "canonical string", value: "5411", want: "5411"},
		{name: "short string is zero-padded", value: "763", want: "0763"},
		{name: "single digit string", value: "1", want: "0001"},
		{name: "empty string pads to all zeros", value: "", want: "0000"},
		{name: "surrounding whitespace is trimmed", value: " 5411 ", want: "5411"},
		{name: "int", value: 5411, want: "5411"},
		{name: "small int is zero-padded", value: 763, want: "0763"},
		{name: "zero int", value: 0, want: "0000"},
		{name: "int64", value: int64(4511), want: "4511"},
		{name: "int32", value: int32(4511), want: "4511"},
		{name: "uint", value: uint(4511), want: "4511"},
		{name: "whole float64", value: float64(5411), want: "5411"},
		{name: "fractional float64", value: 5411.5, wantErr: ErrInvalidFormat},
		{name: "too many digits", value: "54110", wantErr: ErrInvalidFormat},
		{name: "too large int", value: 54110, wantErr: ErrInvalidFormat},
		{name: "negative int", value: -1, wantErr: ErrInvalidFormat},
		{name: "non-digit characters", value: "54a1", wantErr: ErrInvalidFormat},
		{name: "alphabetic string", value: "XXXX", wantErr: ErrInvalidFormat},
		{name: "nil value", value: nil, wantErr: ErrInvalidFormat},
		{name: "unsupported type", value: 3.14, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeCode(tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, CodeLength)
		})
	}
}

func TestNormalizeCode_CodeValues(t *testing.T) {
	code, err := NewCode(Code{MCC: "763"})
	require.NoError(t, err)

	got, err := NormalizeCode(*code)
	require.NoError(t, err)
	assert.Equal(t, "0763", got)

	got, err = NormalizeCode(code)
	require.NoError(t, err)
	assert.Equal(t, "0763", got)

	_, err = NormalizeCode((*Code)(nil))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNormalizeCode_Idempotent(t *testing.T) {
	once, err := NormalizeCode("42")
	require.NoError(t, err)

	twice, err := NormalizeCode(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
