package form

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYesNo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		value bool
		ok    bool
	}{
		{"y", true, true},
		{"Yes", true, true},
		{"TRUE", true, true},
		{"N", false, true},
		{"no", false, true},
		{"False", false, true},
		{"", false, false},
		{"maybe", false, false},
		{" y", false, false},
	}

	for _, tt := range tests {
		value, ok := parseYesNo(tt.input)
		assert.Equal(t, tt.ok, ok, "parseYesNo(%q) ok", tt.input)
		assert.Equal(t, tt.value, value, "parseYesNo(%q) value", tt.input)
	}
}

func TestParseChoice(t *testing.T) {
	t.Parallel()

	n, ok := parseChoice(" 3 ")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = parseChoice("3.0")
	assert.False(t, ok)

	_, ok = parseChoice("")
	assert.False(t, ok)
}

func TestCoerceNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       float64
		subtype NumericSubtype
		want    any
	}{
		{"float unchanged", 3.7, Float, 3.7},
		{"int rounds", 3.7, Int, 4},
		{"int half to even down", 2.5, Int, 2},
		{"int half to even up", 3.5, Int, 4},
		{"int negative", -1.5, Int, -2},
	}

	for _, tt := range tests {
		got, err := coerceNumber(tt.n, tt.subtype)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := coerceNumber(1, NumericSubtype(-1))
	assert.True(t, errors.Is(err, ErrUnknownNumericSubtype))

	for _, n := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e19, -1e19, float64(math.MaxInt)} {
		_, err := coerceNumber(n, Int)
		assert.True(t, errors.Is(err, errOutOfIntRange), "%v should not fit an int, got %v", n, err)
	}

	got, err := coerceNumber(float64(math.MinInt), Int)
	require.NoError(t, err)
	assert.Equal(t, math.MinInt, got)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", formatValue("text"))
	assert.Equal(t, "5", formatValue(5))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, "3", formatValue(3.0))
	assert.Equal(t, "true", formatValue(true))
}
