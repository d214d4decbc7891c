package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseYesNo interprets a boolean answer. ok is false for anything that is not
// y, yes, true, n, no or false in any case.
func parseYesNo(input string) (value, ok bool) {
	switch strings.ToLower(input) {
	case "y", "yes", "true":
		return true, true
	case "n", "no", "false":
		return false, true
	}
	return false, false
}

// parseChoice parses a menu answer. ok is false when input is not an integer.
func parseChoice(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseNumber parses input as a floating point number.
func parseNumber(input string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(input), 64)
}

// errOutOfIntRange marks numbers an Int field cannot hold: NaN, infinities and
// values beyond the int range.
var errOutOfIntRange = errors.New("number is not a representable integer")

// coerceNumber converts a parsed number to the field's subtype. Int rounds half
// to even, so 2.5 becomes 2 and 3.5 becomes 4.
func coerceNumber(n float64, subtype NumericSubtype) (any, error) {
	switch subtype {
	case Float:
		return n, nil
	case Int:
		r := math.RoundToEven(n)
		// -MinInt is 2^63 (or 2^31), exactly representable unlike MaxInt.
		if math.IsNaN(r) || r < math.MinInt || r >= -float64(math.MinInt) {
			return nil, fmt.Errorf("%w: %v", errOutOfIntRange, n)
		}
		return int(r), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownNumericSubtype, int(subtype))
	}
}

// formatValue renders a default value inside a prompt.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// toFloat accepts any numeric kind for number field defaults.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	if n, ok := toInt(v); ok && v != nil {
		return float64(n), true
	}
	return 0, false
}
