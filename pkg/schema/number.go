package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on accepted numbers. A short string such as "1e2000000000" would
// otherwise expand into billions of digits when formatted.
const (
	maxExponent = 64
	maxDigits   = 78
)

// ToDecimal converts a numeric value into a decimal.
// It accepts Go numerics, json.Number, decimal.Decimal and numeric strings
// (as produced by CLI flags and query strings). Values whose exponent or
// digit count exceeds the supported range are rejected.
func ToDecimal(value any) (decimal.Decimal, error) {
	d, err := toDecimal(value)
	if err != nil {
		return decimal.Zero, err
	}
	return checkRange(d)
}

func checkRange(d decimal.Decimal) (decimal.Decimal, error) {
	exp := d.Exponent()
	if exp > maxExponent || exp < -maxExponent || d.NumDigits() > maxDigits {
		return decimal.Zero, fmt.Errorf("number out of range")
	}
	return d, nil
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("expected finite number, got %v", v)
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, fmt.Errorf("expected finite number, got %v", v)
		}
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromUint64(uint64(v)), nil
	case uint8:
		return decimal.NewFromUint64(uint64(v)), nil
	case uint16:
		return decimal.NewFromUint64(uint64(v)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(v)), nil
	case uint64:
		return decimal.NewFromUint64(v), nil
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(v)
	default:
		return decimal.Zero, fmt.Errorf("expected number, got %T", value)
	}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("expected number, got %q", s)
	}
	return d, nil
}
