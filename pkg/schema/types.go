package schema

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Type defines the contract for parameter validation.
type Type interface {
	// Name returns the type name as used in action files (e.g., "string", "positive").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// Format renders a valid value the way it appears in a URL.
	Format(value any) (string, error)
}

// --- Built-in Type Implementations ---

// StringType validates non-empty string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func (t *StringType) Format(value any) (string, error) {
	if err := t.Validate(value); err != nil {
		return "", err
	}
	return value.(string), nil
}

// EnumType validates a string against a fixed set of values.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string { return "enum:" + strings.Join(t.values, "|") }

// Values returns the accepted values in declaration order.
func (t *EnumType) Values() []string { return append([]string(nil), t.values...) }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, v := range t.values {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(t.values, ", "))
}

func (t *EnumType) Format(value any) (string, error) {
	if err := t.Validate(value); err != nil {
		return "", err
	}
	return value.(string), nil
}

// NumberType validates a number against optional lower and upper bounds.
type NumberType struct {
	name         string
	min          *decimal.Decimal
	minExclusive bool
	max          *decimal.Decimal
}

func (t *NumberType) Name() string { return t.name }

// Min returns the lower bound and whether it is exclusive.
func (t *NumberType) Min() (decimal.Decimal, bool, bool) {
	if t.min == nil {
		return decimal.Zero, false, false
	}
	return *t.min, t.minExclusive, true
}

// Max returns the inclusive upper bound, if any.
func (t *NumberType) Max() (decimal.Decimal, bool) {
	if t.max == nil {
		return decimal.Zero, false
	}
	return *t.max, true
}

func (t *NumberType) Validate(value any) error {
	_, err := t.decimal(value)
	return err
}

func (t *NumberType) Format(value any) (string, error) {
	d, err := t.decimal(value)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func (t *NumberType) decimal(value any) (decimal.Decimal, error) {
	d, err := ToDecimal(value)
	if err != nil {
		return decimal.Zero, err
	}
	if t.min != nil {
		if t.minExclusive && d.LessThanOrEqual(*t.min) {
			return decimal.Zero, fmt.Errorf("must be greater than %s", t.min)
		}
		if !t.minExclusive && d.LessThan(*t.min) {
			return decimal.Zero, fmt.Errorf("must be at least %s", t.min)
		}
	}
	if t.max != nil && d.GreaterThan(*t.max) {
		return decimal.Zero, fmt.Errorf("must be at most %s", t.max)
	}
	return d, nil
}

// --- Factory Functions ---

var hundred = decimal.NewFromInt(100)

// String creates a non-empty string validator.
func String() Type { return &StringType{} }

// Enum creates a validator accepting only the given values.
func Enum(values ...string) Type { return &EnumType{values: values} }

// Positive creates a validator for numbers strictly greater than zero.
func Positive() Type {
	return &NumberType{name: "positive", min: &decimal.Zero, minExclusive: true}
}

// Percentage creates a validator for numbers in (0, 100].
func Percentage() Type {
	return &NumberType{name: "percentage", min: &decimal.Zero, minExclusive: true, max: &hundred}
}

// AtLeast creates a validator for numbers greater than or equal to min.
func AtLeast(min float64) Type {
	d := decimal.NewFromFloat(min)
	return &NumberType{name: "min:" + d.String(), min: &d}
}

// GreaterThan creates a validator for numbers strictly greater than min.
func GreaterThan(min float64) Type {
	d := decimal.NewFromFloat(min)
	return &NumberType{name: "gt:" + d.String(), min: &d, minExclusive: true}
}

// IsNumeric reports whether t validates numbers.
func IsNumeric(t Type) bool {
	_, ok := t.(*NumberType)
	return ok
}

// ParseType converts a type name back into a Type.
// Supports "string", "positive", "percentage", "enum:a|b", "min:<n>" and "gt:<n>".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)

	switch typeStr {
	case "string":
		return String(), nil
	case "positive":
		return Positive(), nil
	case "percentage":
		return Percentage(), nil
	}

	prefix, arg, found := strings.Cut(typeStr, ":")
	if !found || arg == "" {
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}

	switch prefix {
	case "enum":
		return Enum(strings.Split(arg, "|")...), nil
	case "min", "gt":
		d, err := decimal.NewFromString(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid bound in %s: %w", typeStr, err)
		}
		f, _ := d.Float64()
		if prefix == "min" {
			return AtLeast(f), nil
		}
		return GreaterThan(f), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}
