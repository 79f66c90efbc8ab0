// Package cnab implements the fixed-width positional codec used by
// Brazilian bank remittance files. A Field describes one positional
// slot, a Spec describes a whole record layout (with per-bank field
// replacements), and a File assembles records into the final CRLF
// separated byte stream.
package cnab

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// Kind is the logical type of a positional slot.
type Kind int

const (
	// KindInt is zero-padded on the left.
	KindInt Kind = iota
	// KindText is space-padded on the right and truncated to size.
	KindText
	// KindDecimal is a fixed-point value stored as integer centavos
	// (or finer), zero-padded on the left.
	KindDecimal
)

// Field describes a single positional slot in a CNAB record.
type Field struct {
	Name     string
	Kind     Kind
	Size     int
	Decimals int
	// Default applies when no value resolves for the field. A nil
	// Default makes the field mandatory.
	Default any
}

// Num declares a mandatory zero-padded integer slot.
func Num(name string, size int) Field {
	return Field{Name: name, Kind: KindInt, Size: size}
}

// Text declares a mandatory space-padded text slot.
func Text(name string, size int) Field {
	return Field{Name: name, Kind: KindText, Size: size}
}

// Money declares a fixed-point decimal slot; the fractional digits are
// appended to the integer size when computing the effective width.
func Money(name string, size, decimals int) Field {
	return Field{Name: name, Kind: KindDecimal, Size: size, Decimals: decimals}
}

// Filler declares an unnamed blank slot. Fillers never resolve values.
func Filler(size int) Field {
	return Field{Kind: KindText, Size: size, Default: ""}
}

// Def returns a copy of the field carrying a default value.
func (f Field) Def(v any) Field {
	f.Default = v
	return f
}

// Width is the effective serialized width of the slot.
func (f Field) Width() int {
	return f.Size + f.Decimals
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldASCII folds accented characters to their ASCII base and drops
// anything that still falls outside ASCII.
func foldASCII(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)
}

// Format renders value into the bank-exact ASCII slice of the field.
func (f Field) Format(value any) (string, error) {
	if value == nil {
		value = f.Default
	}
	if value == nil {
		return "", &domain.ErrMissingValue{Field: f.Name}
	}

	switch f.Kind {
	case KindInt:
		return f.formatInt(value)
	case KindText:
		return f.formatText(value)
	case KindDecimal:
		return f.formatDecimal(value)
	}
	return "", fmt.Errorf("cnab: field %q has unknown kind %d", f.Name, f.Kind)
}

func (f Field) formatInt(value any) (string, error) {
	var digits string
	switch v := value.(type) {
	case int:
		digits = strconv.Itoa(v)
	case int64:
		digits = strconv.FormatInt(v, 10)
	case string:
		digits = domain.OnlyDigits(v)
		if digits == "" {
			digits = "0"
		}
	default:
		return "", fmt.Errorf("cnab: field %q: cannot format %T as integer", f.Name, value)
	}
	if len(digits) > f.Size {
		return "", &domain.ErrFieldTooLong{Field: f.Name, Value: digits, Size: f.Size}
	}
	return strings.Repeat("0", f.Size-len(digits)) + digits, nil
}

func (f Field) formatText(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("cnab: field %q: cannot format %T as text", f.Name, value)
	}
	s = foldASCII(s)
	if len(s) > f.Size {
		return s[:f.Size], nil
	}
	return s + strings.Repeat(" ", f.Size-len(s)), nil
}

func (f Field) formatDecimal(value any) (string, error) {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return "", fmt.Errorf("cnab: field %q: %w", f.Name, err)
		}
		d = parsed
	default:
		return "", fmt.Errorf("cnab: field %q: cannot format %T as decimal", f.Name, value)
	}
	if d.IsNegative() {
		return "", &domain.ErrNegativeNotAllowed{Field: f.Name, Value: d.String()}
	}
	units := d.Shift(int32(f.Decimals)).Floor()
	digits := units.BigInt().String()
	width := f.Width()
	if len(digits) > width {
		return "", &domain.ErrFieldTooLong{Field: f.Name, Value: digits, Size: width}
	}
	return strings.Repeat("0", width-len(digits)) + digits, nil
}
