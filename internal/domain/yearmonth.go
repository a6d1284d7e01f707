package domain

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YearMonth is a calendar month without day-of-month semantics.
// The zero value is not a valid month; use IsZero to detect it.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// NewYearMonth creates a YearMonth, normalising months outside 1-12
func NewYearMonth(year, month int) YearMonth {
	return fromIndex(year*12 + month - 1)
}

// ParseYearMonth parses the "MM/YYYY" representation used by contribution records
func ParseYearMonth(s string) (YearMonth, error) {
	if len(s) != 7 || s[2] != '/' {
		return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "expected MM/YYYY")
	}
	for i := 0; i < len(s); i++ {
		if i != 2 && (s[i] < '0' || s[i] > '9') {
			return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "month and year must be digits")
		}
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil {
		return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "month is not numeric")
	}
	year, err := strconv.Atoi(s[3:])
	if err != nil {
		return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "year is not numeric")
	}
	if month < 1 || month > 12 {
		return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "month must be between 01 and 12")
	}
	if year < 1 {
		return YearMonth{}, NewValidationError(KindInvalidDateFormat, "month_year", s, "year must be positive")
	}
	return YearMonth{Year: year, Month: month}, nil
}

// MustParseYearMonth is like ParseYearMonth but panics on error. Intended for tests and fixtures.
func MustParseYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

func fromIndex(idx int) YearMonth {
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: month + 1}
}

func (ym YearMonth) index() int {
	return ym.Year*12 + ym.Month - 1
}

// IsZero reports whether ym is the zero value
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// AddMonths returns the month n months after ym (n may be negative)
func (ym YearMonth) AddMonths(n int) YearMonth {
	return fromIndex(ym.index() + n)
}

// Prev returns the preceding month
func (ym YearMonth) Prev() YearMonth {
	return ym.AddMonths(-1)
}

// Next returns the following month
func (ym YearMonth) Next() YearMonth {
	return ym.AddMonths(1)
}

// MonthsUntil returns the signed number of months from ym to other
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return other.index() - ym.index()
}

// Compare returns -1, 0 or +1 depending on whether ym is before, equal to or after other
func (ym YearMonth) Compare(other YearMonth) int {
	switch d := ym.index() - other.index(); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.index() < other.index()
}

// After reports whether ym is strictly later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.index() > other.index()
}

// String formats ym as "MM/YYYY"
func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d/%04d", ym.Month, ym.Year)
}

// MarshalText implements encoding.TextMarshaler so YearMonth serialises as "MM/YYYY"
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (ym *YearMonth) UnmarshalText(text []byte) error {
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (ym YearMonth) MarshalYAML() (interface{}, error) {
	return ym.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (ym *YearMonth) UnmarshalYAML(value *yaml.Node) error {
	return ym.UnmarshalText([]byte(value.Value))
}
