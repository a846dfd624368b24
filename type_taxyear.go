package cgt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TaxYear is a UK tax year, running from 6 April of its starting calendar
// year to 5 April of the next. It is identified by its starting year:
// TaxYear(2024) is the year labelled "2024-2025".
type TaxYear int

// TaxYearOf returns the UK tax year containing the given date. 5 April
// belongs to the ending tax year, 6 April starts the next one.
func TaxYearOf(d Date) TaxYear {
	start := NewDate(d.Year(), time.April, 6)
	if d.Before(start) {
		return TaxYear(d.Year() - 1)
	}
	return TaxYear(d.Year())
}

// Start returns the first day of the tax year (6 April).
func (y TaxYear) Start() Date { return NewDate(int(y), time.April, 6) }

// End returns the last day of the tax year (5 April of the next calendar year).
func (y TaxYear) End() Date { return NewDate(int(y)+1, time.April, 5) }

// Contains reports whether the given date falls inside the tax year.
func (y TaxYear) Contains(d Date) bool { return TaxYearOf(d) == y }

// Label returns the conventional label of the tax year, e.g. "2024-2025".
func (y TaxYear) Label() string { return fmt.Sprintf("%d-%d", int(y), int(y)+1) }

func (y TaxYear) String() string { return y.Label() }

// ParseTaxYear parses a tax year from its label ("2024-2025") or from its
// bare starting year ("2024").
func ParseTaxYear(s string) (TaxYear, error) {
	first, second, found := strings.Cut(s, "-")
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, fmt.Errorf("invalid tax year %q: %w", s, err)
	}
	if found {
		end, err := strconv.Atoi(second)
		if err != nil {
			return 0, fmt.Errorf("invalid tax year %q: %w", s, err)
		}
		if end != start+1 {
			return 0, fmt.Errorf("invalid tax year %q: %d is not the year after %d", s, end, start)
		}
	}
	return TaxYear(start), nil
}

// MarshalJSON implements the json.Marshaler interface for TaxYear.
func (y TaxYear) MarshalJSON() ([]byte, error) {
	return json.Marshal(y.Label())
}

// UnmarshalJSON implements the json.Unmarshaler interface for TaxYear.
func (y *TaxYear) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTaxYear(s)
	if err != nil {
		return err
	}
	*y = parsed
	return nil
}
