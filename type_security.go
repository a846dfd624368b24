package cgt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// cusipRegex checks for the basic structure: 8 alphanumeric characters and 1 digit.
var cusipRegex = regexp.MustCompile(`^[A-Z0-9]{8}[0-9]$`)

// tickerRegex checks for an exchange ticker: 1 to 12 uppercase alphanumeric
// characters, dots and dashes allowed inside.
var tickerRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,11}$`)

// IDKind tags which identification scheme a security identifier follows.
type IDKind int

const (
	// ISIN is the ISO 6166 International Securities Identification Number.
	ISIN IDKind = iota
	// CUSIP is the north-american Committee on Uniform Security
	// Identification Procedures number.
	CUSIP
	// Ticker is a plain exchange ticker symbol, for brokers that export
	// neither an ISIN nor a CUSIP.
	Ticker
)

func (k IDKind) String() string {
	switch k {
	case ISIN:
		return "isin"
	case CUSIP:
		return "cusip"
	case Ticker:
		return "ticker"
	default:
		return "unknown"
	}
}

// ParseIDKind parses a string into an IDKind.
func ParseIDKind(s string) (IDKind, error) {
	switch s {
	case "isin":
		return ISIN, nil
	case "cusip":
		return CUSIP, nil
	case "ticker":
		return Ticker, nil
	default:
		return 0, fmt.Errorf("unknown identifier kind: %q", s)
	}
}

// AssetClass is a coarse classification of a security.
type AssetClass int

const (
	Stock AssetClass = iota
	ETF
	Fund
	CashAsset
)

func (c AssetClass) String() string {
	switch c {
	case Stock:
		return "stock"
	case ETF:
		return "etf"
	case Fund:
		return "fund"
	case CashAsset:
		return "cash"
	default:
		return "unknown"
	}
}

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch s {
	case "stock", "":
		return Stock, nil
	case "etf":
		return ETF, nil
	case "fund":
		return Fund, nil
	case "cash":
		return CashAsset, nil
	default:
		return 0, fmt.Errorf("unknown asset class: %q", s)
	}
}

// Security represents a tradeable asset, such as a stock, ETF or fund.
// A Security is immutable once constructed; the identifier together with its
// kind uniquely determines the security within one calculation run.
type Security struct {
	id       string     // the identifier in the scheme given by kind
	kind     IDKind     // the identification scheme of id
	name     string     // human friendly display name
	class    AssetClass // coarse asset classification
	exchange string     // listing exchange, informational only
}

// NewSecurity creates a Security after validating the identifier against its
// kind (check digit included for ISIN and CUSIP).
func NewSecurity(kind IDKind, id, name string, class AssetClass, exchange string) (Security, error) {
	switch kind {
	case ISIN:
		if err := ValidateISIN(id); err != nil {
			return Security{}, fmt.Errorf("invalid ISIN %q: %w", id, err)
		}
	case CUSIP:
		if err := ValidateCUSIP(id); err != nil {
			return Security{}, fmt.Errorf("invalid CUSIP %q: %w", id, err)
		}
	case Ticker:
		if !tickerRegex.MatchString(id) {
			return Security{}, fmt.Errorf("invalid ticker %q: must be 1 to 12 uppercase alphanumeric characters", id)
		}
	default:
		return Security{}, fmt.Errorf("unknown identifier kind %d", kind)
	}
	return Security{id: id, kind: kind, name: name, class: class, exchange: exchange}, nil
}

// ID returns the security's identifier.
func (s Security) ID() string { return s.id }

// Kind returns the identification scheme of the security's identifier.
func (s Security) Kind() IDKind { return s.kind }

// Name returns the human friendly display name of the security.
func (s Security) Name() string { return s.name }

// Class returns the asset classification of the security.
func (s Security) Class() AssetClass { return s.class }

// Exchange returns the listing exchange of the security.
func (s Security) Exchange() string { return s.exchange }

// Key returns the unique key of the security within a calculation run.
func (s Security) Key() string { return s.kind.String() + ":" + s.id }

// String implements the fmt.Stringer interface.
func (s Security) String() string {
	if s.name != "" {
		return s.name
	}
	return s.id
}

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	// 1. Length validation
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}

	// 2. Format validation
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// 3. Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// 4. Apply a variation of the Luhn algorithm
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit, _ := strconv.Atoi(string(digits[i]))

		if isSecond {
			digit *= 2
		}

		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	// 5. Validate the check digit
	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(isin[11]))

	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}

	return nil
}

// ValidateCUSIP checks if a string is a validly formatted CUSIP.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateCUSIP(cusip string) error {
	// 1. Length validation
	if len(cusip) != 9 {
		return fmt.Errorf("invalid length: must be 9 characters, got %d", len(cusip))
	}

	// 2. Format validation
	if !cusipRegex.MatchString(cusip) {
		return fmt.Errorf("invalid format: must be 8 uppercase alphanumeric chars and 1 digit")
	}

	// 3. Compute the check digit over the first 8 characters.
	sum := 0
	for i, char := range cusip[:8] {
		var v int
		switch {
		case char >= '0' && char <= '9':
			v = int(char - '0')
		case char >= 'A' && char <= 'Z':
			v = int(char-'A') + 10
		}
		if i%2 == 1 {
			v *= 2
		}
		sum += (v / 10) + (v % 10)
	}

	// 4. Validate the check digit
	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit, _ := strconv.Atoi(string(cusip[8]))

	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}

	return nil
}
