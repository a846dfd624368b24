package cgt

import (
	"encoding/json"
	"fmt"
)

// MatchRule identifies which share identification rule matched a portion of a
// disposal. Rules apply in declaration order: same-day first, then
// bed-and-breakfast, then the Section 104 holding.
type MatchRule int

const (
	// SameDay matches a disposal against acquisitions made on the same
	// calendar date.
	SameDay MatchRule = iota
	// BedAndBreakfast matches against acquisitions made within 30 calendar
	// days after the disposal, earliest first.
	BedAndBreakfast
	// Section104 draws the remaining quantity from the pooled holding at its
	// running average cost.
	Section104
)

func (r MatchRule) String() string {
	switch r {
	case SameDay:
		return "same-day"
	case BedAndBreakfast:
		return "bed-breakfast"
	case Section104:
		return "pool"
	default:
		return "unknown"
	}
}

// ParseMatchRule parses a string into a MatchRule.
func ParseMatchRule(s string) (MatchRule, error) {
	switch s {
	case "same-day":
		return SameDay, nil
	case "bed-breakfast":
		return BedAndBreakfast, nil
	case "pool":
		return Section104, nil
	default:
		return 0, fmt.Errorf("unknown match rule: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface for MatchRule.
func (r MatchRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MatchRule.
func (r *MatchRule) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMatchRule(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
