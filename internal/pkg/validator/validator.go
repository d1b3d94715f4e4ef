package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Month codes scope every recompute and storage operation: "YYYY-MM".
var monthCodeRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func IsValidMonthCode(month string) bool {
	return monthCodeRegex.MatchString(month)
}

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizeCardNumber strips everything but digits. Ingestion already stores
// normalized card numbers; this is re-applied on read so grouping never splits
// one card across formatting variants.
func NormalizeCardNumber(card string) string {
	return nonDigitRegex.ReplaceAllString(card, "")
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}
