package finland

import (
	"regexp"
	"strings"

	apierrors "github.com/olgasafonova/finnish-id-mcp-server/internal/errors"
)

// BusinessIDLength is the fixed length of a Y-tunnus including the hyphen.
const BusinessIDLength = 9

// MOD11 weights for the seven number digits, leftmost first.
var businessIDWeights = [7]int{7, 9, 10, 5, 8, 4, 2}

var (
	businessIDRegex = regexp.MustCompile(`^\d{7}-\d$`)
	bareDigitsRegex = regexp.MustCompile(`^\d{8}$`)
)

// ValidateBusinessID reports whether s is a valid Finnish business ID
// (Y-tunnus) in the form NNNNNNN-C. It never panics; empty input is invalid.
func ValidateBusinessID(s string) bool {
	return CheckBusinessID(s) == nil
}

// CheckBusinessID validates s and returns a *errors.ValidationError
// describing the first failed check.
func CheckBusinessID(s string) error {
	if s == "" {
		return apierrors.NewRejection("business_id", "", apierrors.ReasonRequired, "is required")
	}
	if len(s) != BusinessIDLength {
		return apierrors.NewRejection("business_id", s, apierrors.ReasonLength, "must be 9 characters")
	}
	if s[7] != '-' {
		return apierrors.NewRejection("business_id", s, apierrors.ReasonSeparator, "character 8 must be '-'")
	}

	number := s[:7]
	if !isAllDigits(number) || !isDigit(s[8]) {
		return apierrors.NewRejection("business_id", s, apierrors.ReasonFormat, "number and check digit must be digits")
	}

	expected, ok := BusinessIDCheckDigit(number)
	if !ok {
		// Remainder 1 would need check digit 10; such IDs are never issued.
		return apierrors.NewRejection("business_id", s, apierrors.ReasonUnassignable, "no valid check digit exists for this number")
	}
	if int(s[8]-'0') != expected {
		return apierrors.NewRejection("business_id", s, apierrors.ReasonCheckDigit, "incorrect check digit")
	}

	return nil
}

// BusinessIDCheckDigit computes the MOD11 check digit for a 7-digit number.
// It returns false when the number is malformed or the remainder is 1.
func BusinessIDCheckDigit(number string) (int, bool) {
	if len(number) != 7 || !isAllDigits(number) {
		return 0, false
	}

	sum := 0
	for i, w := range businessIDWeights {
		sum += int(number[i]-'0') * w
	}

	switch remainder := sum % 11; remainder {
	case 0:
		return 0, true
	case 1:
		return 0, false
	default:
		return 11 - remainder, true
	}
}

// NormalizeBusinessID cleans up user input into the canonical NNNNNNN-C
// form: surrounding and inner spaces and an "FI" prefix are removed, and a
// hyphen is inserted into 8 bare digits. It checks format only; pass the
// result to CheckBusinessID for the check digit.
func NormalizeBusinessID(id string) (string, error) {
	cleaned := strings.TrimSpace(id)
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	cleaned = strings.TrimPrefix(cleaned, "FI")
	cleaned = strings.TrimPrefix(cleaned, "fi")

	if bareDigitsRegex.MatchString(cleaned) {
		cleaned = cleaned[:7] + "-" + cleaned[7:]
	}

	if !businessIDRegex.MatchString(cleaned) {
		return "", apierrors.NewRejection("business_id", id, apierrors.ReasonFormat,
			"invalid Finnish business ID format (expected format: 1234567-8)")
	}

	return cleaned, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAllDigits checks if a string contains only ASCII digits.
func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}
