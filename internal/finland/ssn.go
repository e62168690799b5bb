package finland

import (
	"strconv"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/finnish-id-mcp-server/internal/errors"
)

// SSNLength is the fixed length of a personal identity code (henkilötunnus).
const SSNLength = 11

// ssnCheckChars maps (payload mod 31) to the check character.
// G, I, O and Q are omitted to avoid confusion with digits.
const ssnCheckChars = "0123456789ABCDEFHJKLMNPRSTUVWXY"

// Sex derived from the parity of the individual number.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// SSN holds the decoded fields of a valid personal identity code.
type SSN struct {
	BirthDate        time.Time
	CenturyMarker    byte
	IndividualNumber string
	CheckCharacter   byte
	Sex              Sex
}

// centuryBase returns the base year for a century marker.
// Only '+', '-' and 'A' are recognised; lowercase 'a' is rejected.
func centuryBase(marker byte) (int, bool) {
	switch marker {
	case '+':
		return 1800, true
	case '-':
		return 1900, true
	case 'A':
		return 2000, true
	}
	return 0, false
}

// ValidateSSN reports whether s is a valid Finnish personal identity code
// in the form DDMMYYCNNNX. It never panics; empty input is invalid.
func ValidateSSN(s string) bool {
	return CheckSSN(s) == nil
}

// CheckSSN validates s and returns a *errors.ValidationError describing the
// first failed check. The identifier itself is never included in the error.
func CheckSSN(s string) error {
	_, err := ParseSSN(s)
	return err
}

// ParseSSN validates s and decodes its fields.
func ParseSSN(s string) (SSN, error) {
	if s == "" {
		return SSN{}, apierrors.NewRejection("ssn", "", apierrors.ReasonRequired, "is required")
	}
	if len(s) != SSNLength {
		return SSN{}, apierrors.NewRejection("ssn", "", apierrors.ReasonLength, "must be 11 characters")
	}

	birth, err := decodeSSNPayload(s[:10])
	if err != nil {
		return SSN{}, err
	}

	individual := s[7:10]
	check := s[10]
	expected, ok := SSNCheckCharacter(s[0:6] + individual)
	if !ok || check != expected {
		return SSN{}, apierrors.NewRejection("ssn", "", apierrors.ReasonCheckCharacter, "incorrect check character")
	}

	sex := SexFemale
	if (individual[2]-'0')%2 == 1 {
		sex = SexMale
	}

	return SSN{
		BirthDate:        birth,
		CenturyMarker:    s[6],
		IndividualNumber: individual,
		CheckCharacter:   check,
		Sex:              sex,
	}, nil
}

// CompleteSSN appends the check character to a 10-character payload
// (DDMMYY, century marker, individual number). The payload gets the same
// marker, digit and calendar checks as a full code, so the result always
// passes ValidateSSN.
func CompleteSSN(payload string) (string, error) {
	if payload == "" {
		return "", apierrors.NewRejection("ssn", "", apierrors.ReasonRequired, "is required")
	}
	if len(payload) != SSNLength-1 {
		return "", apierrors.NewRejection("ssn", "", apierrors.ReasonLength, "payload must be 10 characters")
	}
	if _, err := decodeSSNPayload(payload); err != nil {
		return "", err
	}

	check, _ := SSNCheckCharacter(payload[0:6] + payload[7:10])
	return payload + string(check), nil
}

// decodeSSNPayload checks the first 10 characters of a code and returns
// the birth date.
func decodeSSNPayload(p string) (time.Time, error) {
	datePart := p[0:6]
	individual := p[7:10]

	base, ok := centuryBase(p[6])
	if !ok {
		return time.Time{}, apierrors.NewRejection("ssn", "", apierrors.ReasonCentury, "century marker must be '+', '-' or 'A'")
	}

	if !isAllDigits(datePart) || !isAllDigits(individual) {
		return time.Time{}, apierrors.NewRejection("ssn", "", apierrors.ReasonFormat, "date and individual number must be digits")
	}

	day := twoDigits(datePart[0:2])
	month := twoDigits(datePart[2:4])
	year := base + twoDigits(datePart[4:6])

	birth, ok := calendarDate(year, month, day)
	if !ok {
		return time.Time{}, apierrors.NewRejection("ssn", "", apierrors.ReasonDate, "birth date is not a calendar date")
	}
	return birth, nil
}

// SSNCheckCharacter returns the check character for a 9-digit payload
// (DDMMYY followed by the individual number).
func SSNCheckCharacter(payload string) (byte, bool) {
	if len(payload) != 9 || !isAllDigits(payload) {
		return 0, false
	}
	n, err := strconv.Atoi(payload)
	if err != nil {
		return 0, false
	}
	return ssnCheckChars[n%31], true
}

// MaskSSN hides the individual number and check character so an identity
// code can be logged or echoed back.
func MaskSSN(s string) string {
	if len(s) != SSNLength {
		return strings.Repeat("*", len(s))
	}
	return s[:7] + "****"
}

// calendarDate builds a UTC date and rejects values that time.Date would
// normalise into a different day (Feb 30, month 13, day 0 and so on).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
