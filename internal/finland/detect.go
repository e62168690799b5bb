package finland

import (
	"strings"

	apierrors "github.com/olgasafonova/finnish-id-mcp-server/internal/errors"
)

// Kind identifies which Finnish identifier format an input is routed to.
type Kind string

const (
	KindSSN        Kind = "ssn"
	KindBusinessID Kind = "business_id"
)

// Name returns a human-readable name for the kind.
func (k Kind) Name() string {
	switch k {
	case KindSSN:
		return "personal identity code"
	case KindBusinessID:
		return "business ID"
	default:
		return string(k)
	}
}

// DetectKind routes an input the way the command-line caller does: 9
// characters with the first hyphen at index 7 is a business ID, anything
// else is treated as an SSN.
func DetectKind(s string) Kind {
	if len(s) == BusinessIDLength && strings.IndexByte(s, '-') == 7 {
		return KindBusinessID
	}
	return KindSSN
}

// Result is the outcome of validating a single identifier.
type Result struct {
	Input   string           `json:"input"` // masked for SSNs
	Kind    Kind             `json:"kind"`
	Valid   bool             `json:"valid"`
	Reason  apierrors.Reason `json:"reason,omitempty"`
	Message string           `json:"message"`
}

// Validate detects the identifier kind and validates it.
func Validate(s string) Result {
	return ValidateAs(s, DetectKind(s))
}

// ValidateAs validates s as the given kind.
func ValidateAs(s string, kind Kind) Result {
	var err error
	result := Result{Kind: kind}

	switch kind {
	case KindBusinessID:
		result.Input = s
		err = CheckBusinessID(s)
	default:
		result.Kind = KindSSN
		result.Input = MaskSSN(s)
		err = CheckSSN(s)
	}

	if err == nil {
		result.Valid = true
		result.Message = "Valid Finnish " + result.Kind.Name()
		return result
	}

	result.Reason = apierrors.ReasonOf(err)
	result.Message = reasonMessage(result.Reason)
	return result
}

func reasonMessage(r apierrors.Reason) string {
	switch r {
	case apierrors.ReasonRequired:
		return "Input is empty"
	case apierrors.ReasonLength:
		return "Invalid length"
	case apierrors.ReasonFormat:
		return "Invalid characters"
	case apierrors.ReasonCentury:
		return "Invalid century marker"
	case apierrors.ReasonDate:
		return "Invalid birth date"
	case apierrors.ReasonSeparator:
		return "Missing hyphen separator"
	case apierrors.ReasonCheckCharacter:
		return "Invalid check character"
	case apierrors.ReasonCheckDigit:
		return "Invalid check digit"
	case apierrors.ReasonUnassignable:
		return "Number cannot carry a valid check digit"
	default:
		return "Invalid"
	}
}
