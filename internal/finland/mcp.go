package finland

import (
	"context"
	"log/slog"
	"strings"

	apierrors "github.com/olgasafonova/finnish-id-mcp-server/internal/errors"
)

// Validator exposes the Finnish identifier checks to MCP tool handlers.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	logger *slog.Logger
}

// ValidatorOption configures the Validator
type ValidatorOption func(*Validator)

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// NewValidator creates a new Validator
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{logger: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateSSNMCP wraps ParseSSN for MCP tool handlers.
// An invalid code is a successful call with Valid=false.
func (v *Validator) ValidateSSNMCP(ctx context.Context, args ValidateSSNArgs) (ValidateSSNResult, error) {
	if args.SSN == "" {
		return ValidateSSNResult{}, apierrors.NewValidationError("ssn", "", "is required")
	}

	result := ValidateSSNResult{SSN: MaskSSN(args.SSN)}

	ssn, err := ParseSSN(args.SSN)
	if err != nil {
		reason := apierrors.ReasonOf(err)
		result.Reason = string(reason)
		result.Message = reasonMessage(reason)
		v.logger.DebugContext(ctx, "SSN rejected", "ssn", result.SSN, "reason", reason)
		return result, nil
	}

	result.Valid = true
	result.Message = "Valid Finnish " + KindSSN.Name()
	result.BirthDate = ssn.BirthDate.Format("2006-01-02")
	result.CenturyMarker = string(ssn.CenturyMarker)
	result.Sex = string(ssn.Sex)
	return result, nil
}

// ValidateBusinessIDMCP wraps CheckBusinessID for MCP tool handlers
func (v *Validator) ValidateBusinessIDMCP(ctx context.Context, args ValidateBusinessIDArgs) (ValidateBusinessIDResult, error) {
	if args.BusinessID == "" {
		return ValidateBusinessIDResult{}, apierrors.NewValidationError("business_id", "", "is required")
	}

	id := args.BusinessID
	if args.Normalize {
		normalized, err := NormalizeBusinessID(id)
		if err != nil {
			reason := apierrors.ReasonOf(err)
			return ValidateBusinessIDResult{
				BusinessID: id,
				Reason:     string(reason),
				Message:    reasonMessage(reason),
			}, nil
		}
		id = normalized
	}

	r := ValidateAs(id, KindBusinessID)
	if !r.Valid {
		v.logger.DebugContext(ctx, "Business ID rejected", "business_id", id, "reason", r.Reason)
	}
	return ValidateBusinessIDResult{
		Valid:      r.Valid,
		BusinessID: id,
		Reason:     string(r.Reason),
		Message:    r.Message,
	}, nil
}

// ValidateIDMCP detects the identifier kind and validates it
func (v *Validator) ValidateIDMCP(ctx context.Context, args ValidateIDArgs) (Result, error) {
	if args.Input == "" {
		return Result{}, apierrors.NewValidationError("input", "", "is required")
	}

	r := Validate(args.Input)
	v.logger.DebugContext(ctx, "Identifier validated", "kind", r.Kind, "valid", r.Valid, "reason", r.Reason)
	return r, nil
}

// CheckCharacterMCP computes the check character of an SSN payload or the
// check digit of a business ID number.
func (v *Validator) CheckCharacterMCP(ctx context.Context, args CheckCharacterArgs) (CheckCharacterResult, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(args.Kind)))

	switch kind {
	case KindSSN:
		c, ok := SSNCheckCharacter(args.Payload)
		if !ok {
			return CheckCharacterResult{}, apierrors.NewValidationError("payload", "", "must be 9 digits")
		}
		return CheckCharacterResult{Kind: string(kind), CheckCharacter: string(c), Assignable: true}, nil

	case KindBusinessID:
		if len(args.Payload) != 7 || !isAllDigits(args.Payload) {
			return CheckCharacterResult{}, apierrors.NewValidationError("payload", args.Payload, "must be 7 digits")
		}
		d, ok := BusinessIDCheckDigit(args.Payload)
		if !ok {
			return CheckCharacterResult{Kind: string(kind), Assignable: false}, nil
		}
		return CheckCharacterResult{Kind: string(kind), CheckCharacter: string(rune('0' + d)), Assignable: true}, nil

	default:
		return CheckCharacterResult{}, apierrors.NewValidationError("kind", args.Kind, "must be 'ssn' or 'business_id'")
	}
}
