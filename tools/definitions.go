package tools

// AllTools contains all tool specifications for the Finnish ID MCP server.
// Tool descriptions follow a structured format for LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	// ==========================================================================
	// VALIDATION TOOLS
	// ==========================================================================
	{
		Name:     "finland_validate_ssn",
		Method:   "ValidateSSN",
		Title:    "Validate Finnish Personal Identity Code",
		Category: "validate",
		Kind:     "ssn",
		Description: `Validate a Finnish personal identity code (henkilötunnus, HETU) such as 131052-308T.

USE WHEN: User asks "is this Finnish SSN valid", "check this henkilötunnus", "what birth date is in this HETU".

NOT FOR: Business IDs / Y-tunnus (use finland_validate_business_id).

PARAMETERS:
- ssn: 11-character code DDMMYYCNNNX, century marker '+', '-' or 'A' (required)

RETURNS: valid flag, rejection reason, and for valid codes the birth date, century marker and sex. The code is echoed back masked.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "finland_validate_business_id",
		Method:   "ValidateBusinessID",
		Title:    "Validate Finnish Business ID",
		Category: "validate",
		Kind:     "business_id",
		Description: `Validate a Finnish business ID (Y-tunnus) such as 2464491-9 using the MOD11 check digit.

USE WHEN: User asks "is this Y-tunnus valid", "check Finnish company ID", "verify business ID".

NOT FOR: Personal identity codes (use finland_validate_ssn).

PARAMETERS:
- business_id: NNNNNNN-C (required)
- normalize: strip spaces and FI prefix and insert the hyphen first (default false)

RETURNS: valid flag, the (normalized) business ID and rejection reason.`,
		ReadOnly:   true,
		Idempotent: true,
	},
	{
		Name:     "finland_validate_id",
		Method:   "ValidateID",
		Title:    "Validate Finnish Identifier",
		Category: "validate",
		Kind:     "any",
		Description: `Validate a Finnish identifier when it is unclear whether it is a personal identity code or a business ID.

USE WHEN: User pastes an identifier without saying what it is.

NOT FOR: Known kinds; prefer finland_validate_ssn or finland_validate_business_id.

PARAMETERS:
- input: the identifier (required). 9 characters with a hyphen at position 8 is treated as a business ID, anything else as a personal identity code.

RETURNS: detected kind, valid flag, rejection reason and message.`,
		ReadOnly:   true,
		Idempotent: true,
	},

	// ==========================================================================
	// COMPUTE TOOLS
	// ==========================================================================
	{
		Name:     "finland_compute_check_character",
		Method:   "CheckCharacter",
		Title:    "Compute Finnish Check Character",
		Category: "compute",
		Kind:     "any",
		Description: `Compute the check character of a personal identity code or the check digit of a business ID.

USE WHEN: User asks "what should the last character be", "complete this Y-tunnus", "generate test data".

NOT FOR: Validating a complete identifier.

PARAMETERS:
- kind: "ssn" or "business_id" (required)
- payload: 9 digits DDMMYY+NNN for ssn, 7 digits for business_id (required)

RETURNS: check character and whether the number can carry one (business IDs with MOD11 remainder 1 cannot).`,
		ReadOnly:   true,
		Idempotent: true,
	},
}

// ToolsByCategory returns the specs in the given category.
func ToolsByCategory(category string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Category == category {
			out = append(out, spec)
		}
	}
	return out
}

// ToolsByKind returns the specs handling the given identifier kind.
func ToolsByKind(kind string) []ToolSpec {
	var out []ToolSpec
	for _, spec := range AllTools {
		if spec.Kind == kind {
			out = append(out, spec)
		}
	}
	return out
}
