package finland

// ValidateSSNArgs contains parameters for validating a personal identity code
type ValidateSSNArgs struct {
	SSN string `json:"ssn" jsonschema:"Finnish personal identity code (henkilötunnus), e.g., 131052-308T"`
}

// ValidateSSNResult is the result of validating a personal identity code
type ValidateSSNResult struct {
	Valid   bool   `json:"valid"`
	SSN     string `json:"ssn"` // masked
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`

	// Decoded fields, only set when valid
	BirthDate     string `json:"birth_date,omitempty"`
	CenturyMarker string `json:"century_marker,omitempty"`
	Sex           string `json:"sex,omitempty"`
}

// ValidateBusinessIDArgs contains parameters for validating a business ID
type ValidateBusinessIDArgs struct {
	BusinessID string `json:"business_id" jsonschema:"Finnish business ID (Y-tunnus), e.g., 2464491-9"`
	Normalize  bool   `json:"normalize,omitempty" jsonschema:"Strip spaces and FI prefix and insert the hyphen before validating"`
}

// ValidateBusinessIDResult is the result of validating a business ID
type ValidateBusinessIDResult struct {
	Valid      bool   `json:"valid"`
	BusinessID string `json:"business_id"`
	Reason     string `json:"reason,omitempty"`
	Message    string `json:"message"`
}

// ValidateIDArgs contains parameters for validating an identifier of unknown kind
type ValidateIDArgs struct {
	Input string `json:"input" jsonschema:"Personal identity code or business ID; the kind is detected from the format"`
}

// CheckCharacterArgs contains parameters for computing a check character or digit
type CheckCharacterArgs struct {
	Kind    string `json:"kind" jsonschema:"ssn or business_id"`
	Payload string `json:"payload" jsonschema:"9 digits (DDMMYY + individual number) for ssn, 7 digits for business_id"`
}

// CheckCharacterResult is the computed check character and completed identifier
type CheckCharacterResult struct {
	Kind           string `json:"kind"`
	CheckCharacter string `json:"check_character,omitempty"`
	Assignable     bool   `json:"assignable"`
}
