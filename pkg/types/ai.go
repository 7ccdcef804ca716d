package types

// ExtractResult is the extract flow's caller contract.
type ExtractResult struct {
	Success bool   `json:"success"`
	Rules   []Rule `json:"rules"`
	Message string `json:"message"`
}

// ConvertResult is the convert flow's caller contract. A failed conversion is
// still a successful response carrying empty content (soft failure).
type ConvertResult struct {
	Success          bool   `json:"success"`
	ConvertedContent string `json:"converted_content"`
	AppliedRules     []Rule `json:"applied_rules"`
	Message          string `json:"message"`
}
