package types

// Rule is a stored description of one Markdown style pattern. At most one
// rule per Type survives merging.
type Rule struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Pattern     string   `json:"pattern"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

// RuleBody is the mutable part of a rule, without identity or timestamps.
// The merge engine trades in rule bodies.
type RuleBody struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Pattern     string   `json:"pattern"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// DefaultRuleName builds the display label used when the model returns a rule
// without one.
func DefaultRuleName(ruleType string) string {
	return ruleType + "规则"
}

// Known style categories. The extraction prompt lists these as a guide, the
// model may return others.
const (
	RULE_TYPE_HEADING = "heading"
	RULE_TYPE_BOLD    = "bold"
	RULE_TYPE_ITALIC  = "italic"
	RULE_TYPE_QUOTE   = "quote"
	RULE_TYPE_CODE    = "code"
	RULE_TYPE_LINK    = "link"
	RULE_TYPE_LIST    = "list"
	RULE_TYPE_TABLE   = "table"
)

var KnownRuleTypes = []string{
	RULE_TYPE_HEADING,
	RULE_TYPE_BOLD,
	RULE_TYPE_ITALIC,
	RULE_TYPE_QUOTE,
	RULE_TYPE_CODE,
	RULE_TYPE_LINK,
	RULE_TYPE_LIST,
	RULE_TYPE_TABLE,
}

// RuleSet groups rules by reference. Deleting a rule set never deletes the
// rules it points to.
type RuleSet struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RuleIDs     []string `json:"rule_ids"`
	CreatedAt   int64    `json:"created_at"`
}

// ConversionHistory records one finished conversion. Immutable once written.
type ConversionHistory struct {
	ID               string   `json:"id"`
	OriginalContent  string   `json:"original_content"`
	ConvertedContent string   `json:"converted_content"`
	AppliedRuleIDs   []string `json:"applied_rule_ids"`
	CreatedAt        int64    `json:"created_at"`
}
