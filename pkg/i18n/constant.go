package i18n

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const DEFAULT_LANG = "en"

const (
	ERROR_INTERNAL        = "error.internal"
	ERROR_NOT_FOUND       = "error.notfound"
	ERROR_INVALIDARGUMENT = "error.invalidargument"
	ERROR_EXIST           = "error.exist"
	ERROR_FORBIDDEN       = "error.forbidden"
	ERROR_MORE_TAHN_MAX   = "error.moreThanMax"

	ERROR_AI_NO_PROVIDER       = "error.ai.no.provider"
	ERROR_AI_MALFORMED         = "error.ai.malformed.response"
	ERROR_AI_EMPTY_EXTRACTION  = "error.ai.empty.extraction"
	ERROR_AI_CONTENT_TOO_LARGE = "error.ai.content.too.large"
	ERROR_RULE_NOT_FOUND       = "error.rule.notfound"
	ERROR_RULESET_NOT_FOUND    = "error.ruleset.notfound"
)
