package ai

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/pkg/types"
)

// Prompt variables shared by the extract/convert/merge builders.
const (
	PROMPT_VAR_CONTENT      = "${content}"
	PROMPT_VAR_RULES        = "${rules}"
	PROMPT_VAR_TARGET_STYLE = "${target_style}"
	PROMPT_VAR_NEW_RULE     = "${new_rule}"
	PROMPT_VAR_OLD_RULES    = "${old_rules}"
)

const PROMPT_EXTRACT_SYSTEM_CN = `你是一个 Markdown 格式规则分析专家。用户会提供一段 Markdown 文本，你需要从中归纳出文本所使用的格式规则。
常见的规则类别包括（但不限于）：heading（标题）、bold（加粗）、italic（斜体）、quote（引用）、code（代码）、link（链接）、list（列表）、table（表格）。
你的回答必须是一个 JSON 对象，不要包含任何 JSON 之外的说明文字，结构如下：
{"rules":[{"type":"heading","name":"标题规则","pattern":"## {text}","description":"二级标题使用两个井号","examples":["## 示例标题"]}]}
pattern 中使用 {text} 占位符表示可变文本。每个类别至多输出一条规则。`

const PROMPT_EXTRACT_SYSTEM_EN = `You are a Markdown style analyst. The user provides a Markdown document and you infer the formatting rules it follows.
Common rule categories include (not limited to): heading, bold, italic, quote, code, link, list, table.
Respond with a single JSON object and nothing else, shaped as:
{"rules":[{"type":"heading","name":"heading rule","pattern":"## {text}","description":"second level headings use two hashes","examples":["## Sample"]}]}
Use the {text} placeholder in pattern for variable text. Emit at most one rule per category.`

const PROMPT_EXTRACT_USER_CN = `请分析以下内容的格式规则：

${content}`

const PROMPT_EXTRACT_USER_EN = `Infer the formatting rules of the following content:

${content}`

const PROMPT_CONVERT_SYSTEM_CN = `你是一个 Markdown 排版助手。请按照给定的格式规则重写用户提供的文本，保持原文语义不变，只调整格式。
你的回答必须是一个 JSON 对象，不要包含任何 JSON 之外的说明文字，结构如下：
{"converted_content":"...","applied_rule_ids":["..."],"summary":"..."}
applied_rule_ids 填写你实际应用到的规则 id。`

const PROMPT_CONVERT_SYSTEM_EN = `You are a Markdown formatting assistant. Rewrite the user's text so it follows the given style rules, changing formatting only, never meaning.
Respond with a single JSON object and nothing else, shaped as:
{"converted_content":"...","applied_rule_ids":["..."],"summary":"..."}
applied_rule_ids lists the ids of the rules you actually applied.`

const PROMPT_CONVERT_USER_CN = `格式规则：
${rules}

目标风格补充说明：${target_style}

需要转换的内容：

${content}`

const PROMPT_CONVERT_USER_EN = `Style rules:
${rules}

Additional target style hint: ${target_style}

Content to convert:

${content}`

const PROMPT_MERGE_SYSTEM_CN = `你是一个格式规则维护助手。同一类别只保留一条规则，现在有一条新规则与若干已有规则类别相同，请将它们合并为一条。
合并策略：新规则的 name 与 description 优先；pattern 需要扩展以兼容旧规则记录过的写法，而不是直接替换；examples 合并去重，优先保留有代表性的例子。
你的回答必须是一个 JSON 对象，不要包含任何 JSON 之外的说明文字，结构如下：
{"name":"...","description":"...","pattern":"...","examples":["..."],"summary":"...","confidence":0.9}`

const PROMPT_MERGE_SYSTEM_EN = `You maintain formatting rules. Only one rule per category is kept; a new rule arrived with the same category as some existing rules and they must be folded into one.
Merge policy: the new rule's name and description take precedence; expand the pattern so it stays compatible with previously observed patterns instead of replacing it; union and de-duplicate the examples, preferring representative ones.
Respond with a single JSON object and nothing else, shaped as:
{"name":"...","description":"...","pattern":"...","examples":["..."],"summary":"...","confidence":0.9}`

const PROMPT_MERGE_USER_CN = `新规则：
${new_rule}

已有的同类规则（按创建时间从早到晚）：
${old_rules}`

const PROMPT_MERGE_USER_EN = `New rule:
${new_rule}

Existing rules of the same category (earliest first):
${old_rules}`

// BuildExtractPrompt renders the extraction prompt pair for the driver language.
func BuildExtractPrompt(lang, content string) (system, user string) {
	if lang == MODEL_BASE_LANGUAGE_CN {
		system = PROMPT_EXTRACT_SYSTEM_CN
		user = strings.ReplaceAll(PROMPT_EXTRACT_USER_CN, PROMPT_VAR_CONTENT, content)
		return
	}
	system = PROMPT_EXTRACT_SYSTEM_EN
	user = strings.ReplaceAll(PROMPT_EXTRACT_USER_EN, PROMPT_VAR_CONTENT, content)
	return
}

// BuildConvertPrompt renders the conversion prompt pair, embedding the rules
// to apply as a JSON list the model can quote ids from.
func BuildConvertPrompt(lang, content string, rules []types.Rule, targetStyle string) (system, user string) {
	serialized := lo.Map(rules, func(r types.Rule, _ int) map[string]string {
		return map[string]string{
			"id":          r.ID,
			"name":        r.Name,
			"pattern":     r.Pattern,
			"description": r.Description,
		}
	})
	rulesJSON, _ := json.Marshal(serialized)

	userTpl := PROMPT_CONVERT_USER_EN
	system = PROMPT_CONVERT_SYSTEM_EN
	if lang == MODEL_BASE_LANGUAGE_CN {
		userTpl = PROMPT_CONVERT_USER_CN
		system = PROMPT_CONVERT_SYSTEM_CN
	}
	if targetStyle == "" {
		targetStyle = lo.If(lang == MODEL_BASE_LANGUAGE_CN, "无").Else("none")
	}

	user = strings.NewReplacer(
		PROMPT_VAR_RULES, string(rulesJSON),
		PROMPT_VAR_TARGET_STYLE, targetStyle,
		PROMPT_VAR_CONTENT, content,
	).Replace(userTpl)
	return
}

// BuildMergePrompt renders the merge prompt pair from the proposed rule body
// and the existing same-type rules, earliest first.
func BuildMergePrompt(lang string, proposed types.RuleBody, existing []types.Rule) (system, user string) {
	newJSON, _ := json.Marshal(proposed)
	oldJSON, _ := json.Marshal(lo.Map(existing, func(r types.Rule, _ int) types.RuleBody {
		return types.RuleBody{
			Type:        r.Type,
			Name:        r.Name,
			Pattern:     r.Pattern,
			Description: r.Description,
			Examples:    r.Examples,
		}
	}))

	userTpl := PROMPT_MERGE_USER_EN
	system = PROMPT_MERGE_SYSTEM_EN
	if lang == MODEL_BASE_LANGUAGE_CN {
		userTpl = PROMPT_MERGE_USER_CN
		system = PROMPT_MERGE_SYSTEM_CN
	}

	user = strings.NewReplacer(
		PROMPT_VAR_NEW_RULE, string(newJSON),
		PROMPT_VAR_OLD_RULES, string(oldJSON),
	).Replace(userTpl)
	return
}
