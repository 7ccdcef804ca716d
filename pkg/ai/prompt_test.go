package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markstyle-ai/markstyle/pkg/types"
)

func TestExtractPromptListsKnownCategories(t *testing.T) {
	for _, ruleType := range types.KnownRuleTypes {
		assert.Contains(t, PROMPT_EXTRACT_SYSTEM_EN, ruleType)
		assert.Contains(t, PROMPT_EXTRACT_SYSTEM_CN, ruleType)
	}
}

func TestBuildExtractPrompt(t *testing.T) {
	system, user := BuildExtractPrompt(MODEL_BASE_LANGUAGE_EN, "## Title")
	assert.Equal(t, PROMPT_EXTRACT_SYSTEM_EN, system)
	assert.Contains(t, user, "## Title")
	assert.NotContains(t, user, PROMPT_VAR_CONTENT)

	system, user = BuildExtractPrompt(MODEL_BASE_LANGUAGE_CN, "## 标题")
	assert.Equal(t, PROMPT_EXTRACT_SYSTEM_CN, system)
	assert.Contains(t, user, "## 标题")
}

func TestBuildConvertPrompt(t *testing.T) {
	rules := []types.Rule{
		{ID: "11", Name: "heading rule", Pattern: "## {text}", Description: "two hashes"},
	}

	_, user := BuildConvertPrompt(MODEL_BASE_LANGUAGE_EN, "some text", rules, "")
	assert.Contains(t, user, `"id":"11"`)
	assert.Contains(t, user, "## {text}")
	assert.Contains(t, user, "some text")
	// empty target style falls back to a language-matched placeholder
	assert.Contains(t, user, "none")
	assert.NotContains(t, user, PROMPT_VAR_RULES)
	assert.NotContains(t, user, PROMPT_VAR_TARGET_STYLE)

	_, user = BuildConvertPrompt(MODEL_BASE_LANGUAGE_CN, "文本", rules, "")
	assert.Contains(t, user, "无")

	_, user = BuildConvertPrompt(MODEL_BASE_LANGUAGE_EN, "some text", rules, "compact")
	assert.Contains(t, user, "compact")
}

func TestBuildMergePrompt(t *testing.T) {
	proposed := types.RuleBody{Type: "heading", Name: "new heading", Pattern: "# {text}"}
	existing := []types.Rule{
		{ID: "1", Type: "heading", Name: "old heading", Pattern: "## {text}", CreatedAt: 10},
	}

	system, user := BuildMergePrompt(MODEL_BASE_LANGUAGE_EN, proposed, existing)
	require.Equal(t, PROMPT_MERGE_SYSTEM_EN, system)
	assert.Contains(t, user, "new heading")
	assert.Contains(t, user, "old heading")
	assert.NotContains(t, user, PROMPT_VAR_NEW_RULE)
	assert.NotContains(t, user, PROMPT_VAR_OLD_RULES)
}
