package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/pkg/ai"
	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/i18n"
	"github.com/markstyle-ai/markstyle/pkg/types"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

type ConvertLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewConvertLogic(ctx context.Context, core *core.Core) *ConvertLogic {
	return &ConvertLogic{
		ctx:  ctx,
		core: core,
	}
}

// convertPayload is the wire shape the conversion prompt asks the model for.
type convertPayload struct {
	ConvertedContent string   `json:"converted_content"`
	AppliedRuleIDs   []string `json:"applied_rule_ids"`
	Summary          string   `json:"summary"`
}

// Convert rewrites content according to the selected rules. Model and parse
// failures degrade to a soft result with empty content instead of an error;
// converted text is advisory, so the flow never blocks on a bad completion.
func (l *ConvertLogic) Convert(content string, ruleIDs []string, targetStyle string) (*types.ConvertResult, error) {
	if len(ruleIDs) == 0 {
		return nil, errors.New("ConvertLogic.Convert.rules", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	driver := l.core.Srv().AI()
	if !driver.Available() {
		return nil, errors.New("ConvertLogic.Convert.provider", i18n.ERROR_AI_NO_PROVIDER, ai.ErrNoProvider).Code(http.StatusServiceUnavailable)
	}

	rules, err := l.core.Store().RuleStore().GetByIDs(l.ctx, ruleIDs)
	if err != nil {
		return nil, errors.New("ConvertLogic.Convert.RuleStore.GetByIDs", i18n.ERROR_INTERNAL, err)
	}
	if len(rules) == 0 {
		return nil, errors.New("ConvertLogic.Convert.rules.check", i18n.ERROR_RULE_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	system, user := ai.BuildConvertPrompt(driver.Lang(), content, rules, targetStyle)

	timer := l.core.Metrics().CompletionRequestTimer("convert")
	raw, err := driver.Complete(l.ctx, ai.CompleteOptions{
		SystemPrompt: system,
		UserPrompt:   user,
	})
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().CompletionErrorInc("transport")
		slog.Warn("conversion completion failed", slog.String("error", err.Error()))
		return softConvertFailure(), nil
	}

	var payload convertPayload
	if err := ai.UnmarshalResponse(raw, &payload); err != nil {
		l.core.Metrics().CompletionErrorInc("malformed")
		slog.Warn("conversion response unparseable", slog.String("error", err.Error()))
		return softConvertFailure(), nil
	}

	// the applied list is the model's own accounting, matched back to the
	// rules we sent but never independently verified
	byID := lo.SliceToMap(rules, func(r types.Rule) (string, types.Rule) {
		return r.ID, r
	})
	applied := lo.FilterMap(payload.AppliedRuleIDs, func(id string, _ int) (types.Rule, bool) {
		r, ok := byID[id]
		return r, ok
	})

	record := types.ConversionHistory{
		ID:               utils.GenUniqIDStr(),
		OriginalContent:  content,
		ConvertedContent: payload.ConvertedContent,
		AppliedRuleIDs:   payload.AppliedRuleIDs,
		CreatedAt:        time.Now().Unix(),
	}
	if err := l.core.Store().HistoryStore().Create(l.ctx, record); err != nil {
		slog.Error("failed to write conversion history", slog.String("error", err.Error()))
	}

	summary := payload.Summary
	if summary == "" {
		summary = "conversion finished"
	}

	return &types.ConvertResult{
		Success:          true,
		ConvertedContent: payload.ConvertedContent,
		AppliedRules:     applied,
		Message:          summary,
	}, nil
}

func softConvertFailure() *types.ConvertResult {
	return &types.ConvertResult{
		Success:          false,
		ConvertedContent: "",
		AppliedRules:     []types.Rule{},
		Message:          "conversion failed, the model response could not be used",
	}
}
