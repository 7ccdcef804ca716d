package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/i18n"
	"github.com/markstyle-ai/markstyle/pkg/types"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

type RuleLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewRuleLogic(ctx context.Context, core *core.Core) *RuleLogic {
	return &RuleLogic{
		ctx:  ctx,
		core: core,
	}
}

// SaveOutcome reports what happened to one submitted rule body: it was either
// merged into an existing rule or inserted as a new one.
type SaveOutcome struct {
	Rule   types.Rule `json:"rule"`
	Merged bool       `json:"merged"`
	// DeletedIDs lists same-type rules that were folded into Rule.
	DeletedIDs []string `json:"deleted_ids,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	// Confidence is the oracle's own estimate, informational only.
	Confidence float64 `json:"confidence,omitempty"`
}

// CreateRules persists a batch of rule bodies. When a body's type already has
// stored rules and the model is reachable, the body is merged into the
// earliest-created rule of that type and the rest are removed. Merge is best
// effort: any failure on the merge path degrades to a plain insert so a save
// never bounces because of the model.
func (l *RuleLogic) CreateRules(bodies []types.RuleBody) ([]SaveOutcome, error) {
	if len(bodies) == 0 {
		return nil, errors.New("RuleLogic.CreateRules.empty", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	for _, b := range bodies {
		if b.Type == "" || b.Pattern == "" {
			return nil, errors.New("RuleLogic.CreateRules.body", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
		}
	}

	outcomes := make([]SaveOutcome, 0, len(bodies))
	for _, body := range bodies {
		outcome, err := l.saveOne(body)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, *outcome)
	}
	return outcomes, nil
}

func (l *RuleLogic) saveOne(body types.RuleBody) (*SaveOutcome, error) {
	existing, err := l.core.Store().RuleStore().ListByType(l.ctx, body.Type)
	if err != nil {
		return nil, errors.New("RuleLogic.saveOne.ListByType", i18n.ERROR_INTERNAL, err)
	}

	if len(existing) > 0 && l.core.Srv().AI().Available() {
		if outcome := l.tryMerge(body, existing); outcome != nil {
			return outcome, nil
		}
	}

	rule, err := l.insert(body)
	if err != nil {
		return nil, err
	}
	return &SaveOutcome{Rule: *rule}, nil
}

// tryMerge runs the merge path and applies the decision. A nil return means
// the caller should fall back to a plain insert.
func (l *RuleLogic) tryMerge(body types.RuleBody, existing []types.Rule) *SaveOutcome {
	engine := NewMergeEngine(l.core.Srv().AI())

	timer := l.core.Metrics().CompletionRequestTimer("merge")
	decision, err := engine.Merge(l.ctx, body, existing)
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().CompletionErrorInc("merge")
		slog.Warn("rule merge degraded to insert",
			slog.String("rule_type", body.Type),
			slog.String("error", err.Error()))
		return nil
	}

	merged, err := l.core.Store().RuleStore().Update(l.ctx, decision.TargetID, store.UpdateRuleFields{
		Name:        &decision.Body.Name,
		Pattern:     &decision.Body.Pattern,
		Description: &decision.Body.Description,
		Examples:    &decision.Body.Examples,
	})
	if err != nil {
		slog.Warn("rule merge target update failed, falling back to insert",
			slog.String("target_id", decision.TargetID),
			slog.String("error", err.Error()))
		return nil
	}

	for _, id := range decision.DeleteIDs {
		if _, err := l.core.Store().RuleStore().Delete(l.ctx, id); err != nil {
			slog.Error("failed to remove merged-away rule",
				slog.String("rule_id", id),
				slog.String("error", err.Error()))
		}
	}

	return &SaveOutcome{
		Rule:       *merged,
		Merged:     true,
		DeletedIDs: decision.DeleteIDs,
		Summary:    decision.Summary,
		Confidence: decision.Confidence,
	}
}

func (l *RuleLogic) insert(body types.RuleBody) (*types.Rule, error) {
	if body.Name == "" {
		body.Name = types.DefaultRuleName(body.Type)
	}
	now := time.Now().Unix()
	rule := types.Rule{
		ID:          utils.GenUniqIDStr(),
		Type:        body.Type,
		Name:        body.Name,
		Pattern:     body.Pattern,
		Description: body.Description,
		Examples:    lo.Uniq(body.Examples),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := l.core.Store().RuleStore().Create(l.ctx, rule); err != nil {
		return nil, errors.New("RuleLogic.insert.Create", i18n.ERROR_INTERNAL, err)
	}
	return &rule, nil
}

func (l *RuleLogic) ListRules(ruleType string) ([]types.Rule, error) {
	var (
		rules []types.Rule
		err   error
	)
	if ruleType != "" {
		rules, err = l.core.Store().RuleStore().ListByType(l.ctx, ruleType)
	} else {
		rules, err = l.core.Store().RuleStore().List(l.ctx)
	}
	if err != nil {
		return nil, errors.New("RuleLogic.ListRules", i18n.ERROR_INTERNAL, err)
	}
	if rules == nil {
		rules = []types.Rule{}
	}
	return rules, nil
}

func (l *RuleLogic) UpdateRule(id string, fields store.UpdateRuleFields) (*types.Rule, error) {
	rule, err := l.core.Store().RuleStore().Update(l.ctx, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("RuleLogic.UpdateRule", i18n.ERROR_RULE_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("RuleLogic.UpdateRule", i18n.ERROR_INTERNAL, err)
	}
	return rule, nil
}

func (l *RuleLogic) DeleteRule(id string) error {
	removed, err := l.core.Store().RuleStore().Delete(l.ctx, id)
	if err != nil {
		return errors.New("RuleLogic.DeleteRule", i18n.ERROR_INTERNAL, err)
	}
	if !removed {
		return errors.New("RuleLogic.DeleteRule.check", i18n.ERROR_RULE_NOT_FOUND, store.ErrNotFound).Code(http.StatusNotFound)
	}
	return nil
}
