package v1

import (
	"context"
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

type RuleSetLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewRuleSetLogic(ctx context.Context, core *core.Core) *RuleSetLogic {
	return &RuleSetLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *RuleSetLogic) ListRuleSets() ([]types.RuleSet, error) {
	sets, err := l.core.Store().RuleSetStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("RuleSetLogic.ListRuleSets", i18n.ERROR_INTERNAL, err)
	}
	if sets == nil {
		sets = []types.RuleSet{}
	}
	return sets, nil
}

func (l *RuleSetLogic) GetRuleSet(id string) (*types.RuleSet, error) {
	set, err := l.core.Store().RuleSetStore().Get(l.ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("RuleSetLogic.GetRuleSet", i18n.ERROR_RULESET_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("RuleSetLogic.GetRuleSet", i18n.ERROR_INTERNAL, err)
	}
	return set, nil
}

func (l *RuleSetLogic) CreateRuleSet(name, description string, ruleIDs []string) (*types.RuleSet, error) {
	if name == "" {
		return nil, errors.New("RuleSetLogic.CreateRuleSet.name", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if err := l.checkRuleIDs(ruleIDs); err != nil {
		return nil, err
	}

	set := types.RuleSet{
		ID:          utils.GenUniqIDStr(),
		Name:        name,
		Description: description,
		RuleIDs:     lo.Uniq(ruleIDs),
		CreatedAt:   time.Now().Unix(),
	}
	if err := l.core.Store().RuleSetStore().Create(l.ctx, set); err != nil {
		return nil, errors.New("RuleSetLogic.CreateRuleSet.Create", i18n.ERROR_INTERNAL, err)
	}
	return &set, nil
}

func (l *RuleSetLogic) UpdateRuleSet(id, name, description string, ruleIDs []string) (*types.RuleSet, error) {
	set, err := l.GetRuleSet(id)
	if err != nil {
		return nil, errors.Trace("RuleSetLogic.UpdateRuleSet", err)
	}
	if err := l.checkRuleIDs(ruleIDs); err != nil {
		return nil, err
	}

	if name != "" {
		set.Name = name
	}
	set.Description = description
	set.RuleIDs = lo.Uniq(ruleIDs)

	if err := l.core.Store().RuleSetStore().Update(l.ctx, *set); err != nil {
		return nil, errors.New("RuleSetLogic.UpdateRuleSet.Update", i18n.ERROR_INTERNAL, err)
	}
	return set, nil
}

func (l *RuleSetLogic) DeleteRuleSet(id string) error {
	removed, err := l.core.Store().RuleSetStore().Delete(l.ctx, id)
	if err != nil {
		return errors.New("RuleSetLogic.DeleteRuleSet", i18n.ERROR_INTERNAL, err)
	}
	if !removed {
		return errors.New("RuleSetLogic.DeleteRuleSet.check", i18n.ERROR_RULESET_NOT_FOUND, store.ErrNotFound).Code(http.StatusNotFound)
	}
	return nil
}

// checkRuleIDs rejects references to rules that do not exist. A set pointing
// at dangling ids would make every later conversion 404.
func (l *RuleSetLogic) checkRuleIDs(ruleIDs []string) error {
	if len(ruleIDs) == 0 {
		return nil
	}
	rules, err := l.core.Store().RuleStore().GetByIDs(l.ctx, ruleIDs)
	if err != nil {
		return errors.New("RuleSetLogic.checkRuleIDs", i18n.ERROR_INTERNAL, err)
	}
	known := lo.SliceToMap(rules, func(r types.Rule) (string, struct{}) {
		return r.ID, struct{}{}
	})
	for _, id := range ruleIDs {
		if _, ok := known[id]; !ok {
			return errors.New("RuleSetLogic.checkRuleIDs.missing", i18n.ERROR_RULE_NOT_FOUND, store.ErrNotFound).Code(http.StatusBadRequest)
		}
	}
	return nil
}
