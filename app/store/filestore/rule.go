package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

type RuleStoreImpl struct {
	file *jsonFile
}

func (s *RuleStoreImpl) List(ctx context.Context) ([]types.Rule, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	return loadCollection[types.Rule](s.file)
}

func (s *RuleStoreImpl) ListByType(ctx context.Context, ruleType string) ([]types.Rule, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	rules, err := loadCollection[types.Rule](s.file)
	if err != nil {
		return nil, err
	}

	matched := lo.Filter(rules, func(r types.Rule, _ int) bool {
		return r.Type == ruleType
	})
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt < matched[j].CreatedAt
	})
	return matched, nil
}

func (s *RuleStoreImpl) GetByIDs(ctx context.Context, ids []string) ([]types.Rule, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	rules, err := loadCollection[types.Rule](s.file)
	if err != nil {
		return nil, err
	}

	wanted := lo.SliceToMap(ids, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	return lo.Filter(rules, func(r types.Rule, _ int) bool {
		_, ok := wanted[r.ID]
		return ok
	}), nil
}

func (s *RuleStoreImpl) Create(ctx context.Context, rules ...types.Rule) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	existing, err := loadCollection[types.Rule](s.file)
	if err != nil {
		return err
	}
	return saveCollection(s.file, append(existing, rules...))
}

func (s *RuleStoreImpl) Update(ctx context.Context, id string, fields store.UpdateRuleFields) (*types.Rule, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	rules, err := loadCollection[types.Rule](s.file)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if rules[i].ID != id {
			continue
		}

		if fields.Type != nil {
			rules[i].Type = *fields.Type
		}
		if fields.Name != nil {
			rules[i].Name = *fields.Name
		}
		if fields.Pattern != nil {
			rules[i].Pattern = *fields.Pattern
		}
		if fields.Description != nil {
			rules[i].Description = *fields.Description
		}
		if fields.Examples != nil {
			rules[i].Examples = *fields.Examples
		}
		rules[i].UpdatedAt = time.Now().Unix()

		if err := saveCollection(s.file, rules); err != nil {
			return nil, err
		}
		updated := rules[i]
		return &updated, nil
	}

	return nil, store.ErrNotFound
}

func (s *RuleStoreImpl) Delete(ctx context.Context, id string) (bool, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	rules, err := loadCollection[types.Rule](s.file)
	if err != nil {
		return false, err
	}

	remain := lo.Filter(rules, func(r types.Rule, _ int) bool {
		return r.ID != id
	})
	if len(remain) == len(rules) {
		return false, nil
	}
	return true, saveCollection(s.file, remain)
}
