package filestore

import (
	"context"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

type RuleSetStoreImpl struct {
	file *jsonFile
}

func (s *RuleSetStoreImpl) List(ctx context.Context) ([]types.RuleSet, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	return loadCollection[types.RuleSet](s.file)
}

func (s *RuleSetStoreImpl) Get(ctx context.Context, id string) (*types.RuleSet, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	sets, err := loadCollection[types.RuleSet](s.file)
	if err != nil {
		return nil, err
	}
	set, ok := lo.Find(sets, func(item types.RuleSet) bool {
		return item.ID == id
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	return &set, nil
}

func (s *RuleSetStoreImpl) Create(ctx context.Context, set types.RuleSet) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	sets, err := loadCollection[types.RuleSet](s.file)
	if err != nil {
		return err
	}
	return saveCollection(s.file, append(sets, set))
}

func (s *RuleSetStoreImpl) Update(ctx context.Context, set types.RuleSet) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	sets, err := loadCollection[types.RuleSet](s.file)
	if err != nil {
		return err
	}
	for i := range sets {
		if sets[i].ID == set.ID {
			// id and created_at stay as stored
			set.CreatedAt = sets[i].CreatedAt
			sets[i] = set
			return saveCollection(s.file, sets)
		}
	}
	return store.ErrNotFound
}

func (s *RuleSetStoreImpl) Delete(ctx context.Context, id string) (bool, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	sets, err := loadCollection[types.RuleSet](s.file)
	if err != nil {
		return false, err
	}
	remain := lo.Filter(sets, func(item types.RuleSet, _ int) bool {
		return item.ID != id
	})
	if len(remain) == len(sets) {
		return false, nil
	}
	return true, saveCollection(s.file, remain)
}
