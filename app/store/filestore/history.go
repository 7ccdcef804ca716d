package filestore

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/markstyle-ai/markstyle/pkg/types"
)

type HistoryStoreImpl struct {
	file *jsonFile
}

// List returns history records newest first.
func (s *HistoryStoreImpl) List(ctx context.Context) ([]types.ConversionHistory, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	records, err := loadCollection[types.ConversionHistory](s.file)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt > records[j].CreatedAt
	})
	return records, nil
}

func (s *HistoryStoreImpl) Create(ctx context.Context, record types.ConversionHistory) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	records, err := loadCollection[types.ConversionHistory](s.file)
	if err != nil {
		return err
	}
	return saveCollection(s.file, append(records, record))
}

func (s *HistoryStoreImpl) Delete(ctx context.Context, id string) (bool, error) {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()

	records, err := loadCollection[types.ConversionHistory](s.file)
	if err != nil {
		return false, err
	}
	remain := lo.Filter(records, func(item types.ConversionHistory, _ int) bool {
		return item.ID != id
	})
	if len(remain) == len(records) {
		return false, nil
	}
	return true, saveCollection(s.file, remain)
}

func (s *HistoryStoreImpl) DeleteAll(ctx context.Context) error {
	s.file.mu.Lock()
	defer s.file.mu.Unlock()
	return saveCollection(s.file, []types.ConversionHistory{})
}
