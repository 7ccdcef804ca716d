package v1

import (
	"context"
	"net/http"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/i18n"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

type HistoryLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewHistoryLogic(ctx context.Context, core *core.Core) *HistoryLogic {
	return &HistoryLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *HistoryLogic) ListHistory() ([]types.ConversionHistory, error) {
	records, err := l.core.Store().HistoryStore().List(l.ctx)
	if err != nil {
		return nil, errors.New("HistoryLogic.ListHistory", i18n.ERROR_INTERNAL, err)
	}
	if records == nil {
		records = []types.ConversionHistory{}
	}
	return records, nil
}

func (l *HistoryLogic) DeleteHistory(id string) error {
	removed, err := l.core.Store().HistoryStore().Delete(l.ctx, id)
	if err != nil {
		return errors.New("HistoryLogic.DeleteHistory", i18n.ERROR_INTERNAL, err)
	}
	if !removed {
		return errors.New("HistoryLogic.DeleteHistory.check", i18n.ERROR_NOT_FOUND, store.ErrNotFound).Code(http.StatusNotFound)
	}
	return nil
}

func (l *HistoryLogic) ClearHistory() error {
	if err := l.core.Store().HistoryStore().DeleteAll(l.ctx); err != nil {
		return errors.New("HistoryLogic.ClearHistory", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
