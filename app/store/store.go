package store

import (
	"context"
	"errors"

	"github.com/markstyle-ai/markstyle/pkg/types"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("store: record not found")

// UpdateRuleFields is a partial rule update. Nil fields keep their stored
// value; id and created_at are immutable.
type UpdateRuleFields struct {
	Type        *string
	Name        *string
	Pattern     *string
	Description *string
	Examples    *[]string
}

type RuleStore interface {
	List(ctx context.Context) ([]types.Rule, error)
	// ListByType returns the rules of one category ordered by creation time,
	// earliest first.
	ListByType(ctx context.Context, ruleType string) ([]types.Rule, error)
	GetByIDs(ctx context.Context, ids []string) ([]types.Rule, error)
	Create(ctx context.Context, rules ...types.Rule) error
	// Update applies fields to the rule, refreshes updated_at and returns the
	// stored result. ErrNotFound when id is unknown.
	Update(ctx context.Context, id string, fields UpdateRuleFields) (*types.Rule, error)
	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type RuleSetStore interface {
	List(ctx context.Context) ([]types.RuleSet, error)
	Get(ctx context.Context, id string) (*types.RuleSet, error)
	Create(ctx context.Context, set types.RuleSet) error
	Update(ctx context.Context, set types.RuleSet) error
	Delete(ctx context.Context, id string) (bool, error)
}

type HistoryStore interface {
	List(ctx context.Context) ([]types.ConversionHistory, error)
	Create(ctx context.Context, record types.ConversionHistory) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}
