package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markstyle-ai/markstyle/app/store"
	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

func TestCreateRules_InsertWhenTypeIsNew(t *testing.T) {
	stub := &stubCompleter{}
	app := newTestCore(t, stub)
	ctx := context.Background()

	outcomes, err := NewRuleLogic(ctx, app).CreateRules([]types.RuleBody{
		{Type: "heading", Pattern: "## {text}", Description: "two hashes"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.False(t, outcomes[0].Merged)
	assert.NotEmpty(t, outcomes[0].Rule.ID)
	// missing name falls back to the type default
	assert.NotEmpty(t, outcomes[0].Rule.Name)
	// no existing rules of this type, the oracle is never consulted
	assert.Equal(t, 0, stub.calls)

	stored, err := app.Store().RuleStore().ListByType(ctx, "heading")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateRules_MergesIntoEarliestExisting(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		`{"name":"heading rule","description":"merged","pattern":"#{1,2} {text}","examples":["# a","## b"],"summary":"folded","confidence":0.95}`,
	}}
	app := newTestCore(t, stub)
	ctx := context.Background()

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "old1", Type: "heading", Name: "one hash", Pattern: "# {text}", CreatedAt: 100},
		types.Rule{ID: "old2", Type: "heading", Name: "three hashes", Pattern: "### {text}", CreatedAt: 200},
		types.Rule{ID: "other", Type: "bold", Pattern: "**{text}**", CreatedAt: 50},
	))

	outcomes, err := NewRuleLogic(ctx, app).CreateRules([]types.RuleBody{
		{Type: "heading", Name: "heading rule", Pattern: "## {text}"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.True(t, outcomes[0].Merged)
	assert.Equal(t, "old1", outcomes[0].Rule.ID)
	assert.Equal(t, "heading rule", outcomes[0].Rule.Name)
	assert.Equal(t, "#{1,2} {text}", outcomes[0].Rule.Pattern)
	assert.Equal(t, []string{"old2"}, outcomes[0].DeletedIDs)
	assert.Equal(t, 1, stub.calls)

	// one heading rule survives, other categories untouched
	headings, err := app.Store().RuleStore().ListByType(ctx, "heading")
	require.NoError(t, err)
	require.Len(t, headings, 1)
	assert.Equal(t, "old1", headings[0].ID)

	bolds, err := app.Store().RuleStore().ListByType(ctx, "bold")
	require.NoError(t, err)
	assert.Len(t, bolds, 1)
}

func TestCreateRules_MergeFailureFallsBackToInsert(t *testing.T) {
	stub := &stubCompleter{responses: []string{"not json, sorry"}}
	app := newTestCore(t, stub)
	ctx := context.Background()

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "old1", Type: "heading", Pattern: "# {text}", CreatedAt: 100},
	))

	outcomes, err := NewRuleLogic(ctx, app).CreateRules([]types.RuleBody{
		{Type: "heading", Name: "new", Pattern: "## {text}"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Merged)

	headings, err := app.Store().RuleStore().ListByType(ctx, "heading")
	require.NoError(t, err)
	assert.Len(t, headings, 2)
}

func TestCreateRules_NoProviderFallsBackToInsert(t *testing.T) {
	app := newTestCore(t, nil)
	ctx := context.Background()

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "old1", Type: "heading", Pattern: "# {text}", CreatedAt: 100},
	))

	outcomes, err := NewRuleLogic(ctx, app).CreateRules([]types.RuleBody{
		{Type: "heading", Name: "new", Pattern: "## {text}"},
	})
	require.NoError(t, err)
	assert.False(t, outcomes[0].Merged)

	headings, err := app.Store().RuleStore().ListByType(ctx, "heading")
	require.NoError(t, err)
	assert.Len(t, headings, 2)
}

func TestCreateRules_RejectsInvalidBody(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})

	_, err := NewRuleLogic(context.Background(), app).CreateRules([]types.RuleBody{
		{Type: "", Pattern: "## {text}"},
	})
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusBadRequest, cerr.GetCode())
}

func TestUpdateRule(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	ctx := context.Background()

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "r1", Type: "heading", Name: "old", Pattern: "# {text}"},
	))

	name := "renamed"
	rule, err := NewRuleLogic(ctx, app).UpdateRule("r1", store.UpdateRuleFields{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", rule.Name)

	_, err = NewRuleLogic(ctx, app).UpdateRule("missing", store.UpdateRuleFields{Name: &name})
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusNotFound, cerr.GetCode())
}

func TestDeleteRule(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	ctx := context.Background()

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "r1", Type: "heading", Pattern: "# {text}"},
	))

	require.NoError(t, NewRuleLogic(ctx, app).DeleteRule("r1"))

	err := NewRuleLogic(ctx, app).DeleteRule("r1")
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusNotFound, cerr.GetCode())
}
