package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/types"
)

func TestRuleSetLifecycle(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	ctx := context.Background()
	logic := NewRuleSetLogic(ctx, app)

	require.NoError(t, app.Store().RuleStore().Create(ctx,
		types.Rule{ID: "r1", Type: "heading", Pattern: "## {text}"},
		types.Rule{ID: "r2", Type: "bold", Pattern: "**{text}**"},
	))

	set, err := logic.CreateRuleSet("blog", "blog posts", []string{"r1", "r2", "r1"})
	require.NoError(t, err)
	assert.NotEmpty(t, set.ID)
	// duplicated references collapse
	assert.Equal(t, []string{"r1", "r2"}, set.RuleIDs)

	got, err := logic.GetRuleSet(set.ID)
	require.NoError(t, err)
	assert.Equal(t, "blog", got.Name)

	updated, err := logic.UpdateRuleSet(set.ID, "docs", "technical docs", []string{"r2"})
	require.NoError(t, err)
	assert.Equal(t, "docs", updated.Name)
	assert.Equal(t, []string{"r2"}, updated.RuleIDs)

	sets, err := logic.ListRuleSets()
	require.NoError(t, err)
	assert.Len(t, sets, 1)

	require.NoError(t, logic.DeleteRuleSet(set.ID))

	_, err = logic.GetRuleSet(set.ID)
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusNotFound, cerr.GetCode())
}

func TestCreateRuleSet_RejectsDanglingRuleIDs(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	logic := NewRuleSetLogic(context.Background(), app)

	_, err := logic.CreateRuleSet("blog", "", []string{"ghost"})
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusBadRequest, cerr.GetCode())
}

func TestCreateRuleSet_RequiresName(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	logic := NewRuleSetLogic(context.Background(), app)

	_, err := logic.CreateRuleSet("", "", nil)
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusBadRequest, cerr.GetCode())
}
