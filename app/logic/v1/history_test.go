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

func TestHistoryLifecycle(t *testing.T) {
	app := newTestCore(t, &stubCompleter{})
	ctx := context.Background()
	logic := NewHistoryLogic(ctx, app)

	require.NoError(t, app.Store().HistoryStore().Create(ctx,
		types.ConversionHistory{ID: "h1", OriginalContent: "# a", CreatedAt: 10},
	))
	require.NoError(t, app.Store().HistoryStore().Create(ctx,
		types.ConversionHistory{ID: "h2", OriginalContent: "# b", CreatedAt: 20},
	))

	records, err := logic.ListHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "h2", records[0].ID)

	require.NoError(t, logic.DeleteHistory("h1"))

	err = logic.DeleteHistory("h1")
	require.Error(t, err)

	var cerr *errors.CustomizedError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, http.StatusNotFound, cerr.GetCode())

	require.NoError(t, logic.ClearHistory())
	records, err = logic.ListHistory()
	require.NoError(t, err)
	assert.Empty(t, records)
}
