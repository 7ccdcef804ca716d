package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureTaxonomy(t *testing.T) {
	assert.False(t, Retryable(ErrNoProvider))
	assert.True(t, Retryable(ErrEmptyExtraction))
	assert.True(t, Retryable(ErrMalformedResponse))
	assert.True(t, Retryable(&MalformedResponseError{Raw: "x", Err: errors.New("bad")}))
	assert.False(t, Retryable(errors.New("connection refused")))

	assert.True(t, IsNoProvider(fmt.Errorf("complete: %w", ErrNoProvider)))
	assert.True(t, IsEmptyExtraction(fmt.Errorf("attempt 3: %w", ErrEmptyExtraction)))
	assert.True(t, IsMalformed(&MalformedResponseError{Raw: "x", Err: errors.New("bad")}))
	assert.False(t, IsMalformed(ErrEmptyExtraction))
}
