package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenUniqIDStr(t *testing.T) {
	SetupIDWorker(1)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := GenUniqIDStr()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestRandomStr(t *testing.T) {
	assert.Len(t, RandomStr(32), 32)
	assert.Len(t, GenRandomID(), 32)
}
