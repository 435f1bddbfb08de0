package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	idx := NewIndex()
	assert.False(t, idx.Has("a"))
	assert.Nil(t, idx.Definitions("a"))

	idx.Add(Definition{Key: "b", Value: "1", File: "x.properties", Line: 1})
	idx.Add(Definition{Key: "a", Value: "2", File: "x.properties", Line: 2})
	idx.Add(Definition{Key: "b", Value: "1", File: "y.properties", Line: 1})

	assert.True(t, idx.Has("a"))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"a", "b"}, idx.Keys())
	assert.Equal(t, 2, idx.Count("b"))
	assert.Equal(t, 0, idx.Count("c"))

	defs := idx.Definitions("b")
	defs[0].Value = "changed"
	assert.Equal(t, "1", idx.Definitions("b")[0].Value)

	for _, key := range idx.Keys() {
		for _, def := range idx.Definitions(key) {
			assert.Equal(t, key, def.Key)
		}
	}
}
