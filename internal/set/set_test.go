package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Add(t *testing.T) {
	var s Set[string]
	s = s.Add("Home", "SectDetail")
	assert.True(t, s.Has("Home"))
	assert.True(t, s.Has("SectDetail"))
	assert.False(t, s.Has("Cultivation"))
	assert.Len(t, s, 2)
}

func TestNew(t *testing.T) {
	s := New("a", "a", "b")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("b"))
}
