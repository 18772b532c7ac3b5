package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := NewSet[int](4)
	assert.False(t, s.Contains(1))

	s.Add(1)
	s.Add(1)
	s.Add(2)
	assert.True(t, s.Contains(1))
	assert.Equal(t, 2, s.Len())

	s.Remove(1)
	s.Remove(42)
	assert.False(t, s.Contains(1))
	assert.Equal(t, 1, s.Len())
}
