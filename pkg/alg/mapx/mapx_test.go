package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	t.Run("nil_map", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys[string, int](nil)
		assert.Empty(t, got)
	})

	t.Run("sorted_ascending", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2})
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})
}

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Unique[string](nil)
		assert.Nil(t, got)
	})

	t.Run("keeps_first_occurrence", func(t *testing.T) {
		t.Parallel()

		got := Unique([]string{"b", "a", "b", "c", "a"})
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})
}
