package set

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		var s Set[int]
		require.True(t, s.Insert(3))
		require.True(t, s.Insert(1))
		require.True(t, s.Insert(2))
		require.False(t, s.Insert(1))

		require.Equal(t, []int{3, 1, 2}, slices.Collect(s.Values()))
		require.Equal(t, 3, s.Len())
	})

	t.Run("remove keeps order of remaining values", func(t *testing.T) {
		var s Set[string]
		s.Insert("a")
		s.Insert("b")
		s.Insert("c")

		require.True(t, s.Remove("a"))
		require.False(t, s.Remove("a"))
		require.False(t, s.Has("a"))

		require.Equal(t, []string{"b", "c"}, s.Slice())

		// index must still be valid after the shift
		require.True(t, s.Remove("c"))
		require.Equal(t, []string{"b"}, s.Slice())
	})

	t.Run("many removals keep order and index", func(t *testing.T) {
		var s Set[int]
		for value := range 100 {
			s.Insert(value)
		}

		var expected []int
		for value := range 100 {
			if value%3 == 0 {
				require.True(t, s.Remove(value))
			} else {
				expected = append(expected, value)
			}
		}

		require.Equal(t, expected, s.Slice())
		require.Equal(t, len(expected), s.Len())

		// compaction must leave the index of the remaining values intact
		for _, value := range expected {
			require.True(t, s.Remove(value))
		}

		require.Zero(t, s.Len())
		require.Empty(t, s.Slice())

		require.True(t, s.Insert(7))
		require.Equal(t, []int{7}, s.Slice())
	})

	t.Run("drain empties the set", func(t *testing.T) {
		var s Set[int]
		s.Insert(5)
		s.Insert(6)

		require.Equal(t, []int{5, 6}, s.Drain())
		require.Zero(t, s.Len())
		require.False(t, s.Has(5))

		require.True(t, s.Insert(5))
		require.Equal(t, []int{5}, s.Slice())
	})
}
