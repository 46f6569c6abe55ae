package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	t.Parallel()

	t.Run("roots and children", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1, 2, 3, 4})
		require.NoError(t, err)
		require.NoError(t, tree.SetParent(3, 1))
		require.NoError(t, tree.SetParent(2, 1))

		assert.Equal(t, []int{1, 4}, tree.Roots())
		// Declaration order, not id order.
		assert.Equal(t, []int{3, 2}, tree.Children(1))
		assert.Empty(t, tree.Children(4))
	})

	t.Run("self parent rejected", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1})
		require.NoError(t, err)
		require.Error(t, tree.SetParent(1, 1))
	})

	t.Run("second parent rejected", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1, 2, 3})
		require.NoError(t, err)
		require.NoError(t, tree.SetParent(3, 1))
		require.Error(t, tree.SetParent(3, 2))
	})

	t.Run("unknown ids rejected", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1})
		require.NoError(t, err)
		require.Error(t, tree.SetParent(9, 1))
		require.Error(t, tree.SetParent(1, 9))
	})

	t.Run("parent chain cycle detected", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1, 2, 3})
		require.NoError(t, err)
		require.NoError(t, tree.SetParent(2, 1))
		require.NoError(t, tree.SetParent(3, 2))
		require.NoError(t, tree.SetParent(1, 3))

		err = tree.Validate()
		require.ErrorIs(t, err, ErrCycle)

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, []int{1, 2, 3, 1}, cycleErr.Path)
	})

	t.Run("walk bottom up visits children before parents", func(t *testing.T) {
		t.Parallel()
		tree, err := NewTree([]int{1, 2, 3, 4, 5})
		require.NoError(t, err)
		require.NoError(t, tree.SetParent(2, 1))
		require.NoError(t, tree.SetParent(3, 1))
		require.NoError(t, tree.SetParent(4, 2))

		var order []int
		tree.WalkBottomUp(func(id int) { order = append(order, id) })
		assert.Equal(t, []int{4, 2, 3, 1, 5}, order)
	})
}
