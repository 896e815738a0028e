package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/pool"
	"github.com/ajitpratap0/stockpile/pkg/testutil"
)

func newTestPool(t *testing.T, prefab, container *Node, cfg PoolConfig) *NodePool {
	t.Helper()
	cfg.Logger = testutil.TestLogger(t)
	np, err := NewNodePool(prefab, container, cfg)
	require.NoError(t, err)
	return np
}

func TestNewNodePool_NilPrefab(t *testing.T) {
	np, err := NewNodePool(nil, NewNode("holder"), PoolConfig{})
	assert.Nil(t, np)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewNodePool_DefaultContainer(t *testing.T) {
	np := newTestPool(t, NewNode("bullet"), nil, PoolConfig{InitialSize: 2})

	require.NotNil(t, np.Container())
	assert.Equal(t, "bullet Pool", np.Container().Name)
	assert.Len(t, np.Container().Children(), 2)
	assert.Equal(t, "bullet", np.Stats().Name)
}

func TestNewNodePool_InstancesAreStowed(t *testing.T) {
	prefab := NewNode("bullet")
	prefab.Transform.LocalScale = Vector3{X: 2, Y: 2, Z: 2}
	holder := NewNode("holder")
	holder.Layer = 5

	np := newTestPool(t, prefab, holder, PoolConfig{InitialSize: 3})

	require.Len(t, holder.Children(), 3)
	for _, n := range holder.Children() {
		assert.Equal(t, "bullet (Clone)", n.Name)
		assert.False(t, n.ActiveSelf())
		assert.Same(t, holder, n.Parent())
		assert.Equal(t, IdentityTransform(), n.Transform)
		assert.Equal(t, 5, n.Layer)
	}
	assert.True(t, prefab.ActiveSelf(), "prefab itself is never deactivated")
	assert.Same(t, prefab, np.Prefab())
}

func TestNodePool_CheckoutGrows(t *testing.T) {
	holder := NewNode("holder")
	np := newTestPool(t, NewNode("spark"), holder, PoolConfig{BaseSize: 4, Growth: pool.GrowthDouble})

	n := np.Checkout()

	require.NotNil(t, n)
	assert.Len(t, holder.Children(), 4, "checked-out node stays under the container")
	assert.False(t, n.ActiveSelf())
	stats := np.Stats()
	assert.Equal(t, 4, stats.Created)
	assert.Equal(t, 3, stats.Available)
	assert.Equal(t, 1, stats.InUse)
}

func TestNodePool_Return(t *testing.T) {
	holder := NewNode("holder")
	np := newTestPool(t, NewNode("spark"), holder, PoolConfig{InitialSize: 1, Growth: pool.GrowthLean})
	world := NewNode("world")

	n := np.Checkout()
	n.SetParent(world)
	n.SetActive(true)
	n.Transform.LocalPosition = Vector3{X: 10}

	np.Return(n)

	assert.False(t, n.ActiveSelf())
	assert.Same(t, holder, n.Parent())
	assert.Empty(t, world.Children())
	assert.Equal(t, IdentityTransform(), n.Transform)
	assert.Equal(t, 0, np.Stats().InUse)
	assert.Same(t, n, np.Checkout())
}

func TestNodePool_ReturnNil(t *testing.T) {
	np := newTestPool(t, NewNode("spark"), nil, PoolConfig{InitialSize: 1})
	np.Checkout()

	np.Return(nil)

	stats := np.Stats()
	assert.Equal(t, 1, stats.InUse)
	assert.Equal(t, 0, stats.Available)
	assert.Equal(t, uint64(0), stats.Returns)
}

func TestNodePool_AttachTo(t *testing.T) {
	holder := NewNode("holder")
	np := newTestPool(t, NewNode("coin"), holder, PoolConfig{InitialSize: 2})

	t.Run("nil parent", func(t *testing.T) {
		n, err := np.AttachTo(nil)
		assert.Nil(t, n)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Equal(t, 0, np.Stats().InUse, "nothing is checked out on failure")
	})

	t.Run("parent", func(t *testing.T) {
		chest := NewNode("chest")
		chest.Layer = 3

		n, err := np.AttachTo(chest)

		require.NoError(t, err)
		assert.Same(t, chest, n.Parent())
		assert.Equal(t, 3, n.Layer)
		assert.Equal(t, IdentityTransform(), n.Transform)
		assert.Len(t, holder.Children(), 1)
		assert.Equal(t, 1, np.Stats().InUse)

		np.Return(n)
		assert.Len(t, holder.Children(), 2)
		assert.Empty(t, chest.Children())
	})
}

func TestReparent(t *testing.T) {
	parent, child := NewNode("p"), NewNode("c")

	assert.True(t, errors.IsInvalidArgument(reparent(nil, child)))
	assert.True(t, errors.IsInvalidArgument(reparent(parent, nil)))

	parent.Layer = 2
	child.Transform.LocalRotation = Quaternion{X: 1}
	require.NoError(t, reparent(parent, child))
	assert.Same(t, parent, child.Parent())
	assert.Equal(t, 2, child.Layer)
	assert.Equal(t, Identity, child.Transform.LocalRotation)
}
