package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	n := NewNode("crate")

	assert.Equal(t, "crate", n.Name)
	assert.True(t, n.ActiveSelf())
	assert.Nil(t, n.Parent())
	assert.Empty(t, n.Children())
	assert.Equal(t, IdentityTransform(), n.Transform)
}

func TestInstantiate(t *testing.T) {
	prefab := NewNode("enemy")
	prefab.Layer = 8
	prefab.Transform.LocalPosition = Vector3{X: 1, Y: 2, Z: 3}
	gun := NewNode("gun")
	gun.SetParent(prefab)
	root := NewNode("level")
	prefab.SetParent(root)

	clone := Instantiate(prefab)

	assert.Equal(t, "enemy (Clone)", clone.Name)
	assert.Equal(t, 8, clone.Layer)
	assert.Equal(t, prefab.Transform, clone.Transform)
	assert.Nil(t, clone.Parent(), "clone is detached")
	require.Len(t, clone.Children(), 1)
	assert.Equal(t, "gun", clone.Children()[0].Name)
	assert.Same(t, clone, clone.Children()[0].Parent())
	assert.NotSame(t, gun, clone.Children()[0])

	clone.Children()[0].Name = "rifle"
	assert.Equal(t, "gun", gun.Name, "prefab subtree is untouched")
}

func TestSetParent(t *testing.T) {
	a, b, child := NewNode("a"), NewNode("b"), NewNode("child")

	child.SetParent(a)
	assert.Same(t, a, child.Parent())
	assert.Equal(t, []*Node{child}, a.Children())

	child.SetParent(a)
	assert.Len(t, a.Children(), 1, "re-parenting to the same node is a no-op")

	child.SetParent(b)
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{child}, b.Children())

	child.SetParent(nil)
	assert.Nil(t, child.Parent())
	assert.Empty(t, b.Children())
}

func TestActiveInHierarchy(t *testing.T) {
	root, mid, leaf := NewNode("root"), NewNode("mid"), NewNode("leaf")
	mid.SetParent(root)
	leaf.SetParent(mid)

	assert.True(t, leaf.ActiveInHierarchy())

	mid.SetActive(false)
	assert.True(t, leaf.ActiveSelf())
	assert.False(t, leaf.ActiveInHierarchy())

	mid.SetActive(true)
	leaf.SetActive(false)
	assert.False(t, leaf.ActiveInHierarchy())
}
