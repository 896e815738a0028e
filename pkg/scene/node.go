// Package scene is a small scene graph and a pool of scene nodes built on
// pkg/pool. Pooled nodes live, deactivated, under a holding container and
// are handed out for reuse instead of being instantiated and destroyed.
package scene

// Vector3 is a position or scale in local space.
type Vector3 struct {
	X, Y, Z float64
}

// Quaternion is a rotation in local space.
type Quaternion struct {
	X, Y, Z, W float64
}

var (
	// Zero is the origin.
	Zero = Vector3{}
	// One is unit scale.
	One = Vector3{X: 1, Y: 1, Z: 1}
	// Identity is no rotation.
	Identity = Quaternion{W: 1}
)

// Transform is a node's placement relative to its parent.
type Transform struct {
	LocalPosition Vector3
	LocalRotation Quaternion
	LocalScale    Vector3
}

// IdentityTransform places a node exactly on its parent.
func IdentityTransform() Transform {
	return Transform{LocalPosition: Zero, LocalRotation: Identity, LocalScale: One}
}

// Node is an object in the scene graph. The zero value is not usable; call
// NewNode.
type Node struct {
	Name      string
	Layer     int
	Transform Transform

	active   bool
	parent   *Node
	children []*Node
}

// NewNode returns an active, detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: IdentityTransform(),
		active:    true,
	}
}

// Instantiate returns a detached deep copy of prefab and its subtree. The
// copy keeps prefab's active flag and is named "<name> (Clone)".
func Instantiate(prefab *Node) *Node {
	clone := prefab.clone()
	clone.Name = prefab.Name + " (Clone)"
	return clone
}

func (n *Node) clone() *Node {
	c := &Node{
		Name:      n.Name,
		Layer:     n.Layer,
		Transform: n.Transform,
		active:    n.active,
	}
	for _, child := range n.children {
		cc := child.clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children. The slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// SetParent detaches n from its current parent and appends it to parent's
// children. A nil parent makes n a root. The local transform is kept.
func (n *Node) SetParent(parent *Node) {
	if n.parent == parent {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// SetActive sets the node's own active flag.
func (n *Node) SetActive(active bool) { n.active = active }

// ActiveSelf reports the node's own active flag.
func (n *Node) ActiveSelf() bool { return n.active }

// ActiveInHierarchy reports whether the node and all its ancestors are
// active.
func (n *Node) ActiveInHierarchy() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if !cur.active {
			return false
		}
	}
	return true
}
