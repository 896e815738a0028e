package scene

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// PoolConfig configures a NodePool. Factory and Hooks are supplied by the
// NodePool itself.
type PoolConfig struct {
	Name        string
	InitialSize int
	BaseSize    int
	Growth      pool.GrowthMode
	Observer    pool.Observer
	Logger      *zap.Logger
}

// NodePool recycles instances of a prefab node. Idle instances are inactive
// children of the holding container.
type NodePool struct {
	prefab    *Node
	container *Node
	pool      *pool.Pool[*Node]
}

// NewNodePool builds a pool of prefab instances held under container. A nil
// prefab is an invalid argument. A nil container is replaced by a new root
// node named "<prefab> Pool".
func NewNodePool(prefab, container *Node, cfg PoolConfig) (*NodePool, error) {
	if prefab == nil {
		return nil, errors.InvalidArgument("prefab", "prefab object can not be nil")
	}
	if container == nil {
		container = NewNode(prefab.Name + " Pool")
	}

	np := &NodePool{prefab: prefab, container: container}

	name := cfg.Name
	if name == "" {
		name = prefab.Name
	}

	p, err := pool.New(pool.Config[*Node]{
		Name:        name,
		Factory:     np.instantiate,
		InitialSize: cfg.InitialSize,
		BaseSize:    cfg.BaseSize,
		Growth:      cfg.Growth,
		Observer:    cfg.Observer,
		Logger:      cfg.Logger,
		Hooks:       pool.HookFuncs[*Node]{Create: np.stow, Release: np.stow},
	})
	if err != nil {
		return nil, err
	}
	np.pool = p
	return np, nil
}

func (np *NodePool) instantiate() *Node {
	return Instantiate(np.prefab)
}

// stow parks n under the container, reset and inactive.
func (np *NodePool) stow(n *Node) {
	// container and n are never nil here
	_ = reparent(np.container, n)
	n.SetActive(false)
}

// Checkout hands out an idle node. It stays inactive and under the
// container until the caller moves or activates it.
func (np *NodePool) Checkout() *Node {
	return np.pool.Checkout()
}

// Return deactivates n, parks it back under the container and makes it
// available. A nil node is ignored.
func (np *NodePool) Return(n *Node) {
	if n == nil {
		return
	}
	np.pool.Return(n)
}

// AttachTo checks out a node and re-parents it under parent with an
// identity local transform.
func (np *NodePool) AttachTo(parent *Node) (*Node, error) {
	if parent == nil {
		return nil, errors.InvalidArgument("parent", "parent object can not be nil")
	}

	n := np.pool.Checkout()
	if err := reparent(parent, n); err != nil {
		np.pool.Return(n)
		return nil, err
	}
	return n, nil
}

// Container returns the node that holds idle instances.
func (np *NodePool) Container() *Node { return np.container }

// Prefab returns the template node.
func (np *NodePool) Prefab() *Node { return np.prefab }

// Stats returns the underlying pool counters.
func (np *NodePool) Stats() pool.Stats { return np.pool.Stats() }

// reparent moves child under parent, resets its local transform and copies
// the parent's layer.
func reparent(parent, child *Node) error {
	if parent == nil {
		return errors.InvalidArgument("parent", "parent object can not be nil")
	}
	if child == nil {
		return errors.InvalidArgument("child", "child object can not be nil")
	}

	child.SetParent(parent)
	child.Transform = IdentityTransform()
	child.Layer = parent.Layer
	return nil
}
