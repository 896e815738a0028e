package scene

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// DefaultBaseSize is the pool size a PoolContainer uses when none is set.
const DefaultBaseSize = 10

// PoolContainer owns a NodePool whose idle instances are its own children.
// Fields are meant to be filled from configuration before Awake runs.
type PoolContainer struct {
	Node     *Node
	Prefab   *Node
	BaseSize int
	Growth   pool.GrowthMode
	Logger   *zap.Logger

	pool *NodePool
}

// NewPoolContainer returns a container node named name with default
// settings for prefab.
func NewPoolContainer(name string, prefab *Node) *PoolContainer {
	return &PoolContainer{
		Node:     NewNode(name),
		Prefab:   prefab,
		BaseSize: DefaultBaseSize,
		Growth:   pool.GrowthDouble,
	}
}

// Awake builds the pool on first call. Later calls are no-ops.
func (c *PoolContainer) Awake() error {
	if c.pool != nil {
		return nil
	}

	if c.Node == nil {
		c.Node = NewNode("Pool Container")
	}
	np, err := NewNodePool(c.Prefab, c.Node, PoolConfig{
		InitialSize: c.BaseSize,
		Growth:      c.Growth,
		Logger:      c.Logger,
	})
	if err != nil {
		return err
	}
	c.pool = np
	return nil
}

// Pool returns the pool built by Awake, or nil before Awake succeeds.
func (c *PoolContainer) Pool() *NodePool { return c.pool }
