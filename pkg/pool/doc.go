// Package pool provides a growable pool of reusable instances. Callers
// check instances out, use them, and return them; the pool only asks its
// factory for new instances when nothing is available.
//
// Growth
//
// The growth mode is fixed at construction:
//
//   - GrowthDouble (default): an empty pool creates BaseSize instances,
//     BaseSize defaulting to the InitialSize given to New. Fewer factory
//     bursts, more idle instances.
//   - GrowthLean: an empty pool creates a single instance.
//
// A Double pool whose base size is 0 grows by one instance, the same as
// Lean, and logs a warning the first time it does so.
//
// The pool never shrinks and never destroys instances. Available plus
// in-use always equals the number of instances the factory has produced.
//
// Usage
//
//	bullets, err := pool.New(pool.Config[*Bullet]{
//		Name:        "bullets",
//		Factory:     func() *Bullet { return &Bullet{} },
//		InitialSize: 32,
//	})
//	if err != nil {
//		return err
//	}
//
//	b := bullets.Checkout()
//	defer bullets.Return(b)
//
// Hooks
//
// Side effects that belong to a specific kind of instance (resetting state,
// re-parenting a scene node, deactivating it) are attached with Hooks
// rather than by wrapping Checkout and Return:
//
//	pool.Config[*Node]{
//		Factory: newNode,
//		Hooks: pool.HookFuncs[*Node]{
//			Create:  func(n *Node) { n.SetActive(false) },
//			Release: func(n *Node) { n.Reset() },
//		},
//	}
//
// Observers
//
// Metrics and tracing subscribe through the Observer interface. Combine
// several with Observers.
//
// Concurrency
//
// Pool is meant for a single goroutine, such as a game or simulation loop.
// Locked wraps a Pool with a mutex for shared use.
package pool
