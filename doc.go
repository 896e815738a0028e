// Package stockpile is a toolkit for recycling expensive objects instead of
// rebuilding them.
//
// # Overview
//
// The core is pool.Pool[T], a growable, never-shrinking free list:
//   - Checkout pops the most recently returned instance, growing first if
//     the pool is empty
//   - Return hands an instance back after running its release hook
//   - Lean growth creates one instance per empty checkout; double growth
//     creates a fixed step (the pool's base size)
//
// pool.Locked wraps a pool for use from several goroutines, and the scene
// package specializes the pool for scene-graph nodes whose idle instances
// live deactivated under a holding container.
//
// # Quick Start
//
//	p, err := pool.New(pool.Config[*Bullet]{
//	    Name:        "bullets",
//	    Factory:     NewBullet,
//	    InitialSize: 16,
//	    Growth:      pool.GrowthDouble,
//	})
//	if err != nil {
//	    return err
//	}
//
//	b := p.Checkout()
//	defer p.Return(b)
//
// # Observability
//
// Pools report growth, checkouts and returns to a pool.Observer. The metrics
// package exposes them to Prometheus and the observability package turns
// growth events into OpenTelemetry spans. All logging goes through zap via
// the logger package.
//
// # Command Line
//
// cmd/stockpile simulates demand against configured pools:
//
//	stockpile config init stockpile.yaml
//	stockpile simulate --config stockpile.yaml --workers 4 --metrics
//	stockpile scene --count 25
package stockpile
