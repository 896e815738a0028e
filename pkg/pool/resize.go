package pool

import "slices"

// growTo extends the available sequence to length n with instances from
// the factory and returns how many were created. It never truncates.
func (p *Pool[T]) growTo(n int) int {
	cur := len(p.available)
	if n <= cur {
		return 0
	}

	p.available = slices.Grow(p.available, n-cur)
	for i := cur; i < n; i++ {
		v := p.factory()
		if p.hooks != nil {
			p.hooks.OnCreate(v)
		}
		p.available = append(p.available, v)
	}

	p.created += n - cur
	return n - cur
}
