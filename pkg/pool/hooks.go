package pool

// Factory produces one new instance. It is called synchronously from New
// and Checkout, any number of times.
type Factory[T any] func() T

// Hooks lets a consumer attach side effects to the pool lifecycle without
// wrapping Checkout and Return. OnCreate runs once for every instance right
// after the factory returns it; OnRelease runs on every Return before the
// instance becomes available again.
type Hooks[T any] interface {
	OnCreate(T)
	OnRelease(T)
}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs[T any] struct {
	Create  func(T)
	Release func(T)
}

// OnCreate implements Hooks.
func (h HookFuncs[T]) OnCreate(v T) {
	if h.Create != nil {
		h.Create(v)
	}
}

// OnRelease implements Hooks.
func (h HookFuncs[T]) OnRelease(v T) {
	if h.Release != nil {
		h.Release(v)
	}
}

// GrowEvent describes one batch of instances created by the factory.
type GrowEvent struct {
	Pool      string
	Growth    GrowthMode
	Instances int  // created by this event
	Created   int  // total created by the pool after this event
	Prefill   bool // initial fill performed by New
}

// Usage is a snapshot of the pool's accounting after a checkout or return.
type Usage struct {
	Pool      string
	InUse     int
	Available int
}

// Observer receives pool events. Implementations must not call back into
// the pool.
type Observer interface {
	OnGrow(GrowEvent)
	OnCheckout(Usage)
	OnReturn(Usage)
}

type nopObserver struct{}

func (nopObserver) OnGrow(GrowEvent) {}
func (nopObserver) OnCheckout(Usage) {}
func (nopObserver) OnReturn(Usage) {}

type multiObserver []Observer

func (m multiObserver) OnGrow(e GrowEvent) {
	for _, o := range m {
		o.OnGrow(e)
	}
}

func (m multiObserver) OnCheckout(u Usage) {
	for _, o := range m {
		o.OnCheckout(u)
	}
}

func (m multiObserver) OnReturn(u Usage) {
	for _, o := range m {
		o.OnReturn(u)
	}
}

// Observers fans events out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nopObserver{}
	case 1:
		return out[0]
	default:
		return out
	}
}
