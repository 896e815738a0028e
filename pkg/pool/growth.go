package pool

import (
	"strings"

	"github.com/ajitpratap0/stockpile/pkg/errors"
)

// GrowthMode selects how many instances an empty pool creates before
// handing one out.
//
//	GrowthDouble: create BaseSize instances per growth event. Fewer factory
//	              bursts at the cost of memory headroom.
//	GrowthLean:   create exactly one instance per growth event. Smallest
//	              footprint, one factory call per miss under bursty demand.
//
// The zero value is GrowthDouble.
type GrowthMode uint8

const (
	// GrowthDouble grows by the pool's base size.
	GrowthDouble GrowthMode = iota
	// GrowthLean grows by a single instance.
	GrowthLean
)

// String returns the lowercase name of the mode.
func (m GrowthMode) String() string {
	switch m {
	case GrowthDouble:
		return "double"
	case GrowthLean:
		return "lean"
	default:
		return "unknown"
	}
}

func (m GrowthMode) valid() bool {
	return m == GrowthDouble || m == GrowthLean
}

// ParseGrowthMode parses "lean" or "double" (case-insensitive). An empty
// string yields the default, GrowthDouble.
func ParseGrowthMode(s string) (GrowthMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "double":
		return GrowthDouble, nil
	case "lean":
		return GrowthLean, nil
	default:
		return GrowthDouble, errors.InvalidArgument("growth", "unknown growth mode").
			WithDetail("value", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m GrowthMode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, errors.InvalidArgument("growth", "unknown growth mode").
			WithDetail("value", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *GrowthMode) UnmarshalText(text []byte) error {
	parsed, err := ParseGrowthMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
