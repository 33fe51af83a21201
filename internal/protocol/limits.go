package protocol

import "math"

// Limits constrains decode memory use. The length prefix itself always
// bounds encode at math.MaxUint32 entries.
type Limits struct {
	// MaxEntries rejects larger advertised counts before any entry is read.
	MaxEntries uint32
	// MaxCapacityHint caps the pre-allocation taken from the advertised count.
	MaxCapacityHint int
}

func DefaultLimits() Limits {
	return Limits{
		MaxEntries:      math.MaxUint32,
		MaxCapacityHint: 64 * 1024,
	}
}

func (l Limits) capacityHint(count uint32) int {
	if l.MaxCapacityHint <= 0 {
		return 0
	}
	return int(min(uint64(count), uint64(l.MaxCapacityHint)))
}

// Option adjusts a codec at construction.
type Option func(*options)

type options struct {
	limits Limits
}

func WithLimits(l Limits) Option {
	return func(o *options) { o.limits = l }
}

func buildOptions(opts []Option) options {
	o := options{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
