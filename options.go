package globe

import "log/slog"

// Option configures a Mapper during creation.
//
// Example:
//
//	m, err := globe.New(src,
//	    globe.WithMaxLevel(5),
//	    globe.WithParallelism(runtime.NumCPU()),
//	)
type Option func(*options)

// options holds optional configuration for Mapper creation.
type options struct {
	maxLevel    int
	interlace   bool
	parallelism int
	placeholder uint32
	fixedStride int
	logger      *slog.Logger
}

// DefaultMaxLevel is the tile level cap used when WithMaxLevel is not given.
const DefaultMaxLevel = 5

// defaultOptions returns the default mapper options.
func defaultOptions() options {
	return options{
		maxLevel:    DefaultMaxLevel,
		parallelism: 1,
	}
}

// WithMaxLevel caps the tile level. Negative values are treated as 0.
func WithMaxLevel(level int) Option {
	return func(o *options) {
		if level < 0 {
			level = 0
		}
		o.maxLevel = level
	}
}

// WithInterlace renders every other row and duplicates it onto the next,
// roughly halving the frame time at the cost of vertical resolution. Where
// the next row's chord is wider, its ends are sampled exactly.
func WithInterlace(on bool) Option {
	return func(o *options) {
		o.interlace = on
	}
}

// WithParallelism splits each frame into n horizontal bands rendered
// concurrently. Values below 1 are treated as 1.
//
// The tile source must be safe for concurrent LoadTile calls when n > 1.
// [tile.Pyramid] is.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}

// WithPlaceholder sets the packed 0xAARRGGBB pixel written where a tile
// could not be loaded. The default is 0 (transparent black).
func WithPlaceholder(argb uint32) Option {
	return func(o *options) {
		o.placeholder = argb
	}
}

// WithFixedStride forces the interpolation stride instead of deriving it
// from the surface and globe size. n = 1 disables interpolation; n <= 0
// restores automatic selection.
func WithFixedStride(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.fixedStride = n
	}
}

// WithLogger sets a logger for this Mapper only, overriding the package
// logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
