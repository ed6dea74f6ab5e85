package drawing

import (
	"image"
	"os"

	"github.com/gogpu/drawing/filter"
	"github.com/gogpu/drawing/surface"
)

// DisableCacheEnv names the environment variable that, when set to any
// non-empty value, turns item caching off for every Drawing.
const DisableCacheEnv = "DRAWING_DISABLE_CACHE"

// Default tunables.
const (
	// DefaultCacheBudget is the memory available to item caches, in bytes.
	DefaultCacheBudget = 64 << 20
	// DefaultCacheScoreThreshold is the lowest cache score that makes an
	// item a caching candidate.
	DefaultCacheScoreThreshold = 50000
)

// OutlineColors are the 0xRRGGBBAA colors of outline mode.
type OutlineColors struct {
	Item uint32
	Clip uint32
	Mask uint32
}

// DefaultOutlineColors draws items black, clips green and masks blue.
func DefaultOutlineColors() OutlineColors {
	return OutlineColors{Item: 0x000000ff, Clip: 0x00ff00ff, Mask: 0x0000ffff}
}

// Option configures a Drawing during creation.
//
// Example:
//
//	d := drawing.New(
//	    drawing.WithCacheBudget(16<<20),
//	    drawing.WithCacheLimit(image.Rect(0, 0, 1920, 1080)),
//	)
type Option func(*options)

type options struct {
	outline        bool
	renderFilters  bool
	cacheBudget    int
	cacheLimit     image.Rectangle
	hasCacheLimit  bool
	scoreThreshold float64
	outlineColors  OutlineColors
	workers        int
	cacheDisabled  bool
	quality        filter.Quality
}

func defaultOptions() options {
	return options{
		renderFilters:  true,
		cacheBudget:    DefaultCacheBudget,
		scoreThreshold: DefaultCacheScoreThreshold,
		outlineColors:  DefaultOutlineColors(),
		quality:        filter.QualityBest,
	}
}

// WithOutline starts the drawing in outline mode.
func WithOutline(outline bool) Option {
	return func(o *options) {
		o.outline = outline
	}
}

// WithRenderFilters toggles filter rendering. Filters are rendered by
// default.
func WithRenderFilters(render bool) Option {
	return func(o *options) {
		o.renderFilters = render
	}
}

// WithCacheBudget sets the memory available to item caches in bytes.
func WithCacheBudget(bytes int) Option {
	return func(o *options) {
		o.cacheBudget = max(bytes, 0)
	}
}

// WithCacheLimit restricts caches to a device rectangle, usually the
// visible area plus a margin. Without a limit caches cover the whole
// drawbox of their item.
func WithCacheLimit(r image.Rectangle) Option {
	return func(o *options) {
		o.cacheLimit = r
		o.hasCacheLimit = true
	}
}

// WithCacheScoreThreshold sets the lowest score that makes an item a
// caching candidate. Non-positive values are ignored.
func WithCacheScoreThreshold(score float64) Option {
	return func(o *options) {
		if score > 0 {
			o.scoreThreshold = score
		}
	}
}

// WithOutlineColors sets the outline mode colors.
func WithOutlineColors(c OutlineColors) Option {
	return func(o *options) {
		o.outlineColors = c
	}
}

// WithWorkers sets the number of workers used by pixel operations. The
// setting is process wide and clamped to [1,256].
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCacheDisabled turns item caching off.
func WithCacheDisabled(disabled bool) Option {
	return func(o *options) {
		o.cacheDisabled = disabled
	}
}

// WithFilterQuality trades filter accuracy for speed.
func WithFilterQuality(q filter.Quality) Option {
	return func(o *options) {
		o.quality = q
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
	if os.Getenv(DisableCacheEnv) != "" {
		o.cacheDisabled = true
	}
	if o.workers > 0 {
		surface.SetWorkers(o.workers)
	}
}
