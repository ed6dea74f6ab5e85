package filter

import (
	"math"
	"sync"
)

// blurMultiplier is how many standard deviations a blur kernel covers.
const blurMultiplier = 3

// KernelRadius returns the half width of the blur kernel for a standard
// deviation: ceil(3*sigma).
func KernelRadius(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	return int(math.Ceil(math.Abs(sigma) * blurMultiplier))
}

// GaussianKernel returns the half kernel of a Gaussian with standard
// deviation sigma: entry i weighs the taps at distance i on both sides.
// The weights are normalized exactly, entry 0 absorbing the rounding, so
// the full kernel sums to one.
//
// For sigma <= 0, returns [1] (identity).
func GaussianKernel(sigma float64) []float64 {
	r := KernelRadius(sigma)
	if r == 0 {
		return []float64{1}
	}
	k := make([]float64, r+1)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range k {
		x := float64(i)
		k[i] = math.Exp(-(x * x) / twoSigmaSq)
		if i > 0 {
			sum += 2 * k[i]
		} else {
			sum += k[i]
		}
	}
	rest := 0.0
	for i := 1; i < len(k); i++ {
		k[i] /= sum
		rest += k[i]
	}
	k[0] = 1 - 2*rest
	return k
}

// kernelCache caches computed Gaussian kernels to avoid recomputation.
// Key is sigma * 100 (to handle float precision), value is kernel.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float64
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float64),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it. Only
// sigmas on the 0.01 grid are cached; others are computed each time.
func (c *kernelCache) get(sigma float64) []float64 {
	key := int(math.Round(sigma * 100))
	if float64(key) != sigma*100 {
		return GaussianKernel(sigma)
	}

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// drop half
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// CachedGaussianKernel returns a cached Gaussian half kernel for sigma.
func CachedGaussianKernel(sigma float64) []float64 {
	return defaultKernelCache.get(sigma)
}
