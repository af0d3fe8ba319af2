// Package resource limits the resources spent on report storage.
//
// A Controller tracks two budgets:
//
//   - Memory: bytes held by report caches (non-blocking, fail-fast)
//   - IO: bytes per second moved to and from blob stores (token bucket)
//
// Memory tracking uses a weighted semaphore for the hard limit and an atomic
// counter for usage. AcquireMemory never blocks; callers that are refused
// simply do not cache:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//	if err := rc.AcquireMemory(int64(len(b))); err == nil {
//	    // keep b
//	}
//
// AcquireIO blocks until the rate limiter admits the given number of bytes or
// the context ends. A nil *Controller imposes no limits.
package resource
