package piper

import "sync"

// addressCacheKey identifies one FindSegment resolution, matching spec
// §4.5's "(root id, caller path, query) keyed table".
type addressCacheKey struct {
	rootID string
	caller string
	query  string
}

// addressCache memoizes FindSegment results, grounded on the teacher's
// generic TypeSafeCache (sync.Map-backed). It is owned by the root instance
// and lives exactly as long as the pipeline does, which gives the same
// effect as the spec's "weakly" qualifier without needing real weak
// references: there is nothing left to point into once the root is
// collected.
type addressCache struct {
	data sync.Map // addressCacheKey -> *Instance; a stored nil means "no match"
}

func newAddressCache() *addressCache {
	return &addressCache{}
}

func (c *addressCache) get(key addressCacheKey) (match *Instance, cached bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Instance), true
}

func (c *addressCache) put(key addressCacheKey, inst *Instance) {
	c.data.Store(key, inst)
}
