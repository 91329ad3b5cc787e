package backend

import lru "github.com/hashicorp/golang-lru/v2"

// keyCache remembers API key secrets that already passed bcrypt
// verification, keyed by their sha256 fingerprint. The value is the stored
// hash the secret was checked against, so rotating a key invalidates the
// entry. Activity, expiry and memberships are always read from the store.
type keyCache struct {
	keys *lru.Cache[string, string]
}

func newKeyCache(size int) *keyCache {
	if size <= 0 {
		size = 1
	}
	c := &keyCache{}
	cache, _ := lru.New[string, string](size)
	c.keys = cache
	return c
}

// Verified reports whether secret was verified against hash before.
func (c *keyCache) Verified(secret, hash string) bool {
	h, ok := c.keys.Get(fingerprint(secret))
	return ok && h == hash
}

func (c *keyCache) Set(secret, hash string) {
	c.keys.Add(fingerprint(secret), hash)
}

func (c *keyCache) Delete(secret string) {
	c.keys.Remove(fingerprint(secret))
}

func (c *keyCache) Len() int {
	return c.keys.Len()
}
