// Package msgcache caches encoded response packets keyed by question, so
// repeat queries skip both the store lookup and re-encoding. Entries expire
// with the shortest TTL among the answers they carry.
package msgcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hvdkamp/dnswire/internal/dns/common/clock"
)

type entry struct {
	packet    []byte
	expiresAt time.Time
}

// Cache is a TTL-aware LRU of encoded response packets.
type Cache struct {
	lru *lru.Cache[string, entry]
	clk clock.Clock
}

// New returns a Cache holding at most size entries.
func New(size int, clk clock.Clock) (*Cache, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c, clk: clk}, nil
}

// Set stores a packet under key for ttl. Non-positive TTLs are not cached;
// a zero-TTL answer must be rebuilt every time.
func (c *Cache) Set(key string, packet []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.lru.Add(key, entry{packet: packet, expiresAt: c.clk.Now().Add(ttl)})
}

// Get returns the cached packet for key if present and not expired.
// Expired entries are evicted on the way out.
func (c *Cache) Get(key string) ([]byte, bool) {
	e, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if !c.clk.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.packet, true
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	return c.lru.Len()
}
