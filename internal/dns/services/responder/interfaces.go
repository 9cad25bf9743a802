package responder

import (
	"time"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// RecordStore answers lookups for a single name, type, and class.
type RecordStore interface {
	Lookup(name string, rrtype domain.RRType, class domain.RRClass) ([]domain.ResourceRecord, bool, error)
}

// PacketCache caches encoded response packets by question key.
// A nil cache disables caching.
type PacketCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, packet []byte, ttl time.Duration)
}
