// Package records loads record files from a directory, compiles their
// values into wire-format payloads, and serves lookups from a bbolt-backed
// store fronted by a bloom filter for cheap negative answers.
package records

import (
	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// Record is one compiled record ready to serve: canonical owner name, wire
// payload, and the original text form for logging.
type Record struct {
	Name  string
	Type  domain.RRType
	Class domain.RRClass
	TTL   uint32
	Data  []byte
	Text  string
}

// Key returns the store key for the record's name, type, and class.
func (r Record) Key() string {
	return domain.GenerateCacheKey(r.Name, r.Type, r.Class)
}
