package records

import (
	"fmt"
	"math"
	"time"

	bloom "github.com/bits-and-blooms/bloom/v3"
	bbolt "go.etcd.io/bbolt"

	"github.com/hvdkamp/dnswire/internal/dns/common/log"
	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

var bucketRecords = []byte("records")

// falsePositiveRate sizes the bloom filter; a miss costs one bolt View,
// so one percent is plenty.
const falsePositiveRate = 0.01

// Store serves record lookups from a bbolt database. A bloom filter built
// over the stored keys answers most misses without touching the database.
type Store struct {
	db     *bbolt.DB
	filter *bloom.BloomFilter
	logger log.Logger
}

// Open opens (or creates) the record database at path and ensures the
// records bucket exists.
func Open(path string, logger log.Logger) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("records: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace drops all stored records, writes the given set, and rebuilds the
// bloom filter over the new keys. Called once at startup after loading the
// record directory.
func (s *Store) Replace(records []Record) error {
	grouped := make(map[string][]Record)
	for _, r := range records {
		key := r.Key()
		grouped[key] = append(grouped[key], r)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketRecords); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(bucketRecords)
		if err != nil {
			return err
		}
		for key, group := range grouped {
			value, err := encodeValues(group)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(key), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("records: replace: %w", err)
	}

	m, k := bloomSize(uint64(len(grouped)), falsePositiveRate)
	filter := bloom.New(uint(m), uint(k))
	for key := range grouped {
		filter.AddString(key)
	}
	s.filter = filter

	s.logger.Info(map[string]any{
		"keys":    len(grouped),
		"records": len(records),
		"bloom_m": m,
		"bloom_k": k,
	}, "Record store rebuilt")

	return nil
}

// Lookup returns all records stored for the given name, type, and class as
// wire-ready resource records. The boolean is false when nothing is stored
// for the key.
func (s *Store) Lookup(name string, t domain.RRType, c domain.RRClass) ([]domain.ResourceRecord, bool, error) {
	key := domain.GenerateCacheKey(name, t, c)
	if s.filter != nil && !s.filter.TestString(key) {
		return nil, false, nil
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("records: lookup %s: %w", key, err)
	}
	if value == nil {
		return nil, false, nil
	}

	canonical := domain.CanonicalName(name)
	stored, err := decodeValues(Record{Name: canonical, Type: t, Class: c}, value)
	if err != nil {
		return nil, false, err
	}

	owner := domain.ParseName(canonical)
	out := make([]domain.ResourceRecord, 0, len(stored))
	texts := make([]string, 0, len(stored))
	for _, r := range stored {
		out = append(out, domain.ResourceRecord{
			Name:  owner,
			Type:  r.Type,
			Class: r.Class,
			TTL:   r.TTL,
			Data:  r.Data,
		})
		texts = append(texts, r.Text)
	}
	s.logger.Debug(map[string]any{
		"key":    key,
		"values": texts,
	}, "Record store hit")
	return out, len(out) > 0, nil
}

// bloomSize computes filter parameters from the standard formulas
//
//	m = -(n * ln p) / (ln 2)^2
//	k = (m / n) * ln 2
//
// clamped to at least 1.
func bloomSize(n uint64, p float64) (uint64, uint8) {
	if n == 0 {
		n = 1
	}
	if !(p > 0 && p < 1) {
		p = falsePositiveRate
	}
	ln2 := math.Ln2
	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (ln2 * ln2)))
	if m == 0 {
		m = 1
	}
	k := uint8(math.Max(1, math.Round((float64(m)/float64(n))*ln2)))
	return m, k
}
