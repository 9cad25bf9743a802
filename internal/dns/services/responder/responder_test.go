package responder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvdkamp/dnswire/internal/dns/common/log"
	"github.com/hvdkamp/dnswire/internal/dns/domain"
	"github.com/hvdkamp/dnswire/internal/dns/gateways/wire"
)

// fakeStore serves a fixed record set.
type fakeStore struct {
	records map[string][]domain.ResourceRecord
	err     error
	lookups int
}

func (f *fakeStore) Lookup(name string, t domain.RRType, c domain.RRClass) ([]domain.ResourceRecord, bool, error) {
	f.lookups++
	if f.err != nil {
		return nil, false, f.err
	}
	rrs, ok := f.records[domain.GenerateCacheKey(name, t, c)]
	return rrs, ok, nil
}

// fakePacketCache is a trivial map-backed PacketCache.
type fakePacketCache struct {
	entries map[string][]byte
}

func (f *fakePacketCache) Get(key string) ([]byte, bool) {
	p, ok := f.entries[key]
	return p, ok
}

func (f *fakePacketCache) Set(key string, packet []byte, ttl time.Duration) {
	f.entries[key] = packet
}

func aioQueryMessage(id uint16) domain.Message {
	msg := domain.Message{
		Header: domain.Header{
			ID:    id,
			Flags: domain.EncodeFlags(domain.Flags{RD: true}),
		},
		Questions: []domain.Question{{
			Name:  domain.ParseName("a.io"),
			Type:  domain.RRTypeA,
			Class: domain.RRClassIN,
		}},
	}
	msg.SetCounts()
	return msg
}

func aioStore() *fakeStore {
	return &fakeStore{records: map[string][]domain.ResourceRecord{
		"a.io|A|IN": {{
			Name:  domain.ParseName("a.io"),
			Type:  domain.RRTypeA,
			Class: domain.RRClassIN,
			TTL:   120,
			Data:  []byte{192, 0, 2, 1},
		}},
	}}
}

func TestResponder_AnswersKnownName(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})

	packet, err := r.Respond(context.Background(), aioQueryMessage(0x1111))
	require.NoError(t, err)

	resp, err := wire.DecodeMessage(packet)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1111), resp.Header.ID)
	flags := domain.DecodeFlags(resp.Header.Flags)
	assert.True(t, flags.QR)
	assert.True(t, flags.AA)
	assert.True(t, flags.RD)
	assert.Equal(t, domain.RCodeNoError, flags.RCode)

	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "a.io", resp.Questions[0].Name.String())
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, []byte{192, 0, 2, 1}, resp.Answers[0].Data)
	assert.Equal(t, uint32(120), resp.Answers[0].TTL)
}

func TestResponder_NXDomainForUnknownName(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})

	query := aioQueryMessage(7)
	query.Questions[0].Name = domain.ParseName("missing.io")

	packet, err := r.Respond(context.Background(), query)
	require.NoError(t, err)

	resp, err := wire.DecodeMessage(packet)
	require.NoError(t, err)
	flags := domain.DecodeFlags(resp.Header.Flags)
	assert.Equal(t, domain.RCodeNXDomain, flags.RCode)
	assert.False(t, flags.AA)
	assert.Empty(t, resp.Answers)
}

func TestResponder_FormErrOnMultipleQuestions(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})

	query := aioQueryMessage(9)
	query.Questions = append(query.Questions, query.Questions[0])
	query.SetCounts()

	packet, err := r.Respond(context.Background(), query)
	require.NoError(t, err)

	resp, err := wire.DecodeMessage(packet)
	require.NoError(t, err)
	assert.Equal(t, domain.RCodeFormErr, domain.DecodeFlags(resp.Header.Flags).RCode)
}

func TestResponder_NotImpOnNonQueryOpcode(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})

	query := aioQueryMessage(3)
	query.Header.Flags = domain.EncodeFlags(domain.Flags{Opcode: domain.OpcodeStatus})

	packet, err := r.Respond(context.Background(), query)
	require.NoError(t, err)

	resp, err := wire.DecodeMessage(packet)
	require.NoError(t, err)
	assert.Equal(t, domain.RCodeNotImp, domain.DecodeFlags(resp.Header.Flags).RCode)
}

func TestResponder_RejectsResponses(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})

	query := aioQueryMessage(3)
	query.Header.Flags = domain.EncodeFlags(domain.Flags{QR: true})

	_, err := r.Respond(context.Background(), query)
	assert.Error(t, err)
}

func TestResponder_ServFailOnStoreError(t *testing.T) {
	store := aioStore()
	store.err = assert.AnError
	r := New(Options{Store: store, Logger: log.NewNoopLogger()})

	data, err := wire.EncodeMessage(aioQueryMessage(5))
	require.NoError(t, err)

	packet := r.HandlePacket(context.Background(), data)
	require.NotNil(t, packet)

	resp, err := wire.DecodeMessage(packet)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), resp.Header.ID)
	assert.Equal(t, domain.RCodeServFail, domain.DecodeFlags(resp.Header.Flags).RCode)
}

func TestResponder_DropsUndecodablePackets(t *testing.T) {
	r := New(Options{Store: aioStore(), Logger: log.NewNoopLogger()})
	assert.Nil(t, r.HandlePacket(context.Background(), []byte{0x01, 0x02}))
}

func TestResponder_UsesPacketCache(t *testing.T) {
	store := aioStore()
	cache := &fakePacketCache{entries: map[string][]byte{}}
	r := New(Options{Store: store, Cache: cache, Logger: log.NewNoopLogger()})

	first, err := r.Respond(context.Background(), aioQueryMessage(0x0A0A))
	require.NoError(t, err)
	assert.Equal(t, 1, store.lookups)

	// Second query with a different ID hits the cache, not the store, and
	// the response carries the new ID.
	second, err := r.Respond(context.Background(), aioQueryMessage(0x0B0B))
	require.NoError(t, err)
	assert.Equal(t, 1, store.lookups)

	resp, err := wire.DecodeMessage(second)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0B0B), resp.Header.ID)

	// Apart from the ID the packets are identical.
	assert.Equal(t, first[2:], second[2:])
}

func TestResponder_DoesNotCacheNXDomain(t *testing.T) {
	cache := &fakePacketCache{entries: map[string][]byte{}}
	r := New(Options{Store: aioStore(), Cache: cache, Logger: log.NewNoopLogger()})

	query := aioQueryMessage(1)
	query.Questions[0].Name = domain.ParseName("missing.io")
	_, err := r.Respond(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
}
