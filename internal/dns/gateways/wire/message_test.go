package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// aioQuery is a standard recursion-desired A/IN query for "a.io":
// 12-byte header, one question, no records.
var aioQuery = []byte{
	0x12, 0x34, // ID
	0x01, 0x00, // flags: RD set
	0x00, 0x01, // QDCOUNT
	0x00, 0x00, // ANCOUNT
	0x00, 0x00, // NSCOUNT
	0x00, 0x00, // ARCOUNT
	0x01, 'a', 0x02, 'i', 'o', 0x00, // a.io
	0x00, 0x01, // QTYPE A
	0x00, 0x01, // QCLASS IN
}

func aioMessage() domain.Message {
	return domain.Message{
		Header: domain.Header{
			ID:         0x1234,
			Flags:      0x0100,
			QueryCount: 1,
		},
		Questions: []domain.Question{{
			Name:  domain.Name{domain.Label("a"), domain.Label("io")},
			Type:  domain.RRTypeA,
			Class: domain.RRClassIN,
		}},
	}
}

func TestEncodeMessage_GoldenQuery(t *testing.T) {
	data, err := EncodeMessage(aioMessage())
	require.NoError(t, err)
	assert.Len(t, data, 22)
	assert.Equal(t, aioQuery, data)
}

func TestDecodeMessage_GoldenQuery(t *testing.T) {
	msg, err := DecodeMessage(aioQuery)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), msg.Header.ID)
	assert.Equal(t, uint16(0x0100), msg.Header.Flags)
	assert.Equal(t, uint16(1), msg.Header.QueryCount)
	assert.Equal(t, uint16(0), msg.Header.AnswerCount)
	require.Len(t, msg.Questions, 1)
	assert.Equal(t, "a.io", msg.Questions[0].Name.String())
	assert.Equal(t, domain.RRTypeA, msg.Questions[0].Type)
	assert.Equal(t, domain.RRClassIN, msg.Questions[0].Class)
	assert.Empty(t, msg.Answers)
	assert.Empty(t, msg.Authorities)
	assert.Empty(t, msg.Additionals)
}

func TestMessage_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.Message
	}{
		{
			name: "query only",
			msg:  aioMessage(),
		},
		{
			name: "empty message",
			msg:  domain.Message{Header: domain.Header{ID: 7, Flags: 0x8180}},
		},
		{
			name: "root name question",
			msg: domain.Message{
				Header: domain.Header{ID: 1, QueryCount: 1},
				Questions: []domain.Question{{
					Name:  nil,
					Type:  domain.RRTypeNS,
					Class: domain.RRClassIN,
				}},
			},
		},
		{
			name: "response with all sections",
			msg: domain.Message{
				Header: domain.Header{
					ID:              0xBEEF,
					Flags:           0x8580,
					QueryCount:      1,
					AnswerCount:     2,
					AuthorityCount:  1,
					AdditionalCount: 1,
				},
				Questions: []domain.Question{{
					Name:  domain.ParseName("www.example.com"),
					Type:  domain.RRTypeA,
					Class: domain.RRClassIN,
				}},
				Answers: []domain.ResourceRecord{
					{
						Name:  domain.ParseName("www.example.com"),
						Type:  domain.RRTypeA,
						Class: domain.RRClassIN,
						TTL:   300,
						Data:  []byte{192, 0, 2, 10},
					},
					{
						Name:  domain.ParseName("www.example.com"),
						Type:  domain.RRTypeA,
						Class: domain.RRClassIN,
						TTL:   300,
						Data:  []byte{192, 0, 2, 11},
					},
				},
				Authorities: []domain.ResourceRecord{{
					Name:  domain.ParseName("example.com"),
					Type:  domain.RRTypeNS,
					Class: domain.RRClassIN,
					TTL:   86400,
					Data:  []byte{0x02, 'n', 's', 0x00},
				}},
				Additionals: []domain.ResourceRecord{{
					Name:  domain.ParseName("ns"),
					Type:  domain.RRTypeA,
					Class: domain.RRClassIN,
					TTL:   86400,
					Data:  []byte{192, 0, 2, 53},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeMessage(tt.msg)
			require.NoError(t, err)

			decoded, err := DecodeMessage(data)
			require.NoError(t, err)

			assert.Equal(t, tt.msg.Header.ID, decoded.Header.ID)
			assert.Equal(t, tt.msg.Header.Flags, decoded.Header.Flags)
			assert.Equal(t, uint16(len(tt.msg.Questions)), decoded.Header.QueryCount)
			assert.Equal(t, uint16(len(tt.msg.Answers)), decoded.Header.AnswerCount)
			assert.Equal(t, uint16(len(tt.msg.Authorities)), decoded.Header.AuthorityCount)
			assert.Equal(t, uint16(len(tt.msg.Additionals)), decoded.Header.AdditionalCount)

			require.Len(t, decoded.Questions, len(tt.msg.Questions))
			for i, q := range tt.msg.Questions {
				assert.True(t, q.Name.Equal(decoded.Questions[i].Name))
				assert.Equal(t, q.Type, decoded.Questions[i].Type)
				assert.Equal(t, q.Class, decoded.Questions[i].Class)
			}
			assertRecordsEqual(t, tt.msg.Answers, decoded.Answers)
			assertRecordsEqual(t, tt.msg.Authorities, decoded.Authorities)
			assertRecordsEqual(t, tt.msg.Additionals, decoded.Additionals)
		})
	}
}

func assertRecordsEqual(t *testing.T, want, got []domain.ResourceRecord) {
	t.Helper()
	require.Len(t, got, len(want))
	for i, rr := range want {
		assert.True(t, rr.Name.Equal(got[i].Name), "record %d name", i)
		assert.Equal(t, rr.Type, got[i].Type)
		assert.Equal(t, rr.Class, got[i].Class)
		assert.Equal(t, rr.TTL, got[i].TTL)
		assert.Equal(t, rr.Data, got[i].Data)
	}
}

func TestMessageSize_MatchesEncodedLength(t *testing.T) {
	msgs := []domain.Message{
		{},
		aioMessage(),
		{
			Header: domain.Header{ID: 2},
			Answers: []domain.ResourceRecord{{
				Name:  domain.ParseName("cache.example.org"),
				Type:  domain.RRTypeTXT,
				Class: domain.RRClassIN,
				TTL:   60,
				Data:  []byte{0x05, 'h', 'e', 'l', 'l', 'o'},
			}},
		},
	}
	for _, msg := range msgs {
		data, err := EncodeMessage(msg)
		require.NoError(t, err)
		assert.Equal(t, MessageSize(msg), len(data))
	}
}

func TestDecodeMessage_Underflow(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "empty buffer",
			data: nil,
		},
		{
			name: "truncated header",
			data: []byte{0x12, 0x34, 0x01},
		},
		{
			name: "qdcount exceeds buffer",
			data: []byte{
				0x00, 0x01, 0x00, 0x00,
				0x00, 0x05, // QDCOUNT=5, no question bytes follow
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "ancount exceeds buffer",
			data: []byte{
				0x00, 0x01, 0x00, 0x00,
				0x00, 0x00,
				0x00, 0x03, // ANCOUNT=3
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "label length overruns buffer",
			data: []byte{
				0x00, 0x01, 0x00, 0x00,
				0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x3F, 'a', 'b', // claims 63 bytes, has 2
			},
		},
		{
			name: "rdata longer than buffer",
			data: []byte{
				0x00, 0x01, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00,
				0x00,       // root owner name
				0x00, 0x01, // type
				0x00, 0x01, // class
				0x00, 0x00, 0x00, 0x3C, // ttl
				0x00, 0x10, // rdlength=16
				0x01, 0x02, // only 2 bytes of rdata
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.data)
			assert.ErrorIs(t, err, ErrUnderflow)
		})
	}
}

func TestDecodeMessage_PartialResultOnUnderflow(t *testing.T) {
	// Valid question, then an answer count the buffer cannot satisfy.
	data, err := EncodeMessage(aioMessage())
	require.NoError(t, err)
	data[7] = 2 // bump ANCOUNT in the raw header

	decoded, err := DecodeMessage(data)
	assert.ErrorIs(t, err, ErrUnderflow)

	// Everything read before the overrun is still there.
	assert.Equal(t, uint16(0x1234), decoded.Header.ID)
	require.Len(t, decoded.Questions, 1)
	assert.Equal(t, "a.io", decoded.Questions[0].Name.String())
}

func TestEncodeMessage_RejectsOversizedData(t *testing.T) {
	msg := domain.Message{
		Answers: []domain.ResourceRecord{{
			Name:  domain.ParseName("big.example.com"),
			Type:  domain.RRTypeTXT,
			Class: domain.RRClassIN,
			Data:  make([]byte, 65536),
		}},
	}
	_, err := EncodeMessage(msg)
	assert.Error(t, err)
}

func TestEncodeMessage_CountsFollowSections(t *testing.T) {
	// Header counts that disagree with the slices are corrected on encode.
	msg := aioMessage()
	msg.Header.QueryCount = 9

	data, err := EncodeMessage(msg)
	require.NoError(t, err)

	decoded, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), decoded.Header.QueryCount)
}
