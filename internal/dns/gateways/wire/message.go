// Package wire encodes and decodes DNS messages in RFC 1035 wire format.
//
// The decoder walks the buffer with a checked cursor: header fields in fixed
// order, then as many questions and records as the header counts declare.
// Counts are trusted, so a lying header surfaces as ErrUnderflow rather than
// being rejected up front. The encoder sizes the output buffer exactly in a
// separate pass before writing a single byte.
//
// Name compression is not implemented on either path. Messages that use
// backward pointers (most answers from real resolvers do) will not decode
// correctly; see decodeName.
package wire

import (
	"fmt"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// headerSize is the fixed encoded size of the six 16-bit header fields.
const headerSize = 12

// MaxUDPSize is the largest datagram a classic (non-EDNS0) DNS/UDP exchange
// may carry. EncodeMessage does not enforce it; transports decide what to do
// with oversized packets.
const MaxUDPSize = 512

// DecodeMessage parses a raw buffer into a Message.
//
// On underflow the partially decoded message is returned together with a
// non-nil error; callers must treat every field as suspect until they have
// checked the error. No other validation is performed: counts that do not
// match the buffer are only detected when a read overruns, and label lengths
// are never range checked.
func DecodeMessage(data []byte) (domain.Message, error) {
	c := &cursor{data: data}
	var msg domain.Message
	var err error

	if msg.Header.ID, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header id: %w", err)
	}
	if msg.Header.Flags, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header flags: %w", err)
	}
	if msg.Header.QueryCount, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header qdcount: %w", err)
	}
	if msg.Header.AnswerCount, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header ancount: %w", err)
	}
	if msg.Header.AuthorityCount, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header nscount: %w", err)
	}
	if msg.Header.AdditionalCount, err = c.uint16(); err != nil {
		return msg, fmt.Errorf("wire: header arcount: %w", err)
	}

	msg.Questions = make([]domain.Question, 0, msg.Header.QueryCount)
	for i := 0; i < int(msg.Header.QueryCount); i++ {
		q, err := decodeQuestion(c)
		if err != nil {
			msg.Questions = append(msg.Questions, q)
			return msg, fmt.Errorf("wire: question %d: %w", i, err)
		}
		msg.Questions = append(msg.Questions, q)
	}

	if msg.Answers, err = decodeRecords(c, msg.Header.AnswerCount); err != nil {
		return msg, fmt.Errorf("wire: answer section: %w", err)
	}
	if msg.Authorities, err = decodeRecords(c, msg.Header.AuthorityCount); err != nil {
		return msg, fmt.Errorf("wire: authority section: %w", err)
	}
	if msg.Additionals, err = decodeRecords(c, msg.Header.AdditionalCount); err != nil {
		return msg, fmt.Errorf("wire: additional section: %w", err)
	}

	return msg, nil
}

// EncodeMessage serializes a Message into a freshly allocated buffer of
// exactly MessageSize(msg) bytes.
//
// The header count fields are derived from the section lengths, so a message
// whose counts drifted from its slices still encodes self-consistently. The
// only rejected inputs are those the wire format cannot carry at all: a
// section with more than 65535 entries, or a record payload longer than
// 65535 bytes. Datagram size limits are the caller's responsibility.
func EncodeMessage(msg domain.Message) ([]byte, error) {
	if err := checkEncodable(msg); err != nil {
		return nil, err
	}

	b := newBuilder(MessageSize(msg))
	b.uint16(msg.Header.ID)
	b.uint16(msg.Header.Flags)
	b.uint16(uint16(len(msg.Questions)))
	b.uint16(uint16(len(msg.Answers)))
	b.uint16(uint16(len(msg.Authorities)))
	b.uint16(uint16(len(msg.Additionals)))

	for _, q := range msg.Questions {
		appendQuestion(b, q)
	}
	for _, rr := range msg.Answers {
		appendRecord(b, rr)
	}
	for _, rr := range msg.Authorities {
		appendRecord(b, rr)
	}
	for _, rr := range msg.Additionals {
		appendRecord(b, rr)
	}

	return b.buf, nil
}

// MessageSize returns the exact encoded size of a message: fixed header plus
// every question and record. EncodeMessage allocates precisely this many
// bytes, so the two must never disagree.
func MessageSize(msg domain.Message) int {
	size := headerSize
	for _, q := range msg.Questions {
		size += questionSize(q)
	}
	size += recordsSize(msg.Answers)
	size += recordsSize(msg.Authorities)
	size += recordsSize(msg.Additionals)
	return size
}

func checkEncodable(msg domain.Message) error {
	if len(msg.Questions) > 65535 {
		return fmt.Errorf("wire: too many questions: %d", len(msg.Questions))
	}
	for name, section := range map[string][]domain.ResourceRecord{
		"answer":     msg.Answers,
		"authority":  msg.Authorities,
		"additional": msg.Additionals,
	} {
		if len(section) > 65535 {
			return fmt.Errorf("wire: too many %s records: %d", name, len(section))
		}
		for _, rr := range section {
			if len(rr.Data) > 65535 {
				return fmt.Errorf("wire: %s record %s: data too large: %d bytes", name, rr.Name, len(rr.Data))
			}
		}
	}
	return nil
}
