package wire

import "github.com/hvdkamp/dnswire/internal/dns/domain"

// decodeRecord reads one resource record: owner name, type, class, TTL,
// rdlength, then exactly rdlength payload bytes. The payload is copied out
// of the input buffer and kept opaque; its internal structure depends on the
// record type and is not interpreted here.
func decodeRecord(c *cursor) (domain.ResourceRecord, error) {
	var rr domain.ResourceRecord
	name, err := decodeName(c)
	if err != nil {
		return rr, err
	}
	rr.Name = name
	t, err := c.uint16()
	if err != nil {
		return rr, err
	}
	rr.Type = domain.RRType(t)
	cl, err := c.uint16()
	if err != nil {
		return rr, err
	}
	rr.Class = domain.RRClass(cl)
	ttl, err := c.uint32()
	if err != nil {
		return rr, err
	}
	rr.TTL = ttl
	dataLen, err := c.uint16()
	if err != nil {
		return rr, err
	}
	raw, err := c.bytes(int(dataLen))
	if err != nil {
		return rr, err
	}
	rr.Data = make([]byte, len(raw))
	copy(rr.Data, raw)
	return rr, nil
}

// decodeRecords reads count records into a fresh list. The count comes
// straight from the header and is trusted; a count larger than the remaining
// buffer shows up as an underflow on some record. Records decoded before the
// failure are returned with the error.
func decodeRecords(c *cursor, count uint16) ([]domain.ResourceRecord, error) {
	records := make([]domain.ResourceRecord, 0, count)
	for i := 0; i < int(count); i++ {
		rr, err := decodeRecord(c)
		if err != nil {
			return records, err
		}
		records = append(records, rr)
	}
	return records, nil
}

// appendRecord writes one record, payload bytes verbatim. rdlength is
// derived from the payload length; the caller has already checked it fits
// in 16 bits.
func appendRecord(b *builder, rr domain.ResourceRecord) {
	appendName(b, rr.Name)
	b.uint16(uint16(rr.Type))
	b.uint16(uint16(rr.Class))
	b.uint32(rr.TTL)
	b.uint16(uint16(len(rr.Data)))
	b.bytes(rr.Data)
}

// recordSize is the encoded size of a record: name + type(2) + class(2) +
// ttl(4) + rdlength(2) + payload.
func recordSize(rr domain.ResourceRecord) int {
	return nameSize(rr.Name) + 10 + len(rr.Data)
}

func recordsSize(records []domain.ResourceRecord) int {
	size := 0
	for _, rr := range records {
		size += recordSize(rr)
	}
	return size
}
