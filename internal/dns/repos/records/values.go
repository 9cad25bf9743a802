package records

import (
	"encoding/binary"
	"fmt"
)

// Store values pack every record sharing one key into a single bolt entry:
// repeated (ttl uint32, dlen uint16, data, tlen uint16, text) tuples.

func encodeValues(records []Record) ([]byte, error) {
	var out []byte
	for _, r := range records {
		if len(r.Data) > 65535 {
			return nil, fmt.Errorf("records: %s: data too large: %d bytes", r.Name, len(r.Data))
		}
		if len(r.Text) > 65535 {
			return nil, fmt.Errorf("records: %s: text too large: %d bytes", r.Name, len(r.Text))
		}
		var hdr [6]byte
		binary.BigEndian.PutUint32(hdr[0:4], r.TTL)
		binary.BigEndian.PutUint16(hdr[4:6], uint16(len(r.Data)))
		out = append(out, hdr[:]...)
		out = append(out, r.Data...)
		var tlen [2]byte
		binary.BigEndian.PutUint16(tlen[:], uint16(len(r.Text)))
		out = append(out, tlen[:]...)
		out = append(out, r.Text...)
	}
	return out, nil
}

// decodeValues unpacks a bolt entry back into records. Name, type, and class
// come from the key, so the caller supplies them.
func decodeValues(key Record, value []byte) ([]Record, error) {
	var records []Record
	for off := 0; off < len(value); {
		if off+6 > len(value) {
			return nil, fmt.Errorf("records: corrupt store entry for %s", key.Name)
		}
		ttl := binary.BigEndian.Uint32(value[off : off+4])
		dlen := int(binary.BigEndian.Uint16(value[off+4 : off+6]))
		off += 6
		if off+dlen+2 > len(value) {
			return nil, fmt.Errorf("records: corrupt store entry for %s", key.Name)
		}
		data := make([]byte, dlen)
		copy(data, value[off:off+dlen])
		off += dlen
		tlen := int(binary.BigEndian.Uint16(value[off : off+2]))
		off += 2
		if off+tlen > len(value) {
			return nil, fmt.Errorf("records: corrupt store entry for %s", key.Name)
		}
		text := string(value[off : off+tlen])
		off += tlen

		records = append(records, Record{
			Name:  key.Name,
			Type:  key.Type,
			Class: key.Class,
			TTL:   ttl,
			Data:  data,
			Text:  text,
		})
	}
	return records, nil
}
