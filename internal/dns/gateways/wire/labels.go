package wire

import "github.com/hvdkamp/dnswire/internal/dns/domain"

// decodeName reads length-prefixed labels until the zero terminator, which
// is consumed but not stored. Every length byte is taken literally; RFC 1035
// compression pointers (top two bits set) are NOT recognized, so compressed
// names from real-world resolvers decode into garbage labels and usually an
// underflow. That matches the reference behavior and is deliberate.
//
// Labels read before an underflow are returned alongside the error.
func decodeName(c *cursor) (domain.Name, error) {
	var name domain.Name
	for {
		n, err := c.uint8()
		if err != nil {
			return name, err
		}
		if n == 0 {
			return name, nil
		}
		raw, err := c.bytes(int(n))
		if err != nil {
			return name, err
		}
		label := make(domain.Label, len(raw))
		copy(label, raw)
		name = append(name, label)
	}
}

// appendName writes each label as a length byte plus raw bytes, then the
// mandatory zero terminator. The root (empty) name is just the terminator.
// Label lengths are written as-is; nothing enforces the 63-byte protocol
// limit, mirroring the reference codec.
func appendName(b *builder, name domain.Name) {
	for _, label := range name {
		b.uint8(uint8(len(label)))
		b.bytes(label)
	}
	b.uint8(0)
}

// nameSize is the encoded size of a name: one length byte per label plus its
// bytes, plus the terminator.
func nameSize(name domain.Name) int {
	size := 1
	for _, label := range name {
		size += 1 + len(label)
	}
	return size
}
