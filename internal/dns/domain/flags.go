package domain

// Flags is the unpacked form of the 16-bit header status field, laid out on
// the wire (MSB first) as:
//
//	QR(1) Opcode(4) AA(1) TC(1) RD(1) RA(1) Z(3) RCode(4)
//
// The three reserved Z bits must be zero on the wire; they are never exposed
// here and stray values are discarded on decode.
type Flags struct {
	QR     bool   // false = query, true = response
	Opcode Opcode // query kind: standard, inverse, status
	AA     bool   // authoritative answer (responses only)
	TC     bool   // message truncated
	RD     bool   // recursion desired
	RA     bool   // recursion available (responses only)
	RCode  RCode  // response status code
}

// EncodeFlags packs the named fields into the wire representation.
// The reserved Z bits are always written as zero.
func EncodeFlags(f Flags) uint16 {
	var v uint16
	if f.QR {
		v |= 1 << 15
	}
	v |= uint16(f.Opcode&0xF) << 11
	if f.AA {
		v |= 1 << 10
	}
	if f.TC {
		v |= 1 << 9
	}
	if f.RD {
		v |= 1 << 8
	}
	if f.RA {
		v |= 1 << 7
	}
	v |= uint16(f.RCode & 0xF)
	return v
}

// DecodeFlags unpacks a wire status field. The reserved Z bits are dropped.
func DecodeFlags(v uint16) Flags {
	return Flags{
		QR:     v>>15&1 == 1,
		Opcode: Opcode(v >> 11 & 0xF),
		AA:     v>>10&1 == 1,
		TC:     v>>9&1 == 1,
		RD:     v>>8&1 == 1,
		RA:     v>>7&1 == 1,
		RCode:  RCode(v & 0xF),
	}
}
