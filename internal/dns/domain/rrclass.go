package domain

import "fmt"

// RRClass represents a DNS record class. IN is the only class seen in
// practice; the others survive for completeness.
type RRClass uint16

const (
	RRClassIN  RRClass = 1   // Internet
	RRClassCH  RRClass = 3   // Chaos
	RRClassHS  RRClass = 4   // Hesiod
	RRClassANY RRClass = 255 // Any class (query only)
)

// IsValid returns true if the RRClass is a known class value.
func (c RRClass) IsValid() bool {
	switch c {
	case RRClassIN, RRClassCH, RRClassHS, RRClassANY:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	case RRClassANY:
		return "ANY"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}
