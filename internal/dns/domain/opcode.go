package domain

import "fmt"

// Opcode represents the kind of query carried by a DNS message.
type Opcode uint8

const (
	OpcodeQuery  Opcode = 0 // standard query
	OpcodeIQuery Opcode = 1 // inverse query (obsolete)
	OpcodeStatus Opcode = 2 // server status request
	OpcodeNotify Opcode = 4
	OpcodeUpdate Opcode = 5
)

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("OPCODE%d", uint8(o))
	}
}
