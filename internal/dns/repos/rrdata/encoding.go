package rrdata

import (
	"fmt"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// Encode compiles a record value based on its type into wire-format payload
// bytes.
func Encode(rrType domain.RRType, data string) ([]byte, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return encodeAData(data)
	case domain.RRTypeNS: // 2
		return encodeDomainName(data)
	case domain.RRTypeCNAME: // 5
		return encodeDomainName(data)
	case domain.RRTypePTR: // 12
		return encodeDomainName(data)
	case domain.RRTypeMX: // 15
		return encodeMXData(data)
	case domain.RRTypeTXT: // 16
		return encodeTXTData(data)
	case domain.RRTypeAAAA: // 28
		return encodeAAAAData(data)
	default:
		return nil, fmt.Errorf("%s record encoding not supported in record files", rrType)
	}
}
