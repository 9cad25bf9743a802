package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRRType_String(t *testing.T) {
	assert.Equal(t, "A", RRTypeA.String())
	assert.Equal(t, "AAAA", RRTypeAAAA.String())
	assert.Equal(t, "TYPE999", RRType(999).String())
}

func TestRRType_IsValid(t *testing.T) {
	assert.True(t, RRTypeCNAME.IsValid())
	assert.False(t, RRType(999).IsValid())
}

func TestRRTypeFromString(t *testing.T) {
	assert.Equal(t, RRTypeMX, RRTypeFromString("MX"))
	assert.Equal(t, RRType(0), RRTypeFromString("NOPE"))
}

func TestRRClass_String(t *testing.T) {
	assert.Equal(t, "IN", RRClassIN.String())
	assert.Equal(t, "CLASS9", RRClass(9).String())
}

func TestRCode_String(t *testing.T) {
	assert.Equal(t, "NOERROR", RCodeNoError.String())
	assert.Equal(t, "NXDOMAIN", RCodeNXDomain.String())
	assert.Equal(t, "UNKNOWN(11)", RCode(11).String())
}

func TestOpcode_String(t *testing.T) {
	assert.Equal(t, "QUERY", OpcodeQuery.String())
	assert.Equal(t, "STATUS", OpcodeStatus.String())
	assert.Equal(t, "OPCODE7", Opcode(7).String())
}
