package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"", nil},
		{".", nil},
		{"a.io", Name{Label("a"), Label("io")}},
		{"www.example.com.", Name{Label("www"), Label("example"), Label("com")}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseName(tt.in), "input %q", tt.in)
	}
}

func TestName_String(t *testing.T) {
	assert.Equal(t, ".", Name(nil).String())
	assert.Equal(t, "a.io", Name{Label("a"), Label("io")}.String())
}

func TestName_Equal(t *testing.T) {
	a := ParseName("a.io")
	assert.True(t, a.Equal(ParseName("a.io")))
	assert.False(t, a.Equal(ParseName("b.io")))
	assert.False(t, a.Equal(ParseName("a.io.nl")))
	assert.True(t, Name(nil).Equal(Name{}))
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM.", "example.com"},
		{"  a.io ", "a.io"},
		{"trailing.dots...", "trailing.dots"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalName(tt.in))
	}
}

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("WWW.Example.com.", RRTypeA, RRClassIN)
	assert.Equal(t, "www.example.com|A|IN", key)
}
