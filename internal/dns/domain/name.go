package domain

import "strings"

// Label is one length-prefixed segment of a domain name. On the wire it is
// stored as a single length byte followed by that many raw bytes.
type Label []byte

// Name is an ordered sequence of labels. The zero-length terminator that
// follows a name on the wire is not represented; an empty Name is the root.
type Name []Label

// ParseName splits a dotted presentation-form name into labels.
// The empty string and "." both parse to the root (zero labels).
func ParseName(s string) Name {
	s = strings.Trim(s, ".")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ".")
	name := make(Name, 0, len(parts))
	for _, p := range parts {
		name = append(name, Label(p))
	}
	return name
}

// String returns the dotted presentation form of the name.
// The root name renders as ".".
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	parts := make([]string, 0, len(n))
	for _, l := range n {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two names contain identical labels.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if string(n[i]) != string(other[i]) {
			return false
		}
	}
	return true
}

// CanonicalName normalizes a presentation-form name for use in lookup keys:
// lowercased, trimmed, no trailing dot.
func CanonicalName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}
