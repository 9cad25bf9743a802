package domain

// Header is the fixed 12-byte DNS message header. Flags carries the packed
// status bits described by Flags; the four count fields declare how many
// entries follow in each section.
type Header struct {
	ID              uint16
	Flags           uint16
	QueryCount      uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

// Question is one entry of the question section: the queried name plus the
// requested record type and class.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// CacheKey returns a lookup key derived from the question's name, type, and class.
func (q Question) CacheKey() string {
	return GenerateCacheKey(q.Name.String(), q.Type, q.Class)
}

// ResourceRecord is one answer, authority, or additional entry. Data holds
// the record payload exactly as it appears on the wire; its internal
// structure depends on Type and is never interpreted by the codec.
type ResourceRecord struct {
	Name  Name
	Type  RRType
	Class RRClass
	TTL   uint32
	Data  []byte
}

// Message is a complete DNS message: header plus the four sections.
// The whole tree is owned by whoever holds the Message value; decode builds
// a fresh one per call and encode never retains it.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
}

// SetCounts synchronizes the header count fields with the section lengths.
// Section lengths beyond 65535 are the caller's problem; the encoder rejects
// them before they can wrap.
func (m *Message) SetCounts() {
	m.Header.QueryCount = uint16(len(m.Questions))
	m.Header.AnswerCount = uint16(len(m.Answers))
	m.Header.AuthorityCount = uint16(len(m.Authorities))
	m.Header.AdditionalCount = uint16(len(m.Additionals))
}

// IsTruncated reports whether the TC bit is set in the header flags,
// without decoding the rest of the flag fields.
func (m Message) IsTruncated() bool {
	return m.Header.Flags>>9&1 == 1
}

// GenerateCacheKey returns a consistent lookup key for a name, type, and class.
// Uses pipe separators to avoid conflicts with colons in IPv6 addresses.
func GenerateCacheKey(name string, t RRType, c RRClass) string {
	return CanonicalName(name) + "|" + t.String() + "|" + c.String()
}
