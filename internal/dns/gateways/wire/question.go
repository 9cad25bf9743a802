package wire

import "github.com/hvdkamp/dnswire/internal/dns/domain"

// decodeQuestion reads one question: name, then type and class.
func decodeQuestion(c *cursor) (domain.Question, error) {
	var q domain.Question
	name, err := decodeName(c)
	if err != nil {
		return q, err
	}
	q.Name = name
	t, err := c.uint16()
	if err != nil {
		return q, err
	}
	q.Type = domain.RRType(t)
	cl, err := c.uint16()
	if err != nil {
		return q, err
	}
	q.Class = domain.RRClass(cl)
	return q, nil
}

func appendQuestion(b *builder, q domain.Question) {
	appendName(b, q.Name)
	b.uint16(uint16(q.Type))
	b.uint16(uint16(q.Class))
}

// questionSize is the encoded size of a question: its name plus the two
// 16-bit type and class fields.
func questionSize(q domain.Question) int {
	return nameSize(q.Name) + 4
}
