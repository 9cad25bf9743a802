// Package responder turns decoded query messages into encoded response
// packets, answering from the record store. It is the resolution policy the
// wire codec itself stays ignorant of.
package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/hvdkamp/dnswire/internal/dns/common/log"
	"github.com/hvdkamp/dnswire/internal/dns/domain"
	"github.com/hvdkamp/dnswire/internal/dns/gateways/wire"
)

// Responder answers DNS queries from a record store, optionally caching the
// encoded packets it produces.
type Responder struct {
	store  RecordStore
	cache  PacketCache
	logger log.Logger
}

type Options struct {
	Store  RecordStore
	Cache  PacketCache // optional
	Logger log.Logger
}

func New(opts Options) *Responder {
	return &Responder{
		store:  opts.Store,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// HandlePacket decodes a raw query, resolves it, and returns the encoded
// response packet. A nil return means the packet was unusable and nothing
// should be sent back.
func (r *Responder) HandlePacket(ctx context.Context, data []byte) []byte {
	query, err := wire.DecodeMessage(data)
	if err != nil {
		// Partial decodes are not trustworthy enough to answer; even the
		// header ID may be garbage. Drop the packet.
		r.logger.Warn(map[string]any{
			"error": err.Error(),
			"size":  len(data),
		}, "Dropping undecodable query")
		return nil
	}

	resp, err := r.Respond(ctx, query)
	if err != nil {
		r.logger.Error(map[string]any{
			"query_id": query.Header.ID,
			"error":    err.Error(),
		}, "Failed to build response")
		return r.refuse(query, domain.RCodeServFail)
	}
	return resp
}

// Respond builds and encodes the response for an already decoded query.
func (r *Responder) Respond(ctx context.Context, query domain.Message) ([]byte, error) {
	flags := domain.DecodeFlags(query.Header.Flags)
	if flags.QR {
		return nil, fmt.Errorf("responder: message is a response, not a query")
	}
	if flags.Opcode != domain.OpcodeQuery {
		return r.refuseErr(query, domain.RCodeNotImp)
	}
	if len(query.Questions) != 1 {
		return r.refuseErr(query, domain.RCodeFormErr)
	}
	question := query.Questions[0]

	if r.cache != nil {
		if packet, found := r.cache.Get(question.CacheKey()); found {
			// Cached packets differ only in ID; patch it in place on a copy.
			out := make([]byte, len(packet))
			copy(out, packet)
			out[0] = byte(query.Header.ID >> 8)
			out[1] = byte(query.Header.ID)
			r.logger.Debug(map[string]any{
				"query_id": query.Header.ID,
				"key":      question.CacheKey(),
			}, "Answered from packet cache")
			return out, nil
		}
	}

	answers, found, err := r.store.Lookup(question.Name.String(), question.Type, question.Class)
	if err != nil {
		return nil, fmt.Errorf("responder: store lookup: %w", err)
	}

	rcode := domain.RCodeNoError
	if !found {
		rcode = domain.RCodeNXDomain
	}

	resp := domain.Message{
		Header: domain.Header{
			ID: query.Header.ID,
			Flags: domain.EncodeFlags(domain.Flags{
				QR:    true,
				AA:    found,
				RD:    flags.RD,
				RCode: rcode,
			}),
		},
		Questions: []domain.Question{question},
		Answers:   answers,
	}
	resp.SetCounts()

	packet, err := wire.EncodeMessage(resp)
	if err != nil {
		return nil, fmt.Errorf("responder: encode: %w", err)
	}

	r.logger.Debug(map[string]any{
		"query_id": query.Header.ID,
		"name":     question.Name.String(),
		"type":     question.Type.String(),
		"rcode":    rcode.String(),
		"answers":  len(answers),
		"size":     len(packet),
	}, "Built DNS response")

	if r.cache != nil && found {
		r.cache.Set(question.CacheKey(), packet, minTTL(answers))
	}
	return packet, nil
}

// refuse builds a minimal error response echoing the query ID and questions.
func (r *Responder) refuse(query domain.Message, rcode domain.RCode) []byte {
	packet, err := r.refuseErr(query, rcode)
	if err != nil {
		r.logger.Error(map[string]any{
			"query_id": query.Header.ID,
			"error":    err.Error(),
		}, "Failed to encode refusal")
		return nil
	}
	return packet
}

func (r *Responder) refuseErr(query domain.Message, rcode domain.RCode) ([]byte, error) {
	flags := domain.DecodeFlags(query.Header.Flags)
	resp := domain.Message{
		Header: domain.Header{
			ID: query.Header.ID,
			Flags: domain.EncodeFlags(domain.Flags{
				QR:    true,
				RD:    flags.RD,
				RCode: rcode,
			}),
		},
		Questions: query.Questions,
	}
	resp.SetCounts()
	return wire.EncodeMessage(resp)
}

// minTTL returns the smallest TTL among the answers as a cache lifetime.
func minTTL(answers []domain.ResourceRecord) time.Duration {
	if len(answers) == 0 {
		return 0
	}
	lowest := answers[0].TTL
	for _, rr := range answers[1:] {
		if rr.TTL < lowest {
			lowest = rr.TTL
		}
	}
	return time.Duration(lowest) * time.Second
}
