// Package transport provides the network listeners that feed raw packets to
// the responder and send its encoded replies back out.
package transport

import "context"

// PacketHandler turns one raw query packet into one raw response packet.
// A nil return means no response should be sent.
type PacketHandler interface {
	HandlePacket(ctx context.Context, data []byte) []byte
}

// ServerTransport is implemented by each supported listener protocol.
type ServerTransport interface {
	// Start begins listening and handling packets via the provided handler.
	Start(ctx context.Context, handler PacketHandler) error

	// Stop gracefully shuts down the transport.
	Stop() error

	// Address returns the network address the transport is bound to.
	Address() string
}
