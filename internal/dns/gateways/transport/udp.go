package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/hvdkamp/dnswire/internal/dns/common/log"
	"github.com/hvdkamp/dnswire/internal/dns/gateways/wire"
)

// UDPTransport listens for DNS queries over UDP (RFC 1035). It owns the
// socket and the read loop; everything between raw packet in and raw packet
// out belongs to the handler.
type UDPTransport struct {
	addr   string
	conn   *net.UDPConn
	logger log.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
}

// NewUDPTransport creates a new UDP transport bound to addr once started.
func NewUDPTransport(addr string, logger log.Logger) *UDPTransport {
	return &UDPTransport{
		addr:   addr,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start binds the UDP socket and launches the packet loop.
func (t *UDPTransport) Start(ctx context.Context, handler PacketHandler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}

	t.conn = conn
	t.running = true

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   conn.LocalAddr().String(),
	}, "DNS transport started")

	go t.listenLoop(ctx, handler)

	return nil
}

// Stop closes the socket and stops the packet loop.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	close(t.stopCh)

	var closeErr error
	if t.conn != nil {
		closeErr = t.conn.Close()
	}
	t.running = false

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport stopped")

	return closeErr
}

// Address returns the bound address. Once started it reflects the actual
// socket address, which matters when the configured port is 0.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn != nil {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

// listenLoop reads packets until the context is cancelled or Stop is called.
func (t *UDPTransport) listenLoop(ctx context.Context, handler PacketHandler) {
	buffer := make([]byte, wire.MaxUDPSize)

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug(nil, "UDP transport stopping due to context cancellation")
			return
		case <-t.stopCh:
			t.logger.Debug(nil, "UDP transport stopping due to stop signal")
			return
		default:
			n, clientAddr, err := t.conn.ReadFromUDP(buffer)
			if err != nil {
				t.mu.RLock()
				running := t.running
				t.mu.RUnlock()
				if !running {
					return
				}
				t.logger.Warn(map[string]any{
					"error": err.Error(),
				}, "Failed to read UDP packet")
				continue
			}

			packet := make([]byte, n)
			copy(packet, buffer[:n])
			go t.handlePacket(ctx, packet, clientAddr, handler)
		}
	}
}

// handlePacket runs one query through the handler and writes the reply.
func (t *UDPTransport) handlePacket(ctx context.Context, data []byte, clientAddr *net.UDPAddr, handler PacketHandler) {
	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(data),
	}, "Received UDP packet")

	response := handler.HandlePacket(ctx, data)
	if response == nil {
		return
	}

	if len(response) > wire.MaxUDPSize {
		t.logger.Warn(map[string]any{
			"client": clientAddr.String(),
			"size":   len(response),
		}, "Response exceeds UDP datagram limit, dropping")
		return
	}

	if _, err := t.conn.WriteToUDP(response, clientAddr); err != nil {
		t.logger.Error(map[string]any{
			"client": clientAddr.String(),
			"error":  err.Error(),
		}, "Failed to send DNS response")
		return
	}

	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(response),
	}, "Sent DNS response")
}

var _ ServerTransport = &UDPTransport{}
