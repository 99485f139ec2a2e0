// Package transport sends a built query to a list of candidate servers
// and returns the bytes of whichever one answers first, implementing
// the iterative resolver's synchronous, single-socket query step
// (spec.md §4.5).
package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dnsscience/resolverd/internal/bufpool"
	"golang.org/x/time/rate"
)

// PerServerTimeout bounds how long a single server gets to answer before
// the next candidate is tried. spec.md §4.5 fixes this at 2 seconds; it's
// a var rather than a const so a loaded configuration file can override it.
var PerServerTimeout = 2 * time.Second

// OutboundLimiter paces the datagrams this resolver sends, independent
// of the per-server receive timeout. A single iterative resolution can
// fan out many sub-queries (one per referral hop, one per NS glue
// lookup); unlimited by default, but a caller driving many concurrent
// resolutions can tighten it to avoid hammering a struggling upstream,
// the same token-bucket idea the teacher applies to inbound queries in
// its own rate limiter.
var OutboundLimiter = rate.NewLimiter(rate.Inf, 1)

// ErrAllServersTimedOut is returned when every candidate server failed to
// answer within PerServerTimeout.
var ErrAllServersTimedOut = errors.New("transport: all servers timed out")

// Dialer opens the datagram endpoint a Query call uses. Production code
// uses UDPDialer; tests substitute a fake to simulate timeouts and
// out-of-order replies without touching a real network.
type Dialer interface {
	Dial() (Conn, error)
}

// Conn is the narrow subset of net.Conn semantics Query needs: send to a
// specific address, then read whatever arrives next with a deadline.
type Conn interface {
	SendTo(addr string, payload []byte) error
	SetReadDeadline(t time.Time) error
	Recv(buf []byte) (int, error)
	Close() error
}

// UDPDialer opens a real, unconnected UDP socket — one endpoint reused
// across every candidate server in a single Query call, matching the
// "creates one datagram endpoint" language in spec.md §4.5.
type UDPDialer struct{}

// Dial opens a fresh UDP socket bound to an ephemeral local port.
func (UDPDialer) Dial() (Conn, error) {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, err
	}
	return &udpConn{conn: conn}, nil
}

type udpConn struct {
	conn *net.UDPConn
}

func (c *udpConn) SendTo(addr string, payload []byte) error {
	raddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(addr, "53"))
	if err != nil {
		return err
	}
	_, err = c.conn.WriteToUDP(payload, raddr)
	return err
}

func (c *udpConn) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *udpConn) Recv(buf []byte) (int, error) {
	n, _, err := c.conn.ReadFromUDP(buf)
	return n, err
}

func (c *udpConn) Close() error {
	return c.conn.Close()
}

// Query sends payload to each of servers in order over a single datagram
// endpoint and returns the first reply received. Each send is paced by
// OutboundLimiter; each server then gets up to PerServerTimeout to
// answer, and a timeout moves on to the next server without retrying the
// one that just timed out. No attempt is made to validate that a reply
// came from the server it was just sent to — spec.md §4.5 explicitly
// leaves source-address validation out of scope.
func Query(dialer Dialer, payload []byte, servers []string) ([]byte, error) {
	conn, err := dialer.Dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	buf := bufpool.Get()
	defer bufpool.Put(buf)

	for _, server := range servers {
		if err := OutboundLimiter.Wait(context.Background()); err != nil {
			continue
		}
		if err := conn.SendTo(server, payload); err != nil {
			continue
		}
		if err := conn.SetReadDeadline(time.Now().Add(PerServerTimeout)); err != nil {
			continue
		}
		n, err := conn.Recv(buf)
		if err != nil {
			continue
		}
		reply := make([]byte, n)
		copy(reply, buf[:n])
		return reply, nil
	}
	return nil, ErrAllServersTimedOut
}
