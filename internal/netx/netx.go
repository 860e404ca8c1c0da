// Package netx sets up the UDP sockets used by the benchmark. The receiver
// side gets SO_REUSEADDR (so a restarted receiver can rebind immediately) and
// both sides request large kernel buffers to absorb bursts at the high end of
// the ramp.
package netx

import (
	"context"
	"net"

	"github.com/hostbench/netbench/pkg/ramp/spec"
)

// ListenUDP binds the receiver's data socket. Bind failures are operator
// misconfiguration (e.g. port already in use) and are returned to the caller,
// which treats them as fatal.
func ListenUDP(addr string) (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: reuseAddr,
	}
	pc, err := lc.ListenPacket(context.Background(), "udp4", addr)
	if err != nil {
		return nil, err
	}
	conn := pc.(*net.UDPConn)
	// Best effort: the kernel may clamp this to net.core.rmem_max.
	conn.SetReadBuffer(spec.SocketBufferSize)
	return conn, nil
}

// DialUDP connects the generator's data socket to the receiver.
func DialUDP(remote string) (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp4", remote)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp4", nil, raddr)
	if err != nil {
		return nil, err
	}
	// Best effort: the kernel may clamp this to net.core.wmem_max.
	conn.SetWriteBuffer(spec.SocketBufferSize)
	return conn, nil
}
