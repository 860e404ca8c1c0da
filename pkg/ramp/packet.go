// Package ramp implements the wire format of the ramp benchmark protocol.
//
// Every datagram has a fixed total size (spec.PacketSize) and starts with a
// 16-byte big-endian header: a u64 sequence number followed by a u64
// monotonic send timestamp in nanoseconds. The rest of the datagram is
// unvalidated filler so that the pacing math operates on a constant size.
package ramp

import (
	"encoding/binary"
	"errors"

	"github.com/hostbench/netbench/pkg/ramp/spec"
)

// HeaderSize is the number of bytes occupied by the sequence number and the
// send timestamp at the start of every datagram.
const HeaderSize = 16

// ErrShortPacket is returned by Unmarshal for datagrams too small to carry a
// header. Such datagrams cannot be attributed to a sequence number and are
// dropped by the receiver without counting them as received or lost.
var ErrShortPacket = errors.New("datagram shorter than packet header")

// Packet is the header of one datagram on the wire. Packets are constructed
// fresh for every send and never retransmitted or acknowledged.
type Packet struct {
	// Seq is strictly increasing within a generator run, starting at 1. It
	// keeps increasing across ramp steps.
	Seq uint64

	// SendTimeNS is a monotonic clock reading in nanoseconds, captured
	// immediately before transmission.
	SendTimeNS uint64
}

// Marshal writes the header into buf, which must be at least HeaderSize
// bytes. Bytes past the header are left untouched: the caller reuses one
// fixed-size buffer and the filler content is irrelevant.
func (p Packet) Marshal(buf []byte) {
	binary.BigEndian.PutUint64(buf[0:8], p.Seq)
	binary.BigEndian.PutUint64(buf[8:16], p.SendTimeNS)
}

// Unmarshal parses the header of a received datagram.
func Unmarshal(b []byte) (Packet, error) {
	if len(b) < HeaderSize {
		return Packet{}, ErrShortPacket
	}
	return Packet{
		Seq:        binary.BigEndian.Uint64(b[0:8]),
		SendTimeNS: binary.BigEndian.Uint64(b[8:16]),
	}, nil
}

// NewBuffer returns a send buffer of the protocol's fixed packet size.
func NewBuffer() []byte {
	return make([]byte, spec.PacketSize)
}
