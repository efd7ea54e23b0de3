// Package core defines core data structures with zero external dependencies.
package core

import "time"

// RawFrame is one captured link-layer frame, a zero-copy view into the
// source's receive buffer. The buffer is rewritten on the next read, so a
// RawFrame is only valid for one pipeline iteration.
type RawFrame struct {
	Data       []byte    // raw frame bytes, zero-copy slice
	Timestamp  time.Time // capture timestamp (kernel timestamp preferred)
	CaptureLen uint32    // actually captured length
	OrigLen    uint32    // original frame length on the wire
}

// DecodedFrame is the result of Ethernet/IPv4/TCP header decoding. The header
// records are views derived from a single RawFrame; none of them owns the
// buffer and all share the RawFrame's one-iteration lifetime.
type DecodedFrame struct {
	Timestamp  time.Time
	Ethernet   EthernetHeader
	IP         IPv4Header
	TCP        TCPHeader
	Payload    []byte // bytes past the TCP header, zero-copy slice
	CaptureLen uint32
	OrigLen    uint32
}
