package decoder

import (
	"encoding/binary"
	"net/netip"

	"github.com/strixcap/strix/internal/core"
)

const (
	ipv4HeaderMinLen = 20
	ipv4MinIHL       = 5
)

// DecodeIPv4 decodes the IPv4 header of a frame. The header is taken to
// start directly after the 14-byte Ethernet header; all length checks run
// before any field is read.
func DecodeIPv4(frame []byte) (core.IPv4Header, error) {
	if len(frame) < ethernetHeaderLen+ipv4HeaderMinLen {
		return core.IPv4Header{}, core.ErrFrameTruncated
	}

	data := frame[ethernetHeaderLen:]

	// Version (upper 4 bits) and IHL (lower 4 bits) share the first byte.
	// IHL counts 32-bit words, so anything below 5 cannot hold the fixed
	// 20-byte header.
	ihl := data[0] & 0x0F
	if ihl < ipv4MinIHL {
		return core.IPv4Header{}, core.ErrInvalidHeaderLength
	}
	if len(data) < int(ihl)*4 {
		return core.IPv4Header{}, core.ErrFrameTruncated
	}

	ip := core.IPv4Header{
		Version: data[0] >> 4,
		IHL:     ihl,

		// TOS (1 byte at offset 1)
		TOS: data[1],

		// Total Length (2 bytes at offset 2)
		TotalLen: binary.BigEndian.Uint16(data[2:4]),

		// Identification (2 bytes at offset 4)
		ID: binary.BigEndian.Uint16(data[4:6]),

		// TTL (1 byte at offset 8)
		TTL: data[8],

		// Protocol (1 byte at offset 9)
		Protocol: data[9],

		// Header Checksum (2 bytes at offset 10)
		Checksum: binary.BigEndian.Uint16(data[10:12]),
	}

	// Source IP (4 bytes at offset 12)
	addr, ok := netip.AddrFromSlice(data[12:16])
	if !ok {
		return core.IPv4Header{}, core.ErrFrameTruncated
	}
	ip.SrcIP = addr

	// Destination IP (4 bytes at offset 16)
	addr, ok = netip.AddrFromSlice(data[16:20])
	if !ok {
		return core.IPv4Header{}, core.ErrFrameTruncated
	}
	ip.DstIP = addr

	return ip, nil
}
