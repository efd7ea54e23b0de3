package decoder

import (
	"encoding/binary"

	"github.com/strixcap/strix/internal/core"
)

const (
	// Ethernet constants
	ethernetHeaderLen = 14
)

// DecodeEthernet decodes the Ethernet header at the start of a frame.
// The frame must carry at least the full 14-byte header.
func DecodeEthernet(frame []byte) (core.EthernetHeader, error) {
	if len(frame) < ethernetHeaderLen {
		return core.EthernetHeader{}, core.ErrFrameTruncated
	}

	eth := core.EthernetHeader{}

	// Destination MAC (6 bytes)
	copy(eth.DstMAC[:], frame[0:6])

	// Source MAC (6 bytes)
	copy(eth.SrcMAC[:], frame[6:12])

	// EtherType (2 bytes)
	eth.EtherType = binary.BigEndian.Uint16(frame[12:14])

	return eth, nil
}
