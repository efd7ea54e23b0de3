package decoder

import (
	"encoding/binary"

	"github.com/strixcap/strix/internal/core"
)

const (
	tcpHeaderMinLen  = 20
	tcpMinDataOffset = 5

	// TCP flag bits in byte 13 of the header
	tcpFlagFIN = 0x01
	tcpFlagSYN = 0x02
	tcpFlagRST = 0x04
	tcpFlagPSH = 0x08
	tcpFlagACK = 0x10
	tcpFlagURG = 0x20
)

// DecodeTCP decodes the TCP header of a frame. ipHeaderLen is the IPv4
// header length in bytes as reported by the IP stage; the TCP header is
// taken to start at the Ethernet header length plus ipHeaderLen.
func DecodeTCP(frame []byte, ipHeaderLen int) (core.TCPHeader, error) {
	if ipHeaderLen < ipv4HeaderMinLen {
		return core.TCPHeader{}, core.ErrInvalidHeaderLength
	}

	base := ethernetHeaderLen + ipHeaderLen
	if len(frame) < base+tcpHeaderMinLen {
		return core.TCPHeader{}, core.ErrFrameTruncated
	}

	data := frame[base:]

	// Data Offset (upper 4 bits of byte 12) counts 32-bit words and must
	// cover at least the fixed 20-byte header.
	dataOffset := data[12] >> 4
	if dataOffset < tcpMinDataOffset {
		return core.TCPHeader{}, core.ErrInvalidHeaderLength
	}
	if len(data) < int(dataOffset)*4 {
		return core.TCPHeader{}, core.ErrFrameTruncated
	}

	// Flags (lower 6 bits of byte 13)
	flags := data[13]

	tcp := core.TCPHeader{
		// Source Port (2 bytes at offset 0)
		SrcPort: binary.BigEndian.Uint16(data[0:2]),

		// Destination Port (2 bytes at offset 2)
		DstPort: binary.BigEndian.Uint16(data[2:4]),

		// Sequence Number (4 bytes at offset 4)
		Seq: binary.BigEndian.Uint32(data[4:8]),

		// Acknowledgment Number (4 bytes at offset 8)
		Ack: binary.BigEndian.Uint32(data[8:12]),

		DataOffset: dataOffset,

		URG: flags&tcpFlagURG != 0,
		ACK: flags&tcpFlagACK != 0,
		PSH: flags&tcpFlagPSH != 0,
		RST: flags&tcpFlagRST != 0,
		SYN: flags&tcpFlagSYN != 0,
		FIN: flags&tcpFlagFIN != 0,

		// Window (2 bytes at offset 14)
		Window: binary.BigEndian.Uint16(data[14:16]),

		// Checksum (2 bytes at offset 16)
		Checksum: binary.BigEndian.Uint16(data[16:18]),

		// Urgent Pointer (2 bytes at offset 18)
		Urgent: binary.BigEndian.Uint16(data[18:20]),
	}

	return tcp, nil
}
