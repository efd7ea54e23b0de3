// Package decoder implements L2-L4 protocol header decoding.
package decoder

import (
	"fmt"

	"github.com/strixcap/strix/internal/core"
)

// Decoder decodes raw frames into structured format.
type Decoder interface {
	Decode(raw core.RawFrame) (core.DecodedFrame, error)
}

// StandardDecoder runs the Ethernet, IPv4 and TCP stages in order against
// every frame. It is stateless and safe for concurrent use.
type StandardDecoder struct{}

// NewStandardDecoder creates a decoder for the Ethernet/IPv4/TCP stack.
func NewStandardDecoder() *StandardDecoder {
	return &StandardDecoder{}
}

// Decode decodes a raw frame through all three stages. Each stage operates
// on the whole frame and validates its own offsets; the first stage error
// aborts the frame.
func (d *StandardDecoder) Decode(raw core.RawFrame) (core.DecodedFrame, error) {
	decoded := core.DecodedFrame{
		Timestamp:  raw.Timestamp,
		CaptureLen: raw.CaptureLen,
		OrigLen:    raw.OrigLen,
	}

	eth, err := DecodeEthernet(raw.Data)
	if err != nil {
		return core.DecodedFrame{}, fmt.Errorf("ethernet: %w", err)
	}
	decoded.Ethernet = eth

	ip, err := DecodeIPv4(raw.Data)
	if err != nil {
		return core.DecodedFrame{}, fmt.Errorf("ipv4: %w", err)
	}
	decoded.IP = ip

	tcp, err := DecodeTCP(raw.Data, ip.HeaderLength())
	if err != nil {
		return core.DecodedFrame{}, fmt.Errorf("tcp: %w", err)
	}
	decoded.TCP = tcp

	// Payload starts after the three decoded headers. TCP validation
	// already guaranteed the frame covers them.
	decoded.Payload = raw.Data[ethernetHeaderLen+ip.HeaderLength()+tcp.HeaderLength():]

	return decoded, nil
}
