package core

import (
	"errors"
	"net/netip"
	"testing"
	"time"
)

// Test zero values of core structs
func TestStructZeroValues(t *testing.T) {
	t.Run("EthernetHeader", func(t *testing.T) {
		var eth EthernetHeader
		if eth.EtherType != 0 {
			t.Errorf("expected EtherType=0, got %d", eth.EtherType)
		}
		if eth.DstMAC != [6]byte{} {
			t.Errorf("expected zero DstMAC, got %v", eth.DstMAC)
		}
	})

	t.Run("IPv4Header", func(t *testing.T) {
		var ip IPv4Header
		if ip.Version != 0 {
			t.Errorf("expected Version=0, got %d", ip.Version)
		}
		if ip.SrcIP.IsValid() {
			t.Errorf("expected invalid SrcIP, got %v", ip.SrcIP)
		}
		if ip.DstIP.IsValid() {
			t.Errorf("expected invalid DstIP, got %v", ip.DstIP)
		}
	})

	t.Run("TCPHeader", func(t *testing.T) {
		var tcp TCPHeader
		if tcp.SrcPort != 0 || tcp.DstPort != 0 {
			t.Errorf("expected zero ports, got src=%d dst=%d", tcp.SrcPort, tcp.DstPort)
		}
		if tcp.SYN || tcp.ACK || tcp.FIN {
			t.Errorf("expected all flags clear, got SYN=%v ACK=%v FIN=%v", tcp.SYN, tcp.ACK, tcp.FIN)
		}
	})

	t.Run("RawFrame", func(t *testing.T) {
		var raw RawFrame
		if raw.Data != nil {
			t.Errorf("expected Data=nil, got %v", raw.Data)
		}
		if !raw.Timestamp.IsZero() {
			t.Errorf("expected zero Timestamp, got %v", raw.Timestamp)
		}
	})

	t.Run("DecodedFrame", func(t *testing.T) {
		var decoded DecodedFrame
		if decoded.Payload != nil {
			t.Errorf("expected Payload=nil, got %v", decoded.Payload)
		}
		if decoded.IP.IHL != 0 {
			t.Errorf("expected IHL=0, got %d", decoded.IP.IHL)
		}
	})
}

// Test header length helpers
func TestHeaderLength(t *testing.T) {
	t.Run("IPv4Minimum", func(t *testing.T) {
		ip := IPv4Header{IHL: 5}
		if got := ip.HeaderLength(); got != 20 {
			t.Errorf("expected HeaderLength=20, got %d", got)
		}
	})

	t.Run("IPv4Maximum", func(t *testing.T) {
		ip := IPv4Header{IHL: 15}
		if got := ip.HeaderLength(); got != 60 {
			t.Errorf("expected HeaderLength=60, got %d", got)
		}
	})

	t.Run("TCPMinimum", func(t *testing.T) {
		tcp := TCPHeader{DataOffset: 5}
		if got := tcp.HeaderLength(); got != 20 {
			t.Errorf("expected HeaderLength=20, got %d", got)
		}
	})

	t.Run("TCPMaximum", func(t *testing.T) {
		tcp := TCPHeader{DataOffset: 15}
		if got := tcp.HeaderLength(); got != 60 {
			t.Errorf("expected HeaderLength=60, got %d", got)
		}
	})
}

// Test sentinel errors
func TestSentinelErrors(t *testing.T) {
	t.Run("ErrorIdentity", func(t *testing.T) {
		// Sentinel errors should be identifiable with errors.Is
		err := ErrFrameTruncated
		if !errors.Is(err, ErrFrameTruncated) {
			t.Error("errors.Is failed for ErrFrameTruncated")
		}

		err = ErrInvalidHeaderLength
		if !errors.Is(err, ErrInvalidHeaderLength) {
			t.Error("errors.Is failed for ErrInvalidHeaderLength")
		}
	})

	t.Run("ErrorMessages", func(t *testing.T) {
		tests := []struct {
			err     error
			message string
		}{
			{ErrFrameTruncated, "strix: frame truncated"},
			{ErrInvalidHeaderLength, "strix: invalid header length"},
			{ErrSourceNotStarted, "strix: source not started"},
			{ErrUnknownSource, "strix: unknown source type"},
			{ErrConfigInvalid, "strix: invalid configuration"},
		}

		for _, tt := range tests {
			if tt.err.Error() != tt.message {
				t.Errorf("expected error message %q, got %q", tt.message, tt.err.Error())
			}
		}
	})

	t.Run("ErrorWrapping", func(t *testing.T) {
		// Test that sentinel errors can be wrapped and still identified
		wrapped := errors.Join(ErrFrameTruncated, errors.New("additional context"))
		if !errors.Is(wrapped, ErrFrameTruncated) {
			t.Error("errors.Is failed for wrapped error")
		}
	})
}

// Test frame structures with real data
func TestFrameStructures(t *testing.T) {
	t.Run("RawFrame", func(t *testing.T) {
		now := time.Now()
		raw := RawFrame{
			Data:       []byte{0x01, 0x02, 0x03},
			Timestamp:  now,
			CaptureLen: 3,
			OrigLen:    100,
		}

		if len(raw.Data) != 3 {
			t.Errorf("expected Data length 3, got %d", len(raw.Data))
		}
		if raw.Timestamp != now {
			t.Errorf("timestamp mismatch")
		}
		if raw.CaptureLen != 3 {
			t.Errorf("expected CaptureLen=3, got %d", raw.CaptureLen)
		}
		if raw.OrigLen != 100 {
			t.Errorf("expected OrigLen=100, got %d", raw.OrigLen)
		}
	})

	t.Run("DecodedFrame", func(t *testing.T) {
		srcIP := netip.MustParseAddr("192.168.1.1")
		dstIP := netip.MustParseAddr("192.168.1.2")

		decoded := DecodedFrame{
			Timestamp: time.Now(),
			Ethernet: EthernetHeader{
				DstMAC:    [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
				SrcMAC:    [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
				EtherType: 0x0800, // IPv4
			},
			IP: IPv4Header{
				Version:  4,
				IHL:      5,
				SrcIP:    srcIP,
				DstIP:    dstIP,
				Protocol: 6, // TCP
			},
			TCP: TCPHeader{
				SrcPort: 34512,
				DstPort: 443,
				SYN:     true,
			},
			Payload: []byte("test payload"),
		}

		if decoded.IP.SrcIP != srcIP {
			t.Errorf("SrcIP mismatch")
		}
		if decoded.IP.DstIP != dstIP {
			t.Errorf("DstIP mismatch")
		}
		if decoded.TCP.DstPort != 443 {
			t.Errorf("expected DstPort=443, got %d", decoded.TCP.DstPort)
		}
		if !decoded.TCP.SYN {
			t.Errorf("expected SYN=true")
		}
	})
}
