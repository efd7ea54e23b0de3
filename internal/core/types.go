package core

import "net/netip"

// EthernetHeader represents the fixed-size L2 Ethernet frame header.
type EthernetHeader struct {
	DstMAC    [6]byte
	SrcMAC    [6]byte
	EtherType uint16 // 0x0800=IPv4, 0x0806=ARP, 0x86DD=IPv6
}

// IPv4Header represents the variable-length L3 IPv4 header.
type IPv4Header struct {
	Version  uint8
	IHL      uint8 // header length in 32-bit words, valid range 5..15
	TOS      uint8
	TotalLen uint16 // whole datagram size declared by the sender
	ID       uint16
	TTL      uint8
	Protocol uint8 // TCP=6, UDP=17, ICMP=1
	Checksum uint16
	SrcIP    netip.Addr // always a 4-byte IPv4 address
	DstIP    netip.Addr
}

// HeaderLength returns the header size in bytes declared by IHL.
func (h IPv4Header) HeaderLength() int {
	return int(h.IHL) * 4
}

// TCPHeader represents the variable-length L4 TCP header.
type TCPHeader struct {
	SrcPort    uint16
	DstPort    uint16
	Seq        uint32
	Ack        uint32
	DataOffset uint8 // header length in 32-bit words, valid range 5..15
	// Control flags, one bit each on the wire
	URG, ACK, PSH, RST, SYN, FIN bool
	Window                       uint16
	Checksum                     uint16
	Urgent                       uint16
}

// HeaderLength returns the header size in bytes declared by DataOffset.
func (h TCPHeader) HeaderLength() int {
	return int(h.DataOffset) * 4
}
