// Package console renders decoded frames as a textual report.
package console

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/strixcap/strix/internal/core"
)

// Renderer writes one three-section report per decoded frame.
type Renderer struct {
	w       io.Writer
	hexDump bool
}

// New builds a Renderer writing to w. With hexDump enabled each report
// ends with the payload bytes past the TCP header.
func New(w io.Writer, hexDump bool) *Renderer {
	return &Renderer{w: w, hexDump: hexDump}
}

// Render writes the report for one frame. The frame is assembled into a
// single Write so reports never interleave on a shared writer.
func (r *Renderer) Render(frame core.DecodedFrame) error {
	var b strings.Builder
	writeEthernet(&b, frame.Ethernet)
	writeIPv4(&b, frame.IP)
	writeTCP(&b, frame.TCP)
	if r.hexDump && len(frame.Payload) > 0 {
		writePayload(&b, frame.Payload)
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeEthernet(b *strings.Builder, eth core.EthernetHeader) {
	fmt.Fprintf(b, "\nEthernet Header\n")
	fmt.Fprintf(b, "   |-Destination Address : %s\n", macString(eth.DstMAC))
	fmt.Fprintf(b, "   |-Source Address      : %s\n", macString(eth.SrcMAC))
	fmt.Fprintf(b, "   |-Protocol            : %d\n", eth.EtherType)
}

func writeIPv4(b *strings.Builder, ip core.IPv4Header) {
	fmt.Fprintf(b, "\nIP Header\n")
	fmt.Fprintf(b, "   |-Version             : %d\n", ip.Version)
	fmt.Fprintf(b, "   |-Header Length       : %d DWORDS or %d Bytes\n", ip.IHL, ip.HeaderLength())
	fmt.Fprintf(b, "   |-Type Of Service     : %d\n", ip.TOS)
	fmt.Fprintf(b, "   |-Total Length        : %d Bytes\n", ip.TotalLen)
	fmt.Fprintf(b, "   |-Identification      : %d\n", ip.ID)
	fmt.Fprintf(b, "   |-TTL                 : %d\n", ip.TTL)
	fmt.Fprintf(b, "   |-Protocol            : %d\n", ip.Protocol)
	fmt.Fprintf(b, "   |-Checksum            : %d\n", ip.Checksum)
	fmt.Fprintf(b, "   |-Source IP           : %s\n", ip.SrcIP)
	fmt.Fprintf(b, "   |-Destination IP      : %s\n", ip.DstIP)
}

func writeTCP(b *strings.Builder, tcp core.TCPHeader) {
	fmt.Fprintf(b, "\nTCP Header\n")
	fmt.Fprintf(b, "   |-Source Port         : %d\n", tcp.SrcPort)
	fmt.Fprintf(b, "   |-Destination Port    : %d\n", tcp.DstPort)
	fmt.Fprintf(b, "   |-Sequence Number     : %d\n", tcp.Seq)
	fmt.Fprintf(b, "   |-Acknowledge Number  : %d\n", tcp.Ack)
	fmt.Fprintf(b, "   |-Header Length       : %d DWORDS or %d Bytes\n", tcp.DataOffset, tcp.HeaderLength())
	fmt.Fprintf(b, "   |-Urgent Flag         : %d\n", flagBit(tcp.URG))
	fmt.Fprintf(b, "   |-Acknowledgement Flag: %d\n", flagBit(tcp.ACK))
	fmt.Fprintf(b, "   |-Push Flag           : %d\n", flagBit(tcp.PSH))
	fmt.Fprintf(b, "   |-Reset Flag          : %d\n", flagBit(tcp.RST))
	fmt.Fprintf(b, "   |-Synchronise Flag    : %d\n", flagBit(tcp.SYN))
	fmt.Fprintf(b, "   |-Finish Flag         : %d\n", flagBit(tcp.FIN))
	fmt.Fprintf(b, "   |-Window              : %d\n", tcp.Window)
	fmt.Fprintf(b, "   |-Checksum            : %d\n", tcp.Checksum)
	fmt.Fprintf(b, "   |-Urgent Pointer      : %d\n", tcp.Urgent)
}

func writePayload(b *strings.Builder, payload []byte) {
	fmt.Fprintf(b, "\nPayload (%d bytes)\n", len(payload))
	b.WriteString(hex.Dump(payload))
}

// macString formats a MAC the way the report expects, uppercase hex
// octets separated by colons.
func macString(mac [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// flagBit renders a control flag as its wire bit.
func flagBit(set bool) int {
	if set {
		return 1
	}
	return 0
}
