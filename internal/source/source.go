// Package source implements link-layer frame capture backends.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/strixcap/strix/internal/core"
)

const (
	// defaultSnapLen captures full frames on any common link MTU.
	defaultSnapLen = 65536

	// pollTimeout is the upper bound on one blocking read. Cancellation
	// is checked between reads.
	pollTimeout = 100 * time.Millisecond
)

// Type identifies a capture backend.
type Type string

const (
	// TypeRawSocket reads frames from a plain AF_PACKET SOCK_RAW socket.
	TypeRawSocket Type = "rawsock"
	// TypeAFPacket reads frames from a TPACKET_V3 memory-mapped ring.
	TypeAFPacket Type = "afpacket"
	// TypePcapFile replays frames from a pcap savefile.
	TypePcapFile Type = "pcapfile"
)

// ParseType converts a configuration string into a Type. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rawsock", "raw_socket", "raw-socket":
		return TypeRawSocket, nil
	case "afpacket", "af_packet", "af-packet":
		return TypeAFPacket, nil
	case "pcapfile", "pcap_file", "pcap-file", "file":
		return TypePcapFile, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownSource, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so a Type can be
// decoded from yaml, json and mapstructure text values.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Source produces raw link-layer frames for the pipeline.
//
// Implementations hand out zero-copy views into their receive buffers:
// a frame returned by ReadFrame is valid only until the next call.
type Source interface {
	// Start opens the capture handle. The context governs subsequent
	// ReadFrame calls; cancelling it unblocks a pending read.
	Start(ctx context.Context) error

	// ReadFrame blocks until the next frame arrives. File-backed
	// sources return io.EOF once the savefile is exhausted.
	ReadFrame() (core.RawFrame, error)

	// Stop closes the capture handle and releases its resources.
	Stop() error
}

// Stats holds kernel-side capture counters.
type Stats struct {
	Received uint64 // frames delivered to the socket
	Dropped  uint64 // frames dropped under buffer pressure
}

// StatsReporter is implemented by sources that can query kernel counters.
type StatsReporter interface {
	Stats() (Stats, error)
}

// Options selects and configures a capture backend. Backend-specific
// settings travel in Extra and are decoded by the backend itself.
type Options struct {
	Type      Type
	Interface string
	SnapLen   int
	Extra     map[string]any
}

// New builds the capture source selected by opts.Type. The underlying
// handle is not opened until Start is called.
func New(opts Options) (Source, error) {
	switch opts.Type {
	case TypeRawSocket:
		return newRawSocketSource(opts)
	case TypeAFPacket:
		return newAFPacketSource(opts)
	case TypePcapFile:
		return newPcapFileSource(opts)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSource, opts.Type)
	}
}

// decodeExtra maps backend-specific options onto a backend config struct.
// Weak typing accepts yaml scalars arriving as either strings or numbers.
func decodeExtra(extra map[string]any, out any) error {
	if len(extra) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(extra)
}
