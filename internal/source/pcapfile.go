package source

import (
	"context"
	"fmt"
	"os"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/strixcap/strix/internal/core"
)

// pcapFileConfig selects the savefile to replay.
type pcapFileConfig struct {
	Path string `mapstructure:"path"`
}

// pcapFileSource replays a pcap savefile as if it were a live capture.
// An exhausted savefile surfaces as io.EOF from ReadFrame.
type pcapFileSource struct {
	path string

	f      *os.File
	reader *pcapgo.Reader
	ctx    context.Context
}

func newPcapFileSource(opts Options) (*pcapFileSource, error) {
	var cfg pcapFileConfig
	if err := decodeExtra(opts.Extra, &cfg); err != nil {
		return nil, fmt.Errorf("pcapfile options: %w", err)
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: pcapfile source requires options.path", core.ErrConfigInvalid)
	}
	return &pcapFileSource{path: cfg.Path}, nil
}

func (s *pcapFileSource) Start(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open savefile: %w", err)
	}
	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("read pcap header: %w", err)
	}
	if lt := r.LinkType(); lt != layers.LinkTypeEthernet {
		f.Close()
		return fmt.Errorf("%w: savefile link type %v, want %v", core.ErrConfigInvalid, lt, layers.LinkTypeEthernet)
	}

	s.f = f
	s.reader = r
	s.ctx = ctx
	return nil
}

func (s *pcapFileSource) ReadFrame() (core.RawFrame, error) {
	if s.reader == nil {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}
	if err := s.ctx.Err(); err != nil {
		return core.RawFrame{}, err
	}

	// io.EOF passes through untouched; anything else is a malformed
	// record.
	data, ci, err := s.reader.ZeroCopyReadPacketData()
	if err != nil {
		return core.RawFrame{}, err
	}

	return core.RawFrame{
		Data:       data,
		Timestamp:  ci.Timestamp,
		CaptureLen: uint32(ci.CaptureLength),
		OrigLen:    uint32(ci.Length),
	}, nil
}

func (s *pcapFileSource) Stop() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.reader = nil
	return err
}
