package source

import (
	"context"
	"fmt"
	"os"

	"github.com/google/gopacket/afpacket"

	"github.com/strixcap/strix/internal/core"
)

const (
	defaultRingSizeMB = 32
	framesPerBlock    = 128
)

// afpacketConfig carries the ring tuning knobs accepted in the capture
// options block.
type afpacketConfig struct {
	BufferSizeMB int `mapstructure:"buffer_size_mb"`
}

// afpacketSource captures frames through a TPACKET_V3 memory-mapped ring.
// The kernel fills whole blocks of frames at a time, so the per-frame
// syscall cost of the raw socket backend disappears.
type afpacketSource struct {
	iface     string
	snapLen   int
	frameSize int
	blockSize int
	numBlocks int

	tpacket *afpacket.TPacket
	ctx     context.Context
}

func newAFPacketSource(opts Options) (*afpacketSource, error) {
	cfg := afpacketConfig{BufferSizeMB: defaultRingSizeMB}
	if err := decodeExtra(opts.Extra, &cfg); err != nil {
		return nil, fmt.Errorf("afpacket options: %w", err)
	}

	snapLen := opts.SnapLen
	if snapLen <= 0 {
		snapLen = defaultSnapLen
	}

	frameSize, blockSize, numBlocks, err := ringLayout(snapLen, cfg.BufferSizeMB*1024*1024, os.Getpagesize())
	if err != nil {
		return nil, err
	}

	return &afpacketSource{
		iface:     opts.Interface,
		snapLen:   snapLen,
		frameSize: frameSize,
		blockSize: blockSize,
		numBlocks: numBlocks,
	}, nil
}

// ringLayout sizes the TPACKET_V3 ring for a snap length and memory
// budget. Frames are padded to a page divisor (or page multiple) so
// blocks of framesPerBlock frames stay page-aligned, then the budget is
// split into whole blocks.
func ringLayout(snapLen, bufferSize, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if bufferSize <= 0 {
		return 0, 0, 0, fmt.Errorf("ring buffer size must be positive, got %d", bufferSize)
	}

	if snapLen < pageSize {
		frameSize = pageSize / (pageSize / snapLen)
	} else {
		frameSize = (snapLen/pageSize + 1) * pageSize
	}
	blockSize = frameSize * framesPerBlock
	numBlocks = bufferSize / blockSize
	if numBlocks < 1 {
		return 0, 0, 0, fmt.Errorf("ring buffer %d too small for one block of %d", bufferSize, blockSize)
	}
	return frameSize, blockSize, numBlocks, nil
}

func (s *afpacketSource) Start(ctx context.Context) error {
	topts := []any{
		afpacket.OptFrameSize(s.frameSize),
		afpacket.OptBlockSize(s.blockSize),
		afpacket.OptNumBlocks(s.numBlocks),
		afpacket.OptPollTimeout(pollTimeout),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	}
	if s.iface != "" {
		topts = append(topts, afpacket.OptInterface(s.iface))
	}

	tp, err := afpacket.NewTPacket(topts...)
	if err != nil {
		return fmt.Errorf("open TPacket ring: %w", err)
	}
	if err := tp.InitSocketStats(); err != nil {
		tp.Close()
		return fmt.Errorf("init socket stats: %w", err)
	}

	s.tpacket = tp
	s.ctx = ctx
	return nil
}

func (s *afpacketSource) ReadFrame() (core.RawFrame, error) {
	if s.tpacket == nil {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}
	for {
		if err := s.ctx.Err(); err != nil {
			return core.RawFrame{}, err
		}

		data, ci, err := s.tpacket.ZeroCopyReadPacketData()
		if err != nil {
			// Poll timeouts and transient poll failures only mean no
			// frame arrived within one cancellation check interval.
			if err == afpacket.ErrTimeout || err == afpacket.ErrPoll {
				continue
			}
			return core.RawFrame{}, fmt.Errorf("read ring: %w", err)
		}

		return core.RawFrame{
			Data:       data,
			Timestamp:  ci.Timestamp,
			CaptureLen: uint32(ci.CaptureLength),
			OrigLen:    uint32(ci.Length),
		}, nil
	}
}

func (s *afpacketSource) Stats() (Stats, error) {
	if s.tpacket == nil {
		return Stats{}, core.ErrSourceNotStarted
	}
	_, v3, err := s.tpacket.SocketStats()
	if err != nil {
		return Stats{}, fmt.Errorf("socket stats: %w", err)
	}
	return Stats{
		Received: uint64(v3.Packets()),
		Dropped:  uint64(v3.Drops()),
	}, nil
}

func (s *afpacketSource) Stop() error {
	if s.tpacket != nil {
		s.tpacket.Close()
		s.tpacket = nil
	}
	return nil
}
