package source

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/strixcap/strix/internal/core"
)

// rawSocketSource captures frames through an AF_PACKET SOCK_RAW socket,
// one recvfrom per frame. Without an interface name the socket stays
// unbound and receives from every interface on the host.
type rawSocketSource struct {
	iface   string
	snapLen int

	fd  int
	buf []byte
	ctx context.Context
}

func newRawSocketSource(opts Options) (*rawSocketSource, error) {
	snapLen := opts.SnapLen
	if snapLen <= 0 {
		snapLen = defaultSnapLen
	}
	return &rawSocketSource{
		iface:   opts.Interface,
		snapLen: snapLen,
		fd:      -1,
	}, nil
}

func (s *rawSocketSource) Start(ctx context.Context) error {
	proto := htons(unix.ETH_P_ALL)
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(proto))
	if err != nil {
		return fmt.Errorf("open AF_PACKET socket: %w", err)
	}

	if s.iface != "" {
		iface, err := net.InterfaceByName(s.iface)
		if err != nil {
			unix.Close(fd)
			return fmt.Errorf("lookup interface %s: %w", s.iface, err)
		}
		sll := &unix.SockaddrLinklayer{
			Protocol: proto,
			Ifindex:  iface.Index,
		}
		if err := unix.Bind(fd, sll); err != nil {
			unix.Close(fd)
			return fmt.Errorf("bind to %s: %w", s.iface, err)
		}
	}

	// The receive timeout keeps ReadFrame from blocking past one
	// cancellation check interval.
	tv := unix.NsecToTimeval(pollTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		unix.Close(fd)
		return fmt.Errorf("set receive timeout: %w", err)
	}

	s.fd = fd
	s.buf = make([]byte, s.snapLen)
	s.ctx = ctx
	return nil
}

func (s *rawSocketSource) ReadFrame() (core.RawFrame, error) {
	if s.fd < 0 {
		return core.RawFrame{}, core.ErrSourceNotStarted
	}
	for {
		if err := s.ctx.Err(); err != nil {
			return core.RawFrame{}, err
		}

		// MSG_TRUNC makes recvfrom report the full on-wire length even
		// when the frame was cut to the snap length.
		n, _, err := unix.Recvfrom(s.fd, s.buf, unix.MSG_TRUNC)
		if err != nil {
			// EAGAIN is the receive timeout expiring, EINTR an
			// interrupted call. Neither ends the capture.
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return core.RawFrame{}, fmt.Errorf("recvfrom: %w", err)
		}
		if n == 0 {
			continue
		}

		capLen := n
		if capLen > len(s.buf) {
			capLen = len(s.buf)
		}
		return core.RawFrame{
			Data:       s.buf[:capLen],
			Timestamp:  time.Now(),
			CaptureLen: uint32(capLen),
			OrigLen:    uint32(n),
		}, nil
	}
}

func (s *rawSocketSource) Stats() (Stats, error) {
	if s.fd < 0 {
		return Stats{}, core.ErrSourceNotStarted
	}
	st, err := unix.GetsockoptTpacketStats(s.fd, unix.SOL_PACKET, unix.PACKET_STATISTICS)
	if err != nil {
		return Stats{}, fmt.Errorf("packet statistics: %w", err)
	}
	return Stats{
		Received: uint64(st.Packets),
		Dropped:  uint64(st.Drops),
	}, nil
}

func (s *rawSocketSource) Stop() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	s.buf = nil
	return err
}

// htons converts a short to network byte order for socket(2) and bind(2).
func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
