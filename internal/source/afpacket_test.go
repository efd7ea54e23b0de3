package source

import (
	"os"
	"testing"
)

func TestRingLayout(t *testing.T) {
	const pageSize = 4096
	cases := []struct {
		name      string
		snapLen   int
		bufferMB  int
		frameSize int
	}{
		{"full frames", 65536, 32, 17 * pageSize},
		{"snap below page", 2048, 8, 2048},
		{"snap not power of two", 1500, 8, 2048},
		{"snap equals page", 4096, 8, 2 * pageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frameSize, blockSize, numBlocks, err := ringLayout(tc.snapLen, tc.bufferMB*1024*1024, pageSize)
			if err != nil {
				t.Fatalf("ringLayout failed: %v", err)
			}
			if frameSize != tc.frameSize {
				t.Errorf("frameSize = %d, want %d", frameSize, tc.frameSize)
			}
			if frameSize < tc.snapLen && tc.snapLen >= pageSize {
				t.Errorf("frameSize %d cannot hold snap length %d", frameSize, tc.snapLen)
			}
			if blockSize%pageSize != 0 {
				t.Errorf("blockSize %d not page-aligned", blockSize)
			}
			if blockSize%frameSize != 0 {
				t.Errorf("blockSize %d not a multiple of frameSize %d", blockSize, frameSize)
			}
			if numBlocks < 1 {
				t.Errorf("numBlocks = %d, want at least 1", numBlocks)
			}
			if total := blockSize * numBlocks; total > tc.bufferMB*1024*1024 {
				t.Errorf("ring uses %d bytes, budget is %d", total, tc.bufferMB*1024*1024)
			}
		})
	}
}

func TestRingLayoutErrors(t *testing.T) {
	const pageSize = 4096
	cases := []struct {
		name       string
		snapLen    int
		bufferSize int
	}{
		{"zero snap length", 0, 32 * 1024 * 1024},
		{"negative snap length", -1, 32 * 1024 * 1024},
		{"zero buffer", 65536, 0},
		{"buffer below one block", 65536, 4 * 1024 * 1024},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, _, err := ringLayout(tc.snapLen, tc.bufferSize, pageSize); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewAFPacketSourceDefaults(t *testing.T) {
	src, err := newAFPacketSource(Options{Type: TypeAFPacket, Interface: "eth0"})
	if err != nil {
		t.Fatalf("newAFPacketSource failed: %v", err)
	}
	if src.iface != "eth0" {
		t.Errorf("iface = %q, want %q", src.iface, "eth0")
	}
	if src.snapLen != defaultSnapLen {
		t.Errorf("snapLen = %d, want default %d", src.snapLen, defaultSnapLen)
	}

	wantFrame, wantBlock, wantBlocks, err := ringLayout(defaultSnapLen, defaultRingSizeMB*1024*1024, os.Getpagesize())
	if err != nil {
		t.Fatalf("ringLayout failed: %v", err)
	}
	if src.frameSize != wantFrame || src.blockSize != wantBlock || src.numBlocks != wantBlocks {
		t.Errorf("ring = (%d, %d, %d), want (%d, %d, %d)",
			src.frameSize, src.blockSize, src.numBlocks, wantFrame, wantBlock, wantBlocks)
	}
}

func TestNewAFPacketSourceBufferOverride(t *testing.T) {
	src, err := newAFPacketSource(Options{
		Type:    TypeAFPacket,
		SnapLen: 2048,
		Extra:   map[string]any{"buffer_size_mb": 4},
	})
	if err != nil {
		t.Fatalf("newAFPacketSource failed: %v", err)
	}
	wantBlocks := 4 * 1024 * 1024 / src.blockSize
	if src.numBlocks != wantBlocks {
		t.Errorf("numBlocks = %d, want %d", src.numBlocks, wantBlocks)
	}
}

func TestNewAFPacketSourceBufferTooSmall(t *testing.T) {
	_, err := newAFPacketSource(Options{
		Type:  TypeAFPacket,
		Extra: map[string]any{"buffer_size_mb": 4},
	})
	if err == nil {
		t.Fatal("expected error for undersized ring")
	}
}

func TestAFPacketStatsBeforeStart(t *testing.T) {
	src, err := newAFPacketSource(Options{Type: TypeAFPacket})
	if err != nil {
		t.Fatalf("newAFPacketSource failed: %v", err)
	}
	if _, err := src.Stats(); err == nil {
		t.Error("expected error for Stats before Start")
	}
}
