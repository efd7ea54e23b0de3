package source

import "testing"

func TestHtons(t *testing.T) {
	cases := []struct {
		in   uint16
		want uint16
	}{
		{0x0003, 0x0300}, // ETH_P_ALL
		{0x0800, 0x0008},
		{0x1234, 0x3412},
		{0x0000, 0x0000},
		{0xFFFF, 0xFFFF},
	}
	for _, tc := range cases {
		if got := htons(tc.in); got != tc.want {
			t.Errorf("htons(%#04x) = %#04x, want %#04x", tc.in, got, tc.want)
		}
	}
}

func TestHtonsRoundTrip(t *testing.T) {
	for _, v := range []uint16{0x0003, 0x0800, 0x86DD, 0xBEEF} {
		if got := htons(htons(v)); got != v {
			t.Errorf("htons(htons(%#04x)) = %#04x", v, got)
		}
	}
}

func TestNewRawSocketSource(t *testing.T) {
	src, err := newRawSocketSource(Options{
		Type:      TypeRawSocket,
		Interface: "eth0",
		SnapLen:   2048,
	})
	if err != nil {
		t.Fatalf("newRawSocketSource failed: %v", err)
	}
	if src.iface != "eth0" {
		t.Errorf("iface = %q, want %q", src.iface, "eth0")
	}
	if src.snapLen != 2048 {
		t.Errorf("snapLen = %d, want 2048", src.snapLen)
	}
	if src.fd != -1 {
		t.Errorf("fd = %d, want -1 before Start", src.fd)
	}
}

func TestNewRawSocketSourceDefaults(t *testing.T) {
	src, err := newRawSocketSource(Options{Type: TypeRawSocket})
	if err != nil {
		t.Fatalf("newRawSocketSource failed: %v", err)
	}
	if src.snapLen != defaultSnapLen {
		t.Errorf("snapLen = %d, want default %d", src.snapLen, defaultSnapLen)
	}
	if src.iface != "" {
		t.Errorf("iface = %q, want unbound", src.iface)
	}
}

func TestRawSocketStatsBeforeStart(t *testing.T) {
	src, err := newRawSocketSource(Options{Type: TypeRawSocket})
	if err != nil {
		t.Fatalf("newRawSocketSource failed: %v", err)
	}
	if _, err := src.Stats(); err == nil {
		t.Error("expected error for Stats before Start")
	}
}
