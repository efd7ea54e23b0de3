package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestRegisteredMetricsExposed(t *testing.T) {
	FramesCapturedTotal.WithLabelValues("pcapfile").Inc()
	FramesDecodedTotal.Inc()
	DecodeErrorsTotal.WithLabelValues("truncated").Inc()
	FramesRenderedTotal.Inc()
	KernelFramesReceived.WithLabelValues("pcapfile").Set(10)
	KernelFramesDropped.WithLabelValues("pcapfile").Set(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, name := range []string{
		"strix_frames_captured_total",
		"strix_frames_decoded_total",
		"strix_decode_errors_total",
		"strix_frames_rendered_total",
		"strix_render_errors_total",
		"strix_kernel_frames_received",
		"strix_kernel_frames_dropped",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("exposition missing %s", name)
		}
	}
}

func TestServerServesMetrics(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "/metrics")
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer srv.Stop(context.Background())

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("exposition missing default process metrics")
	}
}

func TestServerDefaultPath(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "")
	if srv.path != "/metrics" {
		t.Errorf("path = %q, want /metrics", srv.path)
	}
}

func TestServerBindFailure(t *testing.T) {
	first := NewServer("127.0.0.1:0", "/metrics")
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer first.Stop(context.Background())

	second := NewServer(first.Addr(), "/metrics")
	if err := second.Start(context.Background()); err == nil {
		second.Stop(context.Background())
		t.Fatal("expected bind failure on occupied address")
	}
}

func TestServerStopWithoutStart(t *testing.T) {
	srv := NewServer("127.0.0.1:0", "/metrics")
	if err := srv.Stop(context.Background()); err != nil {
		t.Errorf("Stop without Start returned %v", err)
	}
}
