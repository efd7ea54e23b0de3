package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/strixcap/strix/internal/config"
	"github.com/strixcap/strix/internal/core/decoder"
	"github.com/strixcap/strix/internal/log"
	"github.com/strixcap/strix/internal/metrics"
	"github.com/strixcap/strix/internal/pipeline"
	"github.com/strixcap/strix/internal/sink/console"
	"github.com/strixcap/strix/internal/source"
)

var profileFile string

// runCmd starts the capture loop in the foreground.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Capture frames and print their decoded headers",
	Long: `Capture frames and print the Ethernet, IPv4 and TCP header of each
one as a labeled report on stdout. Diagnostics go to stderr, or to a log
file when one is configured.

The loop runs until SIGINT or SIGTERM, or until a pcap savefile source
reaches end of file.

Examples:
  strix run                          # raw socket, all interfaces
  strix run -c /etc/strix/strix.yml  # with a config file
  strix run -p profiles/eth0.yaml    # apply a capture profile`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCapture(configFile, profileFile, os.Stdout); err != nil {
			exitWithError("capture failed", err)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&profileFile, "profile", "p", "",
		"capture profile file overriding the capture section (JSON or YAML)")

	rootCmd.AddCommand(runCmd)
}

// runCapture wires config, source, decoder and sink into a pipeline and
// drives it until the context is cancelled or the source drains.
func runCapture(configPath, profilePath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if profilePath != "" {
		profile, err := loadProfile(profilePath)
		if err != nil {
			return err
		}
		profile.Apply(cfg)
	}

	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	logger := log.GetLogger()

	srcType, err := source.ParseType(cfg.Capture.Source)
	if err != nil {
		return err
	}
	src, err := source.New(source.Options{
		Type:      srcType,
		Interface: cfg.Capture.Interface,
		SnapLen:   cfg.Capture.SnapLen,
		Extra:     cfg.Capture.Options,
	})
	if err != nil {
		return fmt.Errorf("build %s source: %w", srcType, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer srv.Stop(context.Background())
		logger.WithField("addr", srv.Addr()).Info("metrics server listening")
	}

	logger.WithFields(map[string]interface{}{
		"source":    string(srcType),
		"interface": cfg.Capture.Interface,
		"snap_len":  cfg.Capture.SnapLen,
	}).Info("strix starting")

	p := pipeline.New(pipeline.Config{
		Source:      src,
		Decoder:     decoder.NewStandardDecoder(),
		Sink:        console.New(out, cfg.Output.HexDump),
		SourceLabel: string(srcType),
	})
	return p.Run(ctx)
}

func loadProfile(path string) (*config.CaptureProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	profile, err := config.ParseProfileAuto(data, path)
	if err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}
