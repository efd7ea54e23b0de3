package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/strixcap/strix/internal/config"
	"github.com/strixcap/strix/internal/source"
)

var validateProfileFile string

// validateCmd checks a capture profile without opening any socket or file.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a capture profile file",
	Long: `Validate a capture profile (JSON or YAML) without starting a capture.

The profile is parsed, checked, and used to build the capture source so
backend-specific options are verified too; nothing is opened. File format
is auto-detected from extension (.json, .yaml, .yml).

Examples:
  strix validate -f profiles/eth0.json
  strix validate -f profiles/replay.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(validateProfileFile, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateProfileFile, "file", "f", "",
		"capture profile file to validate (required)")
	validateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	profile, err := config.ParseProfileAuto(data, path)
	if err != nil {
		return err
	}

	srcType, err := source.ParseType(profile.Source)
	if err != nil {
		return err
	}

	// Constructing the source validates backend options (ring sizing,
	// savefile path) without touching the host.
	if _, err := source.New(source.Options{
		Type:      srcType,
		Interface: profile.Interface,
		SnapLen:   profile.SnapLen,
		Extra:     profile.Options,
	}); err != nil {
		return err
	}

	iface := profile.Interface
	if iface == "" {
		iface = "any"
	}
	fmt.Fprintf(out, "VALID: profile %q — %s source on %s, snap length %d\n",
		profile.Name, srcType, iface, profile.SnapLen)
	return nil
}
