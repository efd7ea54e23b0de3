// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "strix",
	Short: "Strix - link-layer frame capture and TCP/IP header inspection",
	Long: `Strix captures link-layer frames from a raw socket, an AF_PACKET ring
or a pcap savefile, decodes the Ethernet, IPv4 and TCP headers of every
frame, and prints each one as a labeled report on stdout.

Decoding never trusts the wire: every header is bounds-checked before it
is read, and frames that do not carry the full Ethernet+IPv4+TCP chain
are counted and skipped without stopping the capture.`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (built-in defaults apply when omitted)")
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
