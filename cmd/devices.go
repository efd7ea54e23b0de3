package cmd

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
)

// devicesCmd lists interfaces usable as capture.interface.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List capturable network interfaces",
	Long: `List the host's network interfaces with index, MTU, MAC address and
state flags. Any listed name can be used as the capture interface.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDevices(os.Stdout); err != nil {
			exitWithError("failed to list interfaces", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(out io.Writer) error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return err
	}

	for _, iface := range ifaces {
		mac := iface.HardwareAddr.String()
		if mac == "" {
			mac = "(none)"
		}
		fmt.Fprintf(out, "%d: %s  mtu %d  mac %s  <%s>\n",
			iface.Index, iface.Name, iface.MTU, mac, iface.Flags)
	}
	return nil
}
