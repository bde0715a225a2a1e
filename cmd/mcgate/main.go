package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mcgate",
		Short: "A Minecraft status and wake-on-join gate",
		Long: `mcgate answers Minecraft server list pings on behalf of a backend
server running on an EC2 instance. The instance state is shown in the
server list, and a player trying to join a stopped instance starts it.

It also queries the status of any server speaking protocol 340.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		statusCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
