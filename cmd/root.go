package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netpulse",
	Short: "Serve network metrics to AI assistants over MCP",
	Long: `netpulse is an MCP server that exposes a fixed catalog of read-only tools
over a GraphQL network-metrics API. Each tool turns its arguments into one
GraphQL request and returns either the raw response or a compact summary
(top-N rankings, timeseries statistics, grouped metrics, event counts).

netpulse needs NETPULSE_API_HOST and NETPULSE_API_KEY (or the api section of
its config file). Commands fail with a non-zero exit when the configuration is
incomplete, a tool name is unknown, a required list argument is empty or the
API answers with an HTTP or GraphQL error.`,
	// Configuration, argument and API errors are printed as a single line
	// without the usage text.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "netpulse version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newToolsCmd())
}
