package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"netpulse/internal/app"
	"netpulse/internal/catalog"
	"netpulse/internal/cli"
	"netpulse/internal/config"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// For mocking in tests
var (
	loadConfig       = config.LoadConfig
	writeToClipboard = clipboard.WriteAll
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and run catalog tools from the command line",
		Long: `Lists the tools netpulse serves and runs single invocations through the
same pipeline the MCP server uses, without an MCP client.`,
	}
	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsShowCmd())
	cmd.AddCommand(newToolsCallCmd())
	return cmd
}

func newToolsListCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every tool in the catalog",
		Long: `Prints the tool catalog. No credentials are needed; the configured account
ID only affects the declared argument defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			reg, err := catalog.New(cfg.API.AccountID)
			if err != nil {
				return err
			}
			return cli.PrintTools(cmd.OutOrStdout(), reg.List(), width)
		},
	}
	cmd.Flags().IntVar(&width, "width", cli.DefaultWidth, "Maximum table width in terminal cells")
	return cmd
}

func newToolsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Describe one tool and its arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			reg, err := catalog.New(cfg.API.AccountID)
			if err != nil {
				return err
			}
			d, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}
			return cli.PrintTool(cmd.OutOrStdout(), d)
		},
	}
}

// toolsCallOptions holds the flags of the tools call command.
type toolsCallOptions struct {
	args   string
	output string
	copy   bool
	debug  bool
}

func newToolsCallCmd() *cobra.Command {
	opts := &toolsCallOptions{}

	cmd := &cobra.Command{
		Use:   "call <name>",
		Short: "Run one tool invocation and print its response",
		Long: `Runs a single tool invocation against the configured API and prints the
response text exactly as an MCP client would receive it.

Examples:
  netpulse tools call account_snapshot
  netpulse tools call top_sites_by_traffic --args '{"limit":10,"timeFrame":"last.P7D"}'
  netpulse tools call site_timeseries_summary --args '{"siteIDs":["42"]}' -o yaml --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolsCall(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.args, "args", "", "Tool arguments as a JSON object")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(cli.OutputFormatRaw), "Output format: raw, json or yaml")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the output to the clipboard")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	return cmd
}

func runToolsCall(cmd *cobra.Command, name string, opts *toolsCallOptions) error {
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}

	var arguments map[string]any
	if opts.args != "" {
		if err := json.Unmarshal([]byte(opts.args), &arguments); err != nil {
			return fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}

	application, err := app.NewApplication(app.NewConfig("", opts.debug, rootCmd.Version))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	text, err := application.Services().Invoker.Invoke(ctx, name, arguments)
	if err != nil {
		return err
	}

	out, err := cli.FormatOutput(text, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if opts.copy {
		if err := writeToClipboard(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	}
	return nil
}
