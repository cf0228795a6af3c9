// Command recordings-export lists Webex converged recordings (admin or
// compliance officer) for the past 30 days and writes them to a CSV file.
//
// The access token is prompted for interactively and never read from flags
// or the environment, so it cannot leak into shell history or process
// listings.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webex-tools/recordings-export/pkg/client"
	"github.com/webex-tools/recordings-export/pkg/export"
	"github.com/webex-tools/recordings-export/pkg/logging"
	"github.com/webex-tools/recordings-export/pkg/pagination"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	output     string
	baseURL    string
	windowDays int
	pageSize   int
	debug      bool
	pretty     bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "recordings-export",
		Short: "Export Webex converged recordings to CSV",
		Long: "recordings-export pages through the List Recordings for Admin or Compliance\n" +
			"officer endpoint for the past 30 days, handling Link-header pagination and\n" +
			"429 rate limiting, and writes the full result set to a CSV file.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", export.DefaultFilename, "output CSV path")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", client.DefaultBaseURL, "Webex API base URL")
	cmd.Flags().IntVar(&opts.windowDays, "window-days", 30, "how many days back from now to query")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 100, "items requested per page")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "human-readable log output")

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.Pretty = opts.pretty
	if opts.debug {
		logCfg.Level = logging.LevelDebug
	}
	logger := logging.Setup(logCfg)

	token, err := readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c, err := client.New(client.Config{
		BaseURL:   opts.baseURL,
		Token:     token,
		UserAgent: "recordings-export/" + version,
	})
	if err != nil {
		return err
	}

	fetcher := pagination.NewFetcher(c, pagination.Config{
		BaseURL:    opts.baseURL,
		PageSize:   opts.pageSize,
		WindowDays: opts.windowDays,
	})

	items, err := fetcher.FetchAll(cmd.Context())
	if err != nil {
		return err
	}

	if err := export.WriteCSV(opts.output, items); err != nil {
		return err
	}

	logger.Info().
		Int("count", len(items)).
		Str("path", opts.output).
		Msg("Export complete")
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d recordings to %s\n", len(items), opts.output)
	fmt.Fprintf(cmd.OutOrStdout(), "Final count: %d\n", len(items))

	return nil
}
