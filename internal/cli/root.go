package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Build the project catalog page of a portfolio site",
	Long: `folio scans a projects directory of personal sites and browser games,
derives a title, category and link for every project folder, and writes
an index page plus a metadata.json side file.

Run it from the site root, or point --root at one. Optional settings are
read from folio.yaml, .env and FOLIO_* environment variables.`,
	Version:      version.GetVersion(),
	SilenceUsage: true,
}

// @MX:ANCHOR: [AUTO] Execute is the main entry point for the folio CLI
// @MX:REASON: [AUTO] fan_in=2, called from cmd/folio/main.go and root_test.go
// Execute initializes dependencies and runs the root command. SIGINT and
// SIGTERM cancel the command context.
func Execute() error {
	InitDependencies()
	defer func() { _ = deps.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("folio %s\n", version.GetFullVersion()))

	rootCmd.PersistentFlags().String("root", ".", "Site root directory")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: <root>/folio.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
