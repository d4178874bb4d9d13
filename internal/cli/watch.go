package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/internal/builder"
	"github.com/modu-ai/folio/internal/config"
	"github.com/modu-ai/folio/internal/defs"
	"github.com/modu-ai/folio/internal/diff"
	"github.com/modu-ai/folio/internal/resilience"
	"github.com/modu-ai/folio/internal/template"
	"github.com/modu-ai/folio/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the catalog whenever projects or settings change",
	Long: `Build the catalog, then watch the projects directory, the page template,
folio.yaml and .env, and rebuild after every burst of changes.

A failed rebuild is reported and watching continues. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("layout", "", "Projects layout: categorized or flat (default: from config)")
	watchCmd.Flags().Bool("stamp-version", false, "Replace the version token in the page template")
	watchCmd.Flags().String("debounce", "", "Quiet period before a rebuild, e.g. 300ms (default: from config)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	d, err := ensureSite(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	res, err := d.Builder.Build(cmd.Context())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, renderBuildSummary(d.Config.Root, res))
	_, _ = fmt.Fprint(out, renderWarnings(res.Warnings))

	w, err := newWatcher(cmd, d)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	_, _ = fmt.Fprintln(out, cliMuted.Render("Watching for changes. Press Ctrl+C to stop."))
	last := res.Records
	return w.Run(cmd.Context(), func(ctx context.Context) error {
		res, err := rebuild(ctx, d)
		if err != nil {
			_, _ = fmt.Fprintln(out, symError()+" "+cliError.Render(err.Error()))
			return err
		}
		_, _ = fmt.Fprintln(out, renderBuildSummary(d.Config.Root, res))
		_, _ = fmt.Fprint(out, renderChanges(diff.Catalog(last, res.Records)))
		_, _ = fmt.Fprint(out, renderWarnings(res.Warnings))
		last = res.Records
		return nil
	})
}

// newWatcher creates a watcher over the projects directory and every file
// the build reads.
func newWatcher(cmd *cobra.Command, d *Dependencies) (*watch.Watcher, error) {
	debounce, err := config.ParseDuration(getStringFlag(cmd, "debounce"), d.Config.Watch.Debounce)
	if err != nil {
		return nil, fmt.Errorf("invalid --debounce value: %w", err)
	}
	return watch.New(watch.Options{
		ProjectsDir: d.Config.ProjectsPath(),
		Files:       watchedFiles(d),
		Debounce:    debounce,
	}, d.Logger)
}

// watchedFiles lists the inputs outside the projects directory.
func watchedFiles(d *Dependencies) []string {
	cfg := d.Config
	configFile := filepath.Join(cfg.Root, defs.ConfigYAML)
	if d.site.ConfigPath != "" {
		if abs, err := filepath.Abs(d.site.ConfigPath); err == nil {
			configFile = abs
		}
	}
	files := []string{
		cfg.TemplatePath(),
		configFile,
		filepath.Join(cfg.Root, defs.DotEnv),
	}
	if card := cfg.CardTemplatePath(); card != "" {
		files = append(files, card)
	}
	return files
}

// rebuildPolicy retries rebuilds that fail while an editor is still
// writing the template or folio.yaml.
func rebuildPolicy(logger *slog.Logger) resilience.RetryPolicy {
	return resilience.RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		RetryableErrors: []error{
			template.ErrTemplateRead,
			config.ErrConfigRead,
			config.ErrInvalidYAML,
		},
		OnRetry: func(retry int, err error, delay time.Duration) {
			logger.Warn("rebuild failed, retrying", "retry", retry, "delay", delay, "error", err)
		},
	}
}

// rebuild reloads the configuration, so edits to folio.yaml take effect,
// and runs one build.
func rebuild(ctx context.Context, d *Dependencies) (*builder.Result, error) {
	var res *builder.Result
	err := resilience.Retry(ctx, rebuildPolicy(d.Logger), func(ctx context.Context) error {
		if err := d.Reload(); err != nil {
			return err
		}
		r, err := d.Builder.Build(ctx)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	return res, err
}
