package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the catalog and serve the site locally",
	Long: `Build the catalog once, then serve the site root together with a small
JSON API:

  GET /api/projects[?category=name]
  GET /api/projects/{id}
  GET /api/categories
  GET /api/health

With --watch the catalog is rebuilt whenever a project, the page template
or folio.yaml changes, and the API serves the new records.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: from config, 127.0.0.1:8080)")
	serveCmd.Flags().String("layout", "", "Projects layout: categorized or flat (default: from config)")
	serveCmd.Flags().Bool("stamp-version", false, "Replace the version token in the page template")
	serveCmd.Flags().Bool("watch", false, "Rebuild on changes")
	serveCmd.Flags().String("debounce", "", "Quiet period before a rebuild, e.g. 300ms (default: from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	d, err := ensureSite(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	res, err := d.Builder.Build(ctx)
	if err != nil {
		return err
	}
	svc := server.NewProjectService(d.Builder.Classifier())
	svc.Replace(res.Records, d.Builder.Classifier())

	addr := getStringFlag(cmd, "addr")
	if addr == "" {
		addr = d.Config.Serve.Addr
	}
	srv, err := server.Listen(addr, server.NewRouter(svc, d.Config.Root, d.Logger), d.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderCard("Serving catalog", fmt.Sprintf("%s\n%s",
		detail("URL", "http://"+srv.Addr()+"/"),
		detail("Projects", fmt.Sprint(len(res.Records))),
	)))

	watchDone := make(chan error, 1)
	if getBoolFlag(cmd, "watch") {
		w, err := newWatcher(cmd, d)
		if err != nil {
			_ = srv.Close()
			return err
		}
		defer func() { _ = w.Close() }()
		go func() {
			watchDone <- w.Run(ctx, func(ctx context.Context) error {
				res, err := rebuild(ctx, d)
				if err != nil {
					return err
				}
				// Reload swapped in a new builder, so its classifier carries any
				// taxonomy edits.
				svc.Replace(res.Records, d.Builder.Classifier())
				return nil
			})
		}()
	} else {
		watchDone <- nil
	}

	err = srv.Serve(ctx)
	cancel()
	if werr := <-watchDone; err == nil {
		err = werr
	}
	return err
}
