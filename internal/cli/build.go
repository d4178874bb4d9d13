package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/internal/builder"
	"github.com/modu-ai/folio/internal/catalog"
	"github.com/modu-ai/folio/internal/diff"
	"github.com/modu-ai/folio/internal/ui"
	"github.com/modu-ai/folio/pkg/models"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Scan the projects directory and write the catalog page",
	Long: `Scan the projects directory, resolve every project folder and write the
catalog page and its metadata file.

Per-project problems (a malformed descriptor, a missing entry point) are
reported as warnings and never fail the build. A missing projects
directory, an unreadable template or an unwritable output does.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("layout", "", "Projects layout: categorized or flat (default: from config)")
	buildCmd.Flags().Bool("stamp-version", false, "Replace the version token in the page template")
	buildCmd.Flags().Bool("no-progress", false, "Do not show resolution progress")
	buildCmd.Flags().Bool("diff", false, "List projects added, removed or changed since the last build")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	d, err := ensureSite(cmd)
	if err != nil {
		return err
	}

	if !getBoolFlag(cmd, "no-progress") {
		report, finish := progressReporter(ui.NewProgress(ui.NewTheme(false), ui.NewHeadlessManager(), cmd.ErrOrStderr()))
		d.Builder.OnProgress(report)
		defer func() {
			finish()
			d.Builder.OnProgress(nil)
		}()
	}

	var previous []models.Record
	showDiff := getBoolFlag(cmd, "diff")
	if showDiff {
		previous = readRecords(d.Config.MetadataPath())
	}

	res, err := d.Builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, renderBuildSummary(d.Config.Root, res))
	if showDiff {
		_, _ = fmt.Fprint(out, renderChanges(diff.Catalog(previous, res.Records)))
	}
	_, _ = fmt.Fprint(out, renderWarnings(res.Warnings))
	return nil
}

// readRecords loads a previously written metadata file. A missing or
// unreadable file counts as an empty catalog.
func readRecords(path string) []models.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// renderChanges lists catalog changes, one project per line.
func renderChanges(s diff.Summary) string {
	if s.Empty() {
		return cliMuted.Render("No catalog changes.") + "\n"
	}
	var b strings.Builder
	for _, line := range s.Lines() {
		style := cliPrimary
		switch line[0] {
		case '+':
			style = cliSuccess
		case '-':
			style = cliError
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// progressReporter adapts a ui.Progress to the builder's per-project
// callback. The bar starts on the first resolved project; finish closes a
// bar left open by an aborted build.
func progressReporter(p ui.Progress) (report builder.ProgressFunc, finish func()) {
	var bar ui.ProgressBar
	report = func(done, total int, id catalog.ProjectID) {
		if bar == nil {
			bar = p.Start("Resolving projects", total)
		}
		bar.SetTitle(id.String())
		bar.Increment(1)
		if done == total {
			bar.Done()
			bar = nil
		}
	}
	finish = func() {
		if bar != nil {
			bar.Done()
			bar = nil
		}
	}
	return report, finish
}

// renderBuildSummary renders the success card printed after a build.
func renderBuildSummary(root string, res *builder.Result) string {
	details := []string{
		detail("Page", relTo(root, res.PagePath)),
		detail("Metadata", relTo(root, res.MetadataPath)),
		detail("Discovered", strconv.Itoa(res.Discovered)),
	}
	if len(res.Skipped) > 0 {
		details = append(details, detail("Skipped", strconv.Itoa(len(res.Skipped))))
	}
	if res.Version != "" {
		details = append(details, detail("Version", res.Version))
	}
	return renderSuccessCard(fmt.Sprintf("%d projects built", len(res.Records)), details...)
}

// relTo shortens path for display when it lies under root.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
