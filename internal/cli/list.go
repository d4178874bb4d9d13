package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modu-ai/folio/internal/builder"
	"github.com/modu-ai/folio/internal/template"
	"github.com/modu-ai/folio/pkg/models"
)

// List output formats.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the resolved projects without writing anything",
	Long: `Resolve every project folder the way build does and print the result.

Formats:
  table      One row per project (default)
  markdown   Projects grouped by category, rendered for the terminal
  json       The exact content build would write to the metadata file`,
	Args:    cobra.NoArgs,
	PreRunE: validateListFlags,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("format", "f", formatTable, "Output format: table, markdown, or json")
	listCmd.Flags().String("layout", "", "Projects layout: categorized or flat (default: from config)")
}

func validateListFlags(cmd *cobra.Command, _ []string) error {
	switch getStringFlag(cmd, "format") {
	case formatTable, formatMarkdown, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid --format value %q: must be one of: table, markdown, json", getStringFlag(cmd, "format"))
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	d, err := ensureSite(cmd)
	if err != nil {
		return err
	}

	cat, err := d.Builder.Collect(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch getStringFlag(cmd, "format") {
	case formatJSON:
		data, err := template.MarshalRecords(cat.Records)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	case formatMarkdown:
		rendered, err := renderMarkdown(catalogMarkdown(cat, d.Builder.Classifier().Categories()), isTerminal(os.Stdout))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, rendered)
	default:
		_, _ = fmt.Fprintln(out, renderTable(cat.Records))
	}

	_, _ = fmt.Fprint(out, renderWarnings(cat.Warnings))
	return nil
}

// renderTable lays records out in a rounded lipgloss table.
func renderTable(records []models.Record) string {
	if len(records) == 0 {
		return cliMuted.Render("No projects found.")
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.CategoryEmoji + " " + r.Category, r.Title, r.LinkPath}
	}
	header := cliPrimary.Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(cliBorder).
		Headers("CATEGORY", "TITLE", "LINK").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

// catalogMarkdown groups records by category, in taxonomy order, as a
// Markdown document.
func catalogMarkdown(cat *builder.Catalog, categories []string) string {
	title := cases.Title(language.English)
	groups := make(map[string][]models.Record)
	for _, r := range cat.Records {
		groups[r.Category] = append(groups[r.Category], r)
	}

	order := slices.Clone(categories)
	var extra []string
	for name := range groups {
		if !slices.Contains(order, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	var b strings.Builder
	fmt.Fprintf(&b, "# Projects\n\n%d of %d folders listed.\n", len(cat.Records), cat.Discovered)
	for _, name := range order {
		records := groups[name]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s %s\n\n", records[0].CategoryEmoji, title.String(name))
		for _, r := range records {
			fmt.Fprintf(&b, "- **%s** `%s`", r.Title, r.LinkPath)
			if r.HasNote() {
				fmt.Fprintf(&b, ": %s", r.Note)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMarkdown renders md for the terminal. Without a TTY the plain
// notty style is used so the output stays free of escape codes.
func renderMarkdown(md string, tty bool) (string, error) {
	style := glamour.WithStandardStyle("notty")
	if tty {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
