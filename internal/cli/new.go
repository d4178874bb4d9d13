package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/folio/internal/catalog"
	"github.com/modu-ai/folio/internal/template"
	"github.com/modu-ai/folio/internal/ui"
	"github.com/modu-ai/folio/pkg/models"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new project folder",
	Long: `Create a project folder with a starter page and a meta.json descriptor.

With the categorized layout the folder is created inside its category
folder; with the flat layout it is created at the projects root. When no
--category is given, the category is guessed from the name prefix
(for example "game-snake" lands in game/).

Examples:
  folio new clock --category demo --title "World Clock"
  folio new game-snake --non-interactive`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateNewArgs,
	RunE:    runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("category", "", "Category folder (default: guessed from the name)")
	newCmd.Flags().String("title", "", "Card title (default: derived from the name)")
	newCmd.Flags().String("note", "", "Optional note shown under the title")
	newCmd.Flags().String("main-file", "", "Entry page inside the project folder (default: index.html)")
	newCmd.Flags().Bool("non-interactive", false, "Skip the prompts; use flags and defaults")
	newCmd.Flags().Bool("force", false, "Overwrite existing starter files")
}

// validateNewArgs rejects names the scanner would not pick up as a project.
func validateNewArgs(_ *cobra.Command, args []string) error {
	return validateProjectName(args[0])
}

func validateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("project name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid project name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("invalid project name %q: must be a single folder name", name)
	case strings.HasPrefix(name, "_") || strings.HasPrefix(name, "."):
		return fmt.Errorf("invalid project name %q: names starting with _ or . are hidden from the catalog", name)
	}
	return nil
}

func runNew(cmd *cobra.Command, args []string) error {
	d, err := ensureSite(cmd)
	if err != nil {
		return err
	}
	name := args[0]
	cfg := d.Config
	classifier := d.Builder.Classifier()

	category := getStringFlag(cmd, "category")
	if category != "" && !classifier.IsCategory(category) {
		return fmt.Errorf("unknown category %q: must be one of: %s", category, strings.Join(classifier.Categories(), ", "))
	}
	if category == "" {
		category = classifier.Classify(catalog.NewProjectID(name)).Name
	}

	mainFile := getStringFlag(cmd, "main-file")
	if mainFile == "" {
		mainFile = cfg.Build.EntryPoint
	}
	title := getStringFlag(cmd, "title")
	if title == "" {
		title = catalog.DefaultTitle(name)
	}

	hm := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "non-interactive") {
		hm.ForceHeadless(true)
	}
	hm.SetDefaults(map[string]string{
		ui.DefaultTitle:    title,
		ui.DefaultCategory: category,
		ui.DefaultNote:     getStringFlag(cmd, "note"),
		ui.DefaultMainFile: mainFile,
	})

	answers, err := ui.NewProjectWizard(ui.NewTheme(false), hm, classifier.Categories()).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cliMuted.Render("Cancelled."))
			return nil
		}
		return err
	}
	if !classifier.IsCategory(answers.Category) {
		return fmt.Errorf("unknown category %q", answers.Category)
	}

	id := catalog.NewProjectID(answers.Category, name)
	if cfg.Build.Layout == models.LayoutFlat {
		id = catalog.NewProjectID(name)
	}
	target := id.Dir(cfg.ProjectsPath())

	deployer := template.NewDeployerWithForceUpdate(template.StarterFS(), getBoolFlag(cmd, "force"))
	res, err := deployer.Deploy(cmd.Context(), target, &template.StarterContext{
		Name:     name,
		Title:    answers.Title,
		Note:     answers.Note,
		Category: answers.Category,
		MainFile: answers.MainFile,
	})
	if err != nil {
		return fmt.Errorf("scaffold %s: %w", id, err)
	}
	d.Logger.Info("project scaffolded", "id", id, "written", len(res.Written), "skipped", len(res.Skipped))

	details := []string{
		detail("Folder", relTo(cfg.Root, target)),
		detail("Category", answers.Category),
	}
	for _, f := range res.Written {
		details = append(details, detail("Created", filepath.ToSlash(f)))
	}
	for _, f := range res.Skipped {
		details = append(details, detail("Kept", filepath.ToSlash(f)))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard(fmt.Sprintf("Project %s created", id), details...))
	return nil
}
