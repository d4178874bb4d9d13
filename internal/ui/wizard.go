package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
)

// ProjectAnswers holds the values collected for a new project folder.
type ProjectAnswers struct {
	Title    string
	Category string
	Note     string
	MainFile string
}

// ProjectWizard collects the answers needed to scaffold a project.
type ProjectWizard interface {
	Run(ctx context.Context) (*ProjectAnswers, error)
}

// wizardImpl implements ProjectWizard.
type wizardImpl struct {
	theme      *Theme
	headless   *HeadlessManager
	categories []string
}

// NewProjectWizard creates a ProjectWizard offering the given categories.
// Defaults stored on hm pre-fill the interactive form and are the only
// source of answers in headless mode.
func NewProjectWizard(theme *Theme, hm *HeadlessManager, categories []string) ProjectWizard {
	return &wizardImpl{theme: theme, headless: hm, categories: slices.Clone(categories)}
}

// Run executes the wizard. It respects context cancellation at every step.
func (w *wizardImpl) Run(ctx context.Context) (*ProjectAnswers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.headless.IsHeadless() {
		return w.runHeadless()
	}
	return w.runInteractive(ctx)
}

// runHeadless builds answers from stored defaults. Title and category are
// required.
func (w *wizardImpl) runHeadless() (*ProjectAnswers, error) {
	if !w.headless.HasDefaults() {
		return nil, ErrHeadlessNoDefaults
	}
	a := w.seed()
	if a.Title == "" {
		return nil, fmt.Errorf("%w: %s", ErrHeadlessNoDefaults, DefaultTitle)
	}
	if a.Category == "" {
		return nil, fmt.Errorf("%w: %s", ErrHeadlessNoDefaults, DefaultCategory)
	}
	return a, nil
}

func (w *wizardImpl) seed() *ProjectAnswers {
	a := &ProjectAnswers{}
	a.Title, _ = w.headless.GetDefault(DefaultTitle)
	a.Category, _ = w.headless.GetDefault(DefaultCategory)
	a.Note, _ = w.headless.GetDefault(DefaultNote)
	a.MainFile, _ = w.headless.GetDefault(DefaultMainFile)
	return a
}

// runInteractive asks each question in its own huh.Form so a long option
// list never shares a viewport with the text inputs.
func (w *wizardImpl) runInteractive(ctx context.Context) (*ProjectAnswers, error) {
	a := w.seed()
	theme := newFormTheme()

	groups := []*huh.Group{
		huh.NewGroup(huh.NewInput().
			Title("Title").
			Description("Shown on the project card").
			Value(&a.Title).
			Validate(required("title"))),
		huh.NewGroup(w.categorySelect(&a.Category)),
		huh.NewGroup(huh.NewInput().
			Title("Note").
			Description("Optional line under the title").
			Value(&a.Note)),
		huh.NewGroup(huh.NewInput().
			Title("Main file").
			Description("Entry page inside the project folder").
			Value(&a.MainFile).
			Validate(required("main file"))),
	}

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		form := huh.NewForm(g).
			WithTheme(theme).
			WithAccessible(false)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	a.Title = strings.TrimSpace(a.Title)
	a.Note = strings.TrimSpace(a.Note)
	a.MainFile = strings.TrimSpace(a.MainFile)
	return a, nil
}

func (w *wizardImpl) categorySelect(value *string) *huh.Select[string] {
	opts := make([]huh.Option[string], len(w.categories))
	for i, c := range w.categories {
		opts[i] = huh.NewOption(c, c)
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(value)
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
