package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modu-ai/folio/internal/atomicfile"
)

// StarterContext is the data available to starter templates.
type StarterContext struct {
	Name     string
	Title    string
	Note     string
	Category string
	MainFile string
}

// DeployResult lists what a Deploy call did, as slash paths relative to
// the target directory.
type DeployResult struct {
	Written []string
	Skipped []string
}

// Deployer writes a template filesystem into a project folder.
type Deployer interface {
	// Deploy writes every file of the template filesystem under targetDir.
	// Files ending in .tmpl are rendered with data and saved without the
	// suffix. Existing files are kept unless the deployer forces updates.
	Deploy(ctx context.Context, targetDir string, data *StarterContext) (*DeployResult, error)

	// ListTemplates returns the deploy target paths in sorted order.
	ListTemplates() []string
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	fsys        fs.FS
	renderer    Renderer
	forceUpdate bool
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from StarterFS; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys)}
}

// NewDeployerWithForceUpdate creates a Deployer that overwrites existing files.
func NewDeployerWithForceUpdate(fsys fs.FS, forceUpdate bool) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys), forceUpdate: forceUpdate}
}

// @MX:NOTE: [AUTO] Context is checked before each file; the entry page template is saved under data.MainFile.
// Deploy walks the template filesystem and writes every file to targetDir.
func (d *deployer) Deploy(ctx context.Context, targetDir string, data *StarterContext) (*DeployResult, error) {
	if data == nil {
		return nil, errors.New("starter context is required")
	}
	targetDir = filepath.Clean(targetDir)
	result := &DeployResult{}

	walkErr := fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == "." || entry.IsDir() {
			return nil
		}

		destRelPath := d.targetPath(path, data)
		if err := validateDeployPath(targetDir, destRelPath); err != nil {
			return err
		}

		destPath := filepath.Join(targetDir, filepath.FromSlash(destRelPath))
		if !d.forceUpdate {
			if _, statErr := os.Stat(destPath); statErr == nil {
				result.Skipped = append(result.Skipped, destRelPath)
				return nil
			}
		}

		var content []byte
		if strings.HasSuffix(path, ".tmpl") {
			rendered, renderErr := d.renderer.Render(path, data)
			if renderErr != nil {
				return fmt.Errorf("template render %q: %w", path, renderErr)
			}
			content = rendered
		} else {
			raw, readErr := fs.ReadFile(d.fsys, path)
			if readErr != nil {
				return fmt.Errorf("template deploy read %q: %w", path, readErr)
			}
			content = raw
		}

		if err := atomicfile.Save(destPath, content, 0o644); err != nil {
			return fmt.Errorf("template deploy write %q: %w", destPath, err)
		}
		result.Written = append(result.Written, destRelPath)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return result, nil
}

// targetPath maps a template path to its destination. The starter entry
// page follows the requested main file name.
func (d *deployer) targetPath(path string, data *StarterContext) string {
	if path == StarterEntryTemplate && data.MainFile != "" {
		return filepath.ToSlash(data.MainFile)
	}
	if before, ok := strings.CutSuffix(path, ".tmpl"); ok {
		return before
	}
	return path
}

// ListTemplates returns sorted deploy target paths of all files in the FS.
func (d *deployer) ListTemplates() []string {
	var list []string
	_ = fs.WalkDir(d.fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == "." || entry.IsDir() {
			return nil
		}
		list = append(list, strings.TrimSuffix(path, ".tmpl"))
		return nil
	})
	sort.Strings(list)
	return list
}

// validateDeployPath ensures a deploy path does not escape targetDir.
func validateDeployPath(targetDir, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absRoot, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve target dir: %w", err)
	}
	absPath := filepath.Join(absRoot, cleaned)
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes target dir", ErrPathTraversal, relPath)
	}
	return nil
}
