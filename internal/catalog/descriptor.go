package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxDescriptorSize bounds descriptor reads.
const maxDescriptorSize = 256 * 1024

// Descriptor is the optional per-project override file.
type Descriptor struct {
	Title    string `json:"title" yaml:"title"`
	Note     string `json:"note" yaml:"note"`
	MainFile string `json:"mainFile" yaml:"mainFile"`
}

// DescriptorStatus tells which of the three descriptor outcomes applied.
type DescriptorStatus int

const (
	// DescriptorAbsent means none of the descriptor files exist.
	DescriptorAbsent DescriptorStatus = iota
	// DescriptorParsed means a descriptor was read and decoded.
	DescriptorParsed
	// DescriptorMalformed means a descriptor exists but could not be used.
	DescriptorMalformed
)

// String returns a lowercase label for logs.
func (s DescriptorStatus) String() string {
	switch s {
	case DescriptorAbsent:
		return "absent"
	case DescriptorParsed:
		return "parsed"
	case DescriptorMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DescriptorResult is the outcome of looking up a project's descriptor.
// Descriptor is only meaningful when Status is DescriptorParsed; Err is set
// only when Status is DescriptorMalformed.
type DescriptorResult struct {
	Status     DescriptorStatus
	Descriptor Descriptor
	Path       string
	Err        error
}

// LoadDescriptor looks for the first existing file of names inside dir and
// decodes it. Read and decode failures both yield DescriptorMalformed.
func LoadDescriptor(dir string, names []string) DescriptorResult {
	for _, name := range names {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return malformed(p, err)
		}
		if info.IsDir() {
			continue
		}
		if info.Size() > maxDescriptorSize {
			return malformed(p, fmt.Errorf("file exceeds %d bytes", maxDescriptorSize))
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return malformed(p, err)
		}
		d, err := ParseDescriptor(name, data)
		if err != nil {
			return DescriptorResult{Status: DescriptorMalformed, Path: p, Err: err}
		}
		return DescriptorResult{Status: DescriptorParsed, Descriptor: d, Path: p}
	}
	return DescriptorResult{Status: DescriptorAbsent}
}

func malformed(path string, err error) DescriptorResult {
	return DescriptorResult{
		Status: DescriptorMalformed,
		Path:   path,
		Err:    fmt.Errorf("%w: %s: %v", ErrMalformedDescriptor, path, err),
	}
}

// ParseDescriptor decodes descriptor bytes. The format is chosen from the
// file extension: .yaml and .yml are YAML, anything else is JSON. The
// document must be a single object.
func ParseDescriptor(name string, data []byte) (Descriptor, error) {
	var d Descriptor
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return Descriptor{}, fmt.Errorf("%w: %s: %v", ErrMalformedDescriptor, name, err)
		}
		if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
			return Descriptor{}, fmt.Errorf("%w: %s: expected a mapping", ErrMalformedDescriptor, name)
		}
		if err := node.Decode(&d); err != nil {
			return Descriptor{}, fmt.Errorf("%w: %s: %v", ErrMalformedDescriptor, name, err)
		}
	default:
		trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return Descriptor{}, fmt.Errorf("%w: %s: expected a JSON object", ErrMalformedDescriptor, name)
		}
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return Descriptor{}, fmt.Errorf("%w: %s: %v", ErrMalformedDescriptor, name, err)
		}
	}

	d.Title = strings.TrimSpace(d.Title)
	d.Note = strings.TrimSpace(d.Note)
	d.MainFile = strings.TrimSpace(d.MainFile)
	return d, nil
}
