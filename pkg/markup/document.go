// Package markup decodes declarative descriptor documents and builds them
// into core descriptors.
//
// A document is a sequence of named steps, each holding the tree to render
// into the same container. Rendering the steps in order exercises mount,
// patch and unmount:
//
//	steps:
//	  - name: initial
//	    tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: a, text: "1"}
//	        - {tag: li, key: b, text: "2"}
//	  - name: reordered
//	    tree:
//	      tag: ul
//	      children:
//	        - {tag: li, key: b, text: "2"}
//	        - {tag: li, key: a, text: "1"}
//	  - name: cleared
//	    tree: null
//
// Documents may be written in YAML or TOML; a step without a tree unmounts.
package markup

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/vdom/pkg/errors"
)

// Format selects the document encoding.
type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("unsupported document extension %q", filepath.Ext(path))
	}
}

// Document is a decoded descriptor document.
type Document struct {
	Steps []Step `yaml:"steps" toml:"steps"`
}

// Step is one render call.
type Step struct {
	Name string `yaml:"name" toml:"name"`
	// Tree is nil for a step that unmounts.
	Tree *NodeSpec `yaml:"tree" toml:"tree"`
}

// NodeSpec is the document form of a descriptor.
type NodeSpec struct {
	// Tag is an element name, "#fragment" or "#portal".
	Tag string `yaml:"tag,omitempty" toml:"tag,omitempty"`
	// Component names a definition in the Registry.
	Component string `yaml:"component,omitempty" toml:"component,omitempty"`
	// Text is a text leaf when Tag and Component are empty, otherwise the
	// single text child.
	Text *string `yaml:"text,omitempty" toml:"text,omitempty"`
	// Key may be any scalar.
	Key      any            `yaml:"key,omitempty" toml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty" toml:"props,omitempty"`
	Target   string         `yaml:"target,omitempty" toml:"target,omitempty"`
	Children []*NodeSpec    `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Decode reads a document in the given format. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Document, error) {
	const op = "markup.Decode"
	var doc Document
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.Decode(op, "", "empty document")
			}
			return nil, errors.Decode(op, "", err.Error())
		}
	case TOML:
		meta, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Decode(op, "", err.Error())
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Decode(op, undecoded[0].String(), "unknown field")
		}
	default:
		return nil, errors.Decode(op, "", fmt.Sprintf("unsupported format %d", format))
	}
	if len(doc.Steps) == 0 {
		return nil, errors.Decode(op, "steps", "document has no steps")
	}
	return &doc, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// DecodeFile reads the document at path, choosing the format by extension.
func DecodeFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// StepName returns the step's name, or its index when unnamed.
func (d *Document) StepName(i int) string {
	if name := d.Steps[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("step %d", i+1)
}
