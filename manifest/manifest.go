// Package manifest handles fvm.toml project configuration: which actor
// packages to generate glue for, and the explicit method order that pins each
// actor's wire contract.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest represents an fvm.toml project configuration.
type Manifest struct {
	Project Project `toml:"project" json:"project"`
	Actors  []Actor `toml:"actor" json:"actor,omitempty"`

	// Dir is the directory containing the fvm.toml file (set at load time).
	Dir string `toml:"-" json:"-"`
}

// Project contains project metadata.
type Project struct {
	Name string `toml:"name" json:"name"`
}

// Actor configures glue generation for one actor package.
type Actor struct {
	// Package is the import path of the actor package.
	Package string `toml:"package" json:"package"`

	// Type and State name the actor struct and its state record.
	Type  string `toml:"type" json:"type"`
	State string `toml:"state" json:"state"`

	// Methods is the explicit ordered method sequence. Declaration order in
	// source must match it exactly; position in this list is the wire method
	// number, so editing it is a wire-contract change.
	Methods []string `toml:"methods" json:"methods,omitempty"`

	// Dispatch selects the dispatch scheme. Only "method_num" is supported;
	// empty means "method_num".
	Dispatch string `toml:"dispatch" json:"dispatch,omitempty"`

	// Invoke controls emission of the host-facing Invoke wrapper.
	// Unset means true.
	Invoke *bool `toml:"invoke" json:"invoke,omitempty"`

	// Output is the generated file name, relative to the actor package
	// directory. Empty means "<type>_gen.go" with the type lowercased.
	Output string `toml:"output" json:"output,omitempty"`
}

// EmitInvoke reports whether the Invoke wrapper should be emitted.
func (a *Actor) EmitInvoke() bool {
	return a.Invoke == nil || *a.Invoke
}

// OutputFile returns the configured output file name, or the default derived
// from the actor type.
func (a *Actor) OutputFile() string {
	if a.Output != "" {
		return a.Output
	}
	return strings.ToLower(a.Type) + "_gen.go"
}

// Load parses and validates an fvm.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "fvm.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find an fvm.toml file, then loads and
// returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "fvm.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}
