package manifest

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// Validate checks the manifest against the embedded CUE schema, then applies
// the structural rules the schema cannot express: every actor needs a
// non-empty, duplicate-free method sequence whose first entry is the
// constructor slot.
func (m *Manifest) Validate() error {
	if err := m.validateSchema(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i := range m.Actors {
		a := &m.Actors[i]

		key := a.Package + "." + a.Type
		if seen[key] {
			return fmt.Errorf("actor %s configured twice", key)
		}
		seen[key] = true

		if len(a.Methods) == 0 {
			return fmt.Errorf("actor %s: methods must list the full wire order, starting with the constructor", key)
		}
		names := make(map[string]bool)
		for _, name := range a.Methods {
			if names[name] {
				return fmt.Errorf("actor %s: method %s listed twice", key, name)
			}
			names[name] = true
		}

		if a.Dispatch != "" && a.Dispatch != "method_num" {
			return fmt.Errorf("actor %s: unsupported dispatch scheme %q", key, a.Dispatch)
		}
	}
	return nil
}

func (m *Manifest) validateSchema() error {
	cctx := cuecontext.New()

	schema := cctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("manifest schema has no #Manifest: %w", err)
	}

	val := cctx.Encode(m)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %w", err)
	}
	return nil
}
