// fvmgen generates persistence and dispatch glue for hosted actors.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dreadful-dev/fvm-macro/gen"
	"github.com/dreadful-dev/fvm-macro/manifest"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("fvmgen")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	dir := flag.String("C", ".", "Directory to search for fvm.toml")
	output := flag.String("o", "", "Output file name override (single target only)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fvmgen [options] [pkg:ActorType:StateType...]\n\n")
		fmt.Fprintf(os.Stderr, "Generates actor persistence and dispatch glue.\n")
		fmt.Fprintf(os.Stderr, "With no targets, reads fvm.toml (searched upward from -C).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fvmgen                                   # all actors from fvm.toml\n")
		fmt.Fprintf(os.Stderr, "  fvmgen ./counter:CounterActor:CounterState\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	targets := flag.Args()
	if len(targets) > 0 {
		if err := runAdHoc(targets, *output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runManifest(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runManifest generates glue for every actor configured in fvm.toml. The
// manifest's explicit method sequence guards the wire order.
func runManifest(dir string) error {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no fvm.toml found from %s upward and no targets given", dir)
	}
	if len(m.Actors) == 0 {
		return fmt.Errorf("no [[actor]] entries configured in %s", filepath.Join(m.Dir, "fvm.toml"))
	}

	for i := range m.Actors {
		a := &m.Actors[i]
		model, err := gen.Introspect(a.Package, a.Type, a.State, a.Methods)
		if err != nil {
			return fmt.Errorf("actor %s: %w", a.Type, err)
		}
		model.EmitInvoke = a.EmitInvoke()

		if err := writeGlue(model, a.OutputFile()); err != nil {
			return fmt.Errorf("actor %s: %w", a.Type, err)
		}
	}
	log.Infof("generated glue for %d actor(s)", len(m.Actors))
	return nil
}

// runAdHoc generates glue for pkg:ActorType:StateType targets named on the
// command line. Without a manifest there is no expected sequence, so method
// numbers derive from declaration order alone.
func runAdHoc(targets []string, output string) error {
	if output != "" && len(targets) > 1 {
		return fmt.Errorf("-o only applies to a single target")
	}

	for _, target := range targets {
		parts := strings.Split(target, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return fmt.Errorf("malformed target %q, want pkg:ActorType:StateType", target)
		}

		model, err := gen.Introspect(parts[0], parts[1], parts[2], nil)
		if err != nil {
			return fmt.Errorf("target %s: %w", target, err)
		}

		out := output
		if out == "" {
			out = strings.ToLower(model.ActorType) + "_gen.go"
		}
		if err := writeGlue(model, out); err != nil {
			return fmt.Errorf("target %s: %w", target, err)
		}
	}
	return nil
}

func writeGlue(model *gen.ActorModel, outputFile string) error {
	code, err := gen.Generate(model)
	if err != nil {
		return err
	}
	if model.Dir == "" {
		return fmt.Errorf("cannot locate source directory for %s", model.PackagePath)
	}

	path := filepath.Join(model.Dir, outputFile)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Infof("wrote %s (%d methods)", path, len(model.Methods))
	return nil
}
