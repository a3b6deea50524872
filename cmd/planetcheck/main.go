// Command planetcheck validates planet presets and TOML planet definitions and prints
// their derived properties. It exits with status 1 when any planet is invalid.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/planet"
	"planet-designer/internal/preset"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/logger"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

type check struct {
	name        string
	physical    physical.Params
	composition composition.Params
	problems    []string
}

type result struct {
	Name   string         `json:"name"`
	Valid  bool           `json:"valid"`
	Report *planet.Report `json:"report,omitempty"`
	Errors []string       `json:"errors,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("planetcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	presetName := fs.String("preset", "", "physical preset to check (earth, mars, jupiter, moon)")
	compositionName := fs.String("composition", "", "composition preset to pair with -preset (defaults to the same name)")
	file := fs.String("file", "", "TOML file of [[planet]] definitions to check")
	asJSON := fs.Bool("json", false, "print results as JSON")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.New(config.LoggingConfig{Level: level}, stderr).With("component", "planetcheck")

	catalog := preset.Builtin()

	var checks []check
	switch {
	case *file != "":
		defs, err := preset.LoadFile(*file)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		log.Debug("Loaded definitions", "path", *file, "count", len(defs))
		checks = fromDefinitions(catalog, defs)
	case *presetName != "":
		c, err := fromPresets(catalog, *presetName, *compositionName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		checks = []check{c}
	default:
		fmt.Fprintln(stderr, "one of -preset or -file is required")
		fs.Usage()
		return exitUsage
	}

	results := make([]result, 0, len(checks))
	exit := exitValid
	for _, c := range checks {
		r := evaluate(c)
		if !r.Valid {
			exit = exitInvalid
		}
		results = append(results, r)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		return exit
	}

	out := termenv.NewOutput(stdout)
	for _, r := range results {
		printResult(out, r)
	}
	return exit
}

func fromPresets(catalog *preset.Catalog, physicalName, compositionName string) (check, error) {
	if compositionName == "" {
		compositionName = physicalName
	}

	phys, ok := catalog.Physical(physicalName)
	if !ok {
		return check{}, fmt.Errorf("unknown physical preset %q", physicalName)
	}
	comp, ok := catalog.Composition(compositionName)
	if !ok {
		return check{}, fmt.Errorf("unknown composition preset %q", compositionName)
	}

	name := physicalName
	if compositionName != physicalName {
		name = fmt.Sprintf("%s / %s", physicalName, compositionName)
	}
	return check{name: name, physical: phys, composition: comp}, nil
}

// fromDefinitions fills a part missing from a definition with the built-in preset of the same name
func fromDefinitions(catalog *preset.Catalog, defs []preset.Definition) []check {
	checks := make([]check, 0, len(defs))
	for _, def := range defs {
		c := check{name: def.Name}

		if def.Physical != nil {
			c.physical = *def.Physical
		} else if phys, ok := catalog.Physical(def.Name); ok {
			c.physical = phys
		} else {
			c.problems = append(c.problems, fmt.Sprintf("no physical parameters and no preset named %s", def.Name))
		}

		if def.HasComposition() {
			c.composition = def.CompositionParams()
		} else if comp, ok := catalog.Composition(def.Name); ok {
			c.composition = comp
		} else {
			c.problems = append(c.problems, fmt.Sprintf("no composition and no preset named %s", def.Name))
		}

		checks = append(checks, c)
	}
	return checks
}

func evaluate(c check) result {
	if len(c.problems) > 0 {
		return result{Name: c.name, Errors: c.problems}
	}

	report, err := planet.Evaluate(planet.EvaluateRequest{Physical: c.physical, Composition: c.composition})
	if err != nil {
		violations := errors.Violations(err)
		if violations == nil {
			violations = []string{err.Error()}
		}
		return result{Name: c.name, Errors: violations}
	}
	return result{Name: c.name, Valid: true, Report: report}
}

func printResult(out *termenv.Output, r result) {
	if !r.Valid {
		fmt.Fprintln(out, out.String("✗ "+r.Name).Foreground(termenv.ANSIRed).Bold())
		for _, e := range r.Errors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		fmt.Fprintln(out)
		return
	}

	props := r.Report.Composition.Properties
	fmt.Fprintln(out, out.String("✓ "+r.Name).Foreground(termenv.ANSIGreen).Bold())
	fmt.Fprint(out, r.Report.Physical.State.String())
	fmt.Fprint(out, r.Report.Composition.State.String())
	fmt.Fprintf(out, "  Sky:    %s\n", swatch(out, props.AtmosphereColor.Hex()))
	fmt.Fprintf(out, "  Ocean:  %s\n", swatch(out, props.OceanColor.Hex()))
	fmt.Fprintln(out)
}

func swatch(out *termenv.Output, hex string) string {
	return out.String("███").Foreground(out.Color(hex)).String() + " " + hex
}

