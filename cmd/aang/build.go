package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rosed"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DannyNemer/aang-sub004/example"
	"github.com/DannyNemer/aang-sub004/grammar"
)

// warningWrapWidth is the column at which a warning's message wraps,
// matching tunaq's fixed console-output width for error reporting.
const warningWrapWidth = 100

var buildFlags = struct {
	output     *string
	reportPath *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Compile the example grammar into an artifact and a report",
		Example: `  aang build -o grammar.json`,
		Args:    cobra.NoArgs,
		RunE:    runBuild,
	}
	buildFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	buildFlags.reportPath = cmd.Flags().String("report", "", "report file path (default <output-dir>/aang-report.json)")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig("aang.toml")
	if err != nil {
		return fmt.Errorf("reading aang.toml: %w", err)
	}
	output := firstNonEmpty(*buildFlags.output, cfg.Output)
	reportPath := firstNonEmpty(*buildFlags.reportPath, cfg.ReportPath)

	tab, entities, intSymbols, err := example.Build()
	if err != nil {
		return err
	}

	artifact, report, err := grammar.Compile(tab, entities, intSymbols)
	if err != nil {
		return err
	}

	if err := writeArtifactAndReport(artifact, report, output, reportPath); err != nil {
		return fmt.Errorf("cannot write output files: %w", err)
	}

	if len(report.Warnings) > 0 {
		pterm.Warning.Printfln("%d warning(s) during compilation (run %s)", len(report.Warnings), report.RunID)
		for _, w := range report.Warnings {
			wrapped := rosed.Edit(w.Error()).Wrap(warningWrapWidth).String()
			pterm.Warning.Println(wrapped)
		}
	} else {
		pterm.Success.Printfln("compiled %d symbols (run %s)", len(artifact.SymbolNames), report.RunID)
	}

	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func writeArtifactAndReport(artifact *grammar.Artifact, report *grammar.Report, outputPath, reportPath string) error {
	if reportPath == "" {
		dir := "."
		if outputPath != "" {
			dir = filepath.Dir(outputPath)
		}
		reportPath = filepath.Join(dir, "aang-report.json")
	}

	if outputPath == "" {
		b, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s\n", b)
	} else {
		b, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, append(b, '\n'), 0644); err != nil {
			return err
		}
	}

	rb, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(reportPath, append(rb, '\n'), 0644)
}
