package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DannyNemer/aang-sub004/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <artifact.json>",
		Short:   "Print a human-readable summary of a compiled artifact",
		Example: `  aang describe grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var artifact grammar.Artifact
	if err := json.Unmarshal(b, &artifact); err != nil {
		return fmt.Errorf("parsing artifact: %w", err)
	}

	pterm.DefaultSection.Println("Grammar summary")
	pterm.Info.Printfln("start symbol: %s", artifact.Start)
	pterm.Info.Printfln("symbols: %d", len(artifact.SymbolNames))
	pterm.Info.Printfln("entities: %d", len(artifact.Entities))
	pterm.Info.Printfln("integer symbols: %d", len(artifact.IntSymbols))

	totalRules := 0
	counts := make([]ruleCount, 0, len(artifact.SymbolNames))
	for _, name := range artifact.SymbolNames {
		n := len(artifact.Rules[name])
		totalRules += n
		counts = append(counts, ruleCount{Name: string(name), Rules: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Rules > counts[j].Rules })
	pterm.Info.Printfln("rules: %d", totalRules)

	rows := pterm.TableData{{"symbol", "rules"}}
	limit := len(counts)
	if limit > 20 {
		limit = 20
	}
	for _, c := range counts[:limit] {
		rows = append(rows, []string{c.Name, fmt.Sprintf("%d", c.Rules)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

type ruleCount struct {
	Name  string
	Rules int
}
