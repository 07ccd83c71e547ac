package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DannyNemer/aang-sub004/parseforest"
	"github.com/DannyNemer/aang-sub004/text"
)

func init() {
	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Run the parse-forest flattener over a hand-built demo forest",
		Long: `flatten builds a small forest by hand, representing a binary
term-sequence node over two leaves, and runs it through the flattener,
printing the resulting display text. It exists to demonstrate the
flattener in isolation from a real parser, which this module does not
include.`,
		Args: cobra.NoArgs,
		RunE: runFlatten,
	}
	rootCmd.AddCommand(cmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	iVal := text.NewInvariable("I")
	likeVal, err := text.NewForms(map[text.FormTag]string{
		text.OneSg: "like", text.ThreeSg: "likes", text.Pl: "like",
	})
	if err != nil {
		return err
	}

	leftLeaf := leaf(iVal)
	rightLeaf := leaf(likeVal)

	root := &parseforest.Node{
		SymbolName: "[clause]",
		Subs: []*parseforest.Subnode{
			{
				RuleProps: &parseforest.RuleProps{
					IsTermSequence: true,
					GramProps: map[int]text.GramProps{
						1: {Form: text.OneSg},
					},
				},
				Node:    leftLeaf,
				Next:    rightLeaf,
				Span:    2,
				MinCost: 0,
			},
		},
	}

	if err := parseforest.Flatten(root); err != nil {
		return fmt.Errorf("flattening demo forest: %w", err)
	}

	out, err := json.MarshalIndent(root.Subs[0].RuleProps, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s\n", out)
	pterm.Success.Println("flattened demo forest")
	return nil
}

func leaf(v text.Value) *parseforest.Node {
	return &parseforest.Node{
		Subs: []*parseforest.Subnode{
			{RuleProps: &parseforest.RuleProps{Text: &v}, Span: 1},
		},
	}
}
