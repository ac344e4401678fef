package main

import (
	"encoding/json"
	"fmt"
	"os"

	"blueprint-editor/internal/blueprint/quote"
	"blueprint-editor/internal/blueprint/script"

	"github.com/spf13/cobra"
)

var replayJSON bool

var replayCmd = &cobra.Command{
	Use:   "replay [script.yaml]",
	Short: "Replay an editing script and print the resulting quote",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the quote snapshot as JSON")
}

func runReplay(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}

	results, err := script.Run(s, sc)
	if !replayJSON {
		for _, r := range results {
			fmt.Printf("%3d  %-14s %s\n", r.Step, r.Action, r.Outcome)
		}
	}
	if err != nil {
		return err
	}

	snap := s.Objects().Snapshot()
	if replayJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printQuote(snap)
	return nil
}

func printQuote(snap quote.Snapshot) {
	fmt.Println()
	fmt.Println("Quote")
	fmt.Println("=====")
	for _, item := range snap.Quote {
		fmt.Printf("  %-28s %-6s %10.2f\n", item.Label, item.Details, item.Price)
	}
	fmt.Printf("  %-35s %10.2f\n", "Total", snap.Total)
}
