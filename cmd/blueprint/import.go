package main

import (
	"fmt"
	"os"

	"blueprint-editor/internal/blueprint/parser"

	"github.com/spf13/cobra"
)

var importUnits float64

var importCmd = &cobra.Command{
	Use:   "import [plan.svg]",
	Short: "Import an SVG plan and price its walls and rooms",
	Long: `Walls are read from elements whose id starts with Wall_, rooms from Room_*
and *_room elements. Every wall becomes a centerline segment split at junctions.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Float64Var(&importUnits, "units", parser.DefaultUnitsPerMeter, "plan units per metre")
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()

	im := parser.NewImporter()
	im.UnitsPerMeter = importUnits
	plan, err := im.Import(f)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	s.ImportPlan(plan.Walls, plan.Rooms)

	fmt.Printf("Walls: %d\n", len(plan.Walls))
	for _, w := range plan.Walls {
		fmt.Printf("  %s -> %s  %.2f m\n", w.Start, w.End, w.Length)
	}
	fmt.Printf("Rooms: %d\n", len(plan.Rooms))
	for _, r := range plan.Rooms {
		fmt.Printf("  %.2f x %.2f m at %s\n", r.Width(), r.Depth(), r.Center())
	}
	printQuote(s.Objects().Snapshot())
	return nil
}
