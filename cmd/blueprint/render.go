package main

import (
	"fmt"
	"os"

	"blueprint-editor/internal/blueprint/planview"
	"blueprint-editor/internal/blueprint/script"

	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderFloor  int
)

var renderCmd = &cobra.Command{
	Use:   "render [script.yaml]",
	Short: "Replay a script and render one floor as SVG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "plan.svg", "output file, - for stdout")
	renderCmd.Flags().IntVar(&renderFloor, "floor", -1, "floor to render, the current floor by default")
}

func runRender(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	if _, err := script.Run(s, sc); err != nil {
		return err
	}

	scene := planview.Scene{
		Entities: s.Objects().Entities(),
		Floor:    s.Floors().Current(),
	}
	if renderFloor >= 0 {
		scene.Floor = renderFloor
	}
	if scene.Floor == s.Floors().Current() {
		scene.Draft = s.Draft().CommittedSegments
	}

	svg, err := planview.NewRenderer().Render(scene)
	if err != nil {
		return err
	}
	if renderOutput == "-" {
		_, err = fmt.Fprintln(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	fmt.Printf("Floor %d written to %s (floors with content: %v)\n", scene.Floor, renderOutput, planview.Floors(scene.Entities))
	return nil
}
