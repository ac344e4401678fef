package main

import (
	"fmt"
	"os"

	"blueprint-editor/internal/blueprint/editor"
	"blueprint-editor/internal/common/logging"

	"github.com/spf13/cobra"
)

var (
	tuningPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "blueprint",
	Short: "Replay, import and render blueprint editing sessions",
	Long: `blueprint drives the floor-plan editor core from the command line.
Sessions are described as YAML scripts of clicks, tool changes and camera moves;
SVG plans can be imported and any floor can be rendered back to SVG.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tuningPath, "tuning", os.Getenv("EDITOR_TUNING"), "editor tuning YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log editor events to stderr")
}

// newSession builds a session from the tuning flag.
func newSession() (*editor.Session, error) {
	tuning, err := editor.LoadTuning(tuningPath)
	if err != nil {
		return nil, err
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, "development")
	if err != nil {
		return nil, err
	}
	return editor.NewSession(tuning, editor.WithLogger(logging.Component(log, "cli"))), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
