// Command conform is the external conformance driver described by spec.md
// §6: it scans a directory of SingleStepTests-style JSON fixture files,
// runs every case through cpu.Step, and reports pass/fail totals per file
// and overall.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/go6502/core/fixture"
)

func main() {
	app := &cli.App{
		Name:    "conform",
		Usage:   "run SingleStepTests JSON fixtures against the cpu package",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Aliases:  []string{"d"},
				Usage:    "directory containing *.json fixture files",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "max concurrent fixture files in flight",
				Value:   runtime.NumCPU(),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print every failing case's diff",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "skip the TUI and print a flat summary (for CI logs)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	dir := c.String("dir")
	workers := c.Int("workers")
	verbose := c.Bool("verbose")

	summary, err := fixture.RunDir(context.Background(), dir, workers)
	if err != nil {
		return fmt.Errorf("conform: %w", err)
	}

	if c.Bool("plain") || !isTerminal() {
		printPlain(summary, verbose)
		return nil
	}

	m := newModel(summary, verbose)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("conform: tui: %w", err)
	}
	if summary.Passed != summary.Total {
		os.Exit(1)
	}
	return nil
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func printPlain(s *fixture.Summary, verbose bool) {
	for _, fs := range s.Files {
		fmt.Printf("%s: %d/%d\n", fs.Path, fs.Passed, fs.Total)
		if verbose {
			for _, r := range fs.Failing {
				fmt.Println(" ", fixture.Explain(r))
			}
		}
	}
	fmt.Printf("TOTAL: %d/%d\n", s.Passed, s.Total)
}
