package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/milk9111/findthekeys/levels"
	"github.com/milk9111/findthekeys/session"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

var flagCopy bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels and check them for problems",
	Long: `List every level (embedded and under ./levels), with wall and key
counts and any issues found after setup: a player starting inside a wall,
keys buried in walls or below the death line, or no keys at all.

Examples:
  findthekeys levels
  findthekeys levels --copy`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the report to the clipboard")
	rootCmd.AddCommand(levelsCmd)
}

func runLevels(cmd *cobra.Command, args []string) error {
	names, err := levels.Names()
	if err != nil {
		return fmt.Errorf("list levels: %w", err)
	}

	report, bad := levelReport(names)
	fmt.Fprint(cmd.OutOrStdout(), report)

	if flagCopy {
		if err := clipboard.Init(); err != nil {
			log.Warn("clipboard unavailable", "err", err)
		} else {
			clipboard.Write(clipboard.FmtText, []byte(report))
			log.Info("report copied to clipboard")
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d level(s) have issues", bad)
	}
	return nil
}

// levelReport sets each level up without physics and lints it. It returns
// the text report and the number of levels that failed to load or lint.
func levelReport(names []string) (string, int) {
	cfg := session.DefaultConfig()
	controller := session.NewController(nil, cfg)

	var b strings.Builder
	bad := 0
	for _, name := range names {
		lvl, err := levels.Load(name)
		if err != nil {
			fmt.Fprintf(&b, "%s: error: %v\n", name, err)
			bad++
			continue
		}
		s, err := controller.Setup(lvl)
		if err != nil {
			fmt.Fprintf(&b, "%s: error: %v\n", name, err)
			bad++
			continue
		}

		issues := session.Lint(s, cfg)
		fmt.Fprintf(&b, "%s: %d walls, %d keys, start (%.0f,%.0f)\n", name, len(s.Walls), s.TotalPickups, s.Player.Pos.X, s.Player.Pos.Y)
		for _, is := range issues {
			fmt.Fprintf(&b, "  - %s\n", is)
		}
		if len(issues) > 0 {
			bad++
		}
	}
	return b.String(), bad
}
