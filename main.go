// findthekeys is a small platformer: walk, jump and collect every key
// without falling off the world.
//
// Usage:
//
//	findthekeys                 - Play the default level
//	findthekeys simulate        - Run a level headless and log the result
//
// Flags:
//
//	--level <name>   - Level name in levels/ (default: default)
//	--debug          - Debug logging and physics overlay
//	--watch          - Reload prefab yaml when it changes on disk
//	--config <dir>   - Directory searched for prefab yaml before the embedded copies
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/levels"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/spf13/cobra"
)

var (
	flagLevel  string
	flagDebug  bool
	flagWatch  bool
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "findthekeys",
	Short: "Find the keys - a tiny platformer",
	Long: `Find the keys is a single screen platformer. Collect every key and
do not fall off the world.

Controls:
  Left/A, Right/D  - Move
  Up/W/Space       - Jump
  R                - Restart
  Esc              - Pause`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagDebug)
		if flagConfig != "" {
			prefabs.Dir = flagConfig
		}
	},
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", levels.DefaultName, "Level name in levels/")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and the physics overlay")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Directory searched for prefab yaml before the embedded copies")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefab yaml when it changes on disk")

	rootCmd.AddCommand(simulateCmd)
}

func setupLogging(debug bool) {
	log.SetReportTimestamp(true)
	log.SetPrefix("findthekeys")
	if debug {
		log.SetLevel(log.DebugLevel)
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	game, err := NewGame(GameOptions{
		Level: flagLevel,
		Debug: flagDebug,
		Watch: flagWatch,
	})
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(common.Title)
	ebiten.SetTPS(common.TPS)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	log.Info("bye", "score", game.State().Score, "result", game.State().Terminal)
	return nil
}
