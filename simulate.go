package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/findthekeys/autopilot"
	"github.com/milk9111/findthekeys/levels"
	"github.com/milk9111/findthekeys/physics"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
	"github.com/spf13/cobra"
)

var (
	flagFrames int
	flagReplay string
	flagScript string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a level without a window",
	Long: `Run the session headless for a number of frames, optionally feeding a
replay file of key edges, and log the final state.

Examples:
  findthekeys simulate --frames 300
  findthekeys simulate --replay replays/walk_right.yaml
  findthekeys simulate --script bots/hop_right.tengo --frames 1200`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to advance when no replay sets its own length")
	simulateCmd.Flags().StringVar(&flagReplay, "replay", "", "Replay yaml with key edges per frame")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Tengo autopilot script driving the keys")
	simulateCmd.MarkFlagsMutuallyExclusive("replay", "script")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	opts := simOptions{Level: flagLevel, Frames: flagFrames}
	if flagReplay != "" {
		r, err := session.LoadReplay(flagReplay)
		if err != nil {
			return err
		}
		opts.Replay = r
		if r.Level != "" && !cmd.Flags().Changed("level") {
			opts.Level = r.Level
		}
	}
	if flagScript != "" {
		p, err := autopilot.Load(flagScript)
		if err != nil {
			return err
		}
		opts.Pilot = p
	}

	s, events, err := simulate(opts)
	if err != nil {
		return err
	}

	for _, evt := range events {
		log.Debug("event", "kind", evt.Kind, "pickup", evt.PickupID)
	}
	log.Info("simulation finished",
		"level", opts.Level,
		"frames", s.Frame,
		"score", s.Score,
		"pickups", s.TotalPickups,
		"result", s.Terminal,
		"x", s.Player.Pos.X,
		"y", s.Player.Pos.Y,
	)
	return nil
}

type simOptions struct {
	Level  string
	Frames int
	Replay *session.Replay
	Pilot  *autopilot.Pilot
}

// simulate builds a controller on the chipmunk engine and runs it. Input
// comes from the replay, the pilot, or nowhere.
func simulate(opts simOptions) (session.State, []session.Event, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return session.State{}, nil, err
	}
	controller, _, err := newController()
	if err != nil {
		return session.State{}, nil, err
	}
	s, err := controller.Setup(lvl)
	if err != nil {
		return session.State{}, nil, err
	}

	if opts.Pilot != nil {
		var all []session.Event
		for frame := 0; frame < opts.Frames && s.Playing(); frame++ {
			if s, err = opts.Pilot.Step(controller, s); err != nil {
				return s, all, err
			}
			var events []session.Event
			s, events = controller.Advance(s, 1)
			all = append(all, events...)
		}
		return s, all, nil
	}

	replay := opts.Replay
	if replay == nil {
		replay = &session.Replay{Frames: opts.Frames}
	} else if replay.Frames <= 0 {
		replay.Frames = opts.Frames
	}
	s, events := controller.Play(s, replay, 1)
	return s, events, nil
}

// newController wires the session to the physics engine using the prefab
// tuning.
func newController() (*session.Controller, *physics.Engine, error) {
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, nil, fmt.Errorf("load player spec: %w", err)
	}
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, nil, fmt.Errorf("load world spec: %w", err)
	}
	engine := physics.NewEngine(physics.ConfigFromSpec(worldSpec))
	return session.NewController(engine, session.NewConfig(playerSpec, worldSpec)), engine, nil
}
