package main

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/findthekeys/common"
	"github.com/milk9111/findthekeys/ecs"
	"github.com/milk9111/findthekeys/ecs/entity"
	"github.com/milk9111/findthekeys/ecs/system"
	"github.com/milk9111/findthekeys/levels"
	"github.com/milk9111/findthekeys/physics"
	"github.com/milk9111/findthekeys/prefabs"
	"github.com/milk9111/findthekeys/session"
	"golang.org/x/image/colornames"
)

type GameOptions struct {
	Level string
	Debug bool
	Watch bool
}

type Game struct {
	opts GameOptions

	level      *levels.Level
	controller *session.Controller
	engine     *physics.Engine
	state      session.State

	scene       *prefabs.SceneSpec
	sceneAssets *entity.SceneAssets
	background  color.Color

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	hud       *HUD

	paused  bool
	pauseUI *ebitenui.UI
	quit    bool

	watcher *prefabs.Watcher
}

func NewGame(opts GameOptions) (*Game, error) {
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	controller, engine, err := newController()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		level:      lvl,
		controller: controller,
		engine:     engine,
		render:     system.NewRenderSystem(),
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn("prefab watch disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = w
			log.Info("watching prefabs", "dir", prefabs.Dir)
		}
	}

	if err := g.Restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadScene() error {
	scene, err := prefabs.LoadSceneSpec()
	if err != nil {
		return fmt.Errorf("load scene spec: %w", err)
	}
	sceneAssets, err := entity.LoadSceneAssets(scene)
	if err != nil {
		return err
	}
	g.scene = scene
	g.sceneAssets = sceneAssets
	g.background = scene.Background.Or(colornames.Cornflowerblue)
	g.hud = NewHUD(scene)
	return nil
}

// Restart sets the session up again from the level and rebuilds the scene.
func (g *Game) Restart() error {
	s, err := g.controller.Setup(g.level)
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	g.state = s
	g.paused = false
	return g.rebuildScene()
}

func (g *Game) rebuildScene() error {
	cfg := g.controller.Config()
	w := ecs.NewWorld()
	if err := entity.BuildScene(w, g.state, g.sceneAssets, cfg.ViewportW, cfg.ViewportH); err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	g.world = w
	g.scheduler = ecs.NewScheduler(
		system.NewSessionSyncSystem(),
		system.NewPickupHoverSystem(),
		system.NewSoundCueSystem(),
		system.NewAudioSystem(),
	)
	return nil
}

func (g *Game) State() session.State {
	return g.state
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Restart(); err != nil {
			return err
		}
	}

	if g.watcher != nil {
		if changed := g.watcher.Poll(); len(changed) > 0 {
			if err := g.reload(changed); err != nil {
				log.Error("prefab reload failed", "files", changed, "err", err)
			}
		}
	}

	g.state = pollKeys(g.controller, g.state)

	var events []session.Event
	g.state, events = g.controller.Advance(g.state, 1)
	for _, evt := range events {
		log.Debug("event", "kind", evt.Kind, "pickup", evt.PickupID, "frame", g.state.Frame)
	}
	g.scheduler.Update(g.world, ecs.Frame{State: g.state, Events: events})
	return nil
}

// reload applies changed prefab files. Tuning takes effect immediately;
// sizes apply on the next restart.
func (g *Game) reload(files []string) error {
	var errs []error
	for _, name := range files {
		switch name {
		case prefabs.PlayerSpecFile, prefabs.WorldSpecFile:
			playerSpec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			worldSpec, err := prefabs.LoadWorldSpec()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			g.controller.SetConfig(session.NewConfig(playerSpec, worldSpec))
			g.engine.SetConfig(physics.ConfigFromSpec(worldSpec))
			log.Info("tuning reloaded", "file", name)
		case prefabs.SceneSpecFile:
			if err := g.loadScene(); err != nil {
				errs = append(errs, err)
				continue
			}
			if err := g.rebuildScene(); err != nil {
				errs = append(errs, err)
				continue
			}
			log.Info("scene reloaded", "file", name)
		}
	}
	return errors.Join(errs...)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)

	if g.opts.Debug {
		g.engine.DebugDraw(screen, g.state.Camera.X, g.state.Camera.Y)
	}

	g.hud.Draw(screen, g.state)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
