// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/match"
)

// Scene shows a running simulation in an engo window
type Scene struct {
	world    *engine.World
	match    *match.Match
	tickRate int
	maxTicks uint64

	renderer *EngoRenderer
	sim      *SimulationSystem
	input    *InputSystem
}

// NewScene creates a scene for world. m may be nil for runs without a match.
func NewScene(world *engine.World, m *match.Match) *Scene {
	rt := world.Config().Runtime
	return &Scene{
		world:    world,
		match:    m,
		tickRate: rt.TickRate,
		maxTicks: uint64(rt.MaxTicks),
	}
}

// Type returns the scene type (required by Engo)
func (scene *Scene) Type() string {
	return "RingBounceScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *Scene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *Scene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.renderer = NewEngoRenderer(renderSystem, scene.world.Thickness())
	scene.sim = NewSimulationSystem(scene.world, scene.match, scene.renderer, scene.tickRate, scene.maxTicks, engo.Exit)
	world.AddSystem(scene.sim)

	SetupInputBindings()
	scene.input = NewInputSystem(scene.sim, engo.Exit)
	world.AddSystem(scene.input)

	scene.world.Snapshot().Render(scene.renderer)
}

// Exit is called when the window closes
func (scene *Scene) Exit() {
	if scene.match != nil {
		scene.match.Close()
	}
}

// Options configure the window
type Options struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and runs the scene until the window closes, the run
// ends or ctx is cancelled. Engo requires the main goroutine.
func Run(ctx context.Context, scene *Scene, opts Options) {
	cfg := scene.world.Config()
	if opts.Width <= 0 {
		opts.Width = int(cfg.World.Width)
	}
	if opts.Height <= 0 {
		opts.Height = int(cfg.World.Height)
	}
	if opts.Title == "" {
		opts.Title = "ringbounce - " + string(cfg.Variant)
	}

	stop := context.AfterFunc(ctx, engo.Exit)
	defer stop()

	engo.Run(engo.RunOptions{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
	}, scene)
}
