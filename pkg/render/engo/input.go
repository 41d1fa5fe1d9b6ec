// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

const (
	buttonQuit  = "quit"
	buttonPause = "pause"
)

// buttons reports key presses by binding name
type buttons interface {
	JustPressed(name string) bool
}

// engoButtons reads engo's global input manager
type engoButtons struct{}

func (engoButtons) JustPressed(name string) bool {
	return engo.Input.Button(name).JustPressed()
}

// InputSystem handles the window's keyboard controls: Escape or Q quits,
// Space pauses the simulation.
type InputSystem struct {
	buttons buttons
	sim     *SimulationSystem
	onQuit  func()
}

// NewInputSystem creates an input system controlling sim
func NewInputSystem(sim *SimulationSystem, onQuit func()) *InputSystem {
	return &InputSystem{
		buttons: engoButtons{},
		sim:     sim,
		onQuit:  onQuit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input
func (is *InputSystem) Update(dt float32) {
	if is.buttons.JustPressed(buttonQuit) {
		if is.onQuit != nil {
			is.onQuit()
		}
		return
	}
	if is.buttons.JustPressed(buttonPause) && is.sim != nil {
		is.sim.TogglePause()
	}
}

// SetupInputBindings registers the key bindings used by InputSystem
func SetupInputBindings() {
	engo.Input.RegisterButton(buttonQuit, engo.KeyEscape, engo.KeyQ)
	engo.Input.RegisterButton(buttonPause, engo.KeySpace)
}
