package game

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/beyond-sight/internal/engine/input"
	"github.com/Faultbox/beyond-sight/internal/game/entity"
)

// bindings maps each game key to the scancodes that press it.
var bindings = []struct {
	key   entity.Keys
	codes []sdl.Scancode
}{
	{entity.KeyUp, []sdl.Scancode{sdl.SCANCODE_UP, sdl.SCANCODE_W}},
	{entity.KeyDown, []sdl.Scancode{sdl.SCANCODE_DOWN, sdl.SCANCODE_S}},
	{entity.KeyLeft, []sdl.Scancode{sdl.SCANCODE_LEFT, sdl.SCANCODE_A}},
	{entity.KeyRight, []sdl.Scancode{sdl.SCANCODE_RIGHT, sdl.SCANCODE_D}},
	{entity.KeyRun, []sdl.Scancode{sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT}},
	{entity.KeyInteract, []sdl.Scancode{sdl.SCANCODE_E, sdl.SCANCODE_SPACE, sdl.SCANCODE_RETURN}},
}

func heldKeys(in *input.Input) entity.Keys {
	var k entity.Keys
	for _, b := range bindings {
		if in.Held(b.codes...) {
			k |= b.key
		}
	}
	return k
}
