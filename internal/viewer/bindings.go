package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/frameview/internal/engine/camera"
	"github.com/Faultbox/frameview/internal/engine/input"
	"github.com/Faultbox/frameview/internal/scene"
)

// wheelScale converts SDL wheel notches into pixel-like deltas.
const wheelScale = 100

var keyCommands = map[sdl.Scancode]scene.Command{
	sdl.SCANCODE_R:      scene.CommandReset,
	sdl.SCANCODE_E:      scene.CommandToggleEdges,
	sdl.SCANCODE_N:      scene.CommandToggleNodes,
	sdl.SCANCODE_A:      scene.CommandToggleAxes,
	sdl.SCANCODE_P:      scene.CommandScreenshot,
	sdl.SCANCODE_ESCAPE: scene.CommandQuit,
}

func commandForKey(key sdl.Scancode) scene.Command {
	if cmd, ok := keyCommands[key]; ok {
		return cmd
	}
	return scene.CommandNone
}

func cameraButton(b uint8) camera.Button {
	switch b {
	case sdl.BUTTON_RIGHT:
		return camera.ButtonSecondary
	case sdl.BUTTON_MIDDLE:
		return camera.ButtonMiddle
	}
	return camera.ButtonPrimary
}

// cameraEvent maps pointer input to a controller event.
func cameraEvent(e input.Event) (camera.Event, bool) {
	switch e.Type {
	case input.EventMouseDown:
		return camera.Event{
			Kind:   camera.EventPointerDown,
			Button: cameraButton(e.Button),
			X:      float32(e.MouseX),
			Y:      float32(e.MouseY),
		}, true
	case input.EventMouseMove:
		return camera.Event{
			Kind: camera.EventPointerMove,
			X:    float32(e.MouseX),
			Y:    float32(e.MouseY),
		}, true
	case input.EventMouseUp:
		return camera.Event{Kind: camera.EventPointerUp}, true
	case input.EventMouseWheel:
		// SDL reports scrolling away from the user as positive; the
		// controller zooms out on positive deltas.
		return camera.Event{Kind: camera.EventWheel, DeltaY: -e.WheelY * wheelScale}, true
	}
	return camera.Event{}, false
}
