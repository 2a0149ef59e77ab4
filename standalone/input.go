package standalone

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSample is one frame of pointer and keyboard state
type pointerSample struct {
	cursor     image.Point
	clicked    bool
	wheel      bool
	keyPressed bool
	fullscreen bool // F11
}

// readPointer samples ebiten's pointer and keyboard state
func readPointer(keys []ebiten.Key) (pointerSample, []ebiten.Key) {
	keys = inpututil.AppendJustPressedKeys(keys[:0])
	_, wy := ebiten.Wheel()
	s := pointerSample{
		cursor:     image.Pt(ebiten.CursorPosition()),
		clicked:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		wheel:      wy != 0,
		keyPressed: len(keys) > 0,
		fullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
	}
	return s, keys
}

// Activity is the result of one frame of pointer/keyboard polling
type Activity struct {
	// PointerOrKeyboard is set when the user moved, clicked, scrolled or typed
	PointerOrKeyboard bool
	// FullscreenToggle is set when F11 was pressed
	FullscreenToggle bool
}

// InputManager watches pointer and keyboard input so the app can hand
// focus display back from the gamepad. Gamepad input is sampled
// separately by input.Pump.
type InputManager struct {
	lastCursor image.Point
	seen       bool
	keys       []ebiten.Key
	read       func(keys []ebiten.Key) (pointerSample, []ebiten.Key)
}

// NewInputManager creates a new input manager
func NewInputManager() *InputManager {
	return &InputManager{read: readPointer}
}

// Update polls input state. Should be called once per frame.
func (im *InputManager) Update() Activity {
	var s pointerSample
	s, im.keys = im.read(im.keys)
	return im.observe(s)
}

// observe turns a sample into activity. The first sample only records
// the cursor so a window opening under the pointer is not a move.
func (im *InputManager) observe(s pointerSample) Activity {
	moved := im.seen && s.cursor != im.lastCursor
	im.lastCursor = s.cursor
	im.seen = true

	return Activity{
		PointerOrKeyboard: moved || s.clicked || s.wheel || s.keyPressed,
		FullscreenToggle:  s.fullscreen,
	}
}
