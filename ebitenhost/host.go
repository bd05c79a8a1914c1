// Package ebitenhost drives a keepsake Scope from an Ebitengine game loop:
// mouse, touch, keyboard and wheel input are polled every tick and fed to
// the scope, and Run wraps the scope in a minimal ebiten.Game.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/keepsake"
)

const (
	maxTouches = 10 // slot 0 is the mouse
	// wheelPixels converts one wheel notch into document pixels.
	wheelPixels = 40
)

var keyMap = map[ebiten.Key]keepsake.Key{
	ebiten.KeyEscape:     keepsake.KeyEscape,
	ebiten.KeyArrowLeft:  keepsake.KeyArrowLeft,
	ebiten.KeyArrowRight: keepsake.KeyArrowRight,
	ebiten.KeyArrowUp:    keepsake.KeyArrowUp,
	ebiten.KeyArrowDown:  keepsake.KeyArrowDown,
	ebiten.KeyEnter:      keepsake.KeyEnter,
	ebiten.KeySpace:      keepsake.KeySpace,
}

// Host polls Ebitengine input into a Scope. Pointer coordinates are passed
// through a ToScene mapping so callers can account for scrolling.
type Host struct {
	scope *keepsake.Scope

	// ToScene maps screen coordinates to scene coordinates. Nil is identity.
	ToScene func(x, y float64) (float64, float64)
	// ScreenshotDir receives the PNGs queued with Screenshot.
	ScreenshotDir string

	touchMap     [maxTouches]ebiten.TouchID
	touchUsed    [maxTouches]bool
	touchLast    [maxTouches]keepsake.Vec2
	prevTouchIDs []ebiten.TouchID
	keys         []ebiten.Key
	shots        []string
}

// NewHost creates a host feeding scope.
func NewHost(scope *keepsake.Scope) *Host {
	return &Host{scope: scope}
}

// Poll reads this tick's input and forwards it to the scope. Call it once
// per Update, before Scope.Update.
func (h *Host) Poll() {
	h.pollMouse()
	h.pollTouches()
	h.pollKeys()
	h.pollWheel()
}

func (h *Host) toScene(x, y float64) (float64, float64) {
	if h.ToScene != nil {
		return h.ToScene(x, y)
	}
	return x, y
}

// pollMouse handles the mouse as pointer 0.
func (h *Host) pollMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := h.toScene(float64(mx), float64(my))
	h.scope.Pointer(0, x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// pollTouches handles touches as pointers 1-9.
func (h *Host) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(h.prevTouchIDs[:0])
	h.prevTouchIDs = touchIDs

	var active [maxTouches]bool
	for _, tid := range touchIDs {
		slot := h.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		x, y := h.toScene(float64(tx), float64(ty))
		h.touchLast[slot] = keepsake.Vec2{X: x, Y: y}
		h.scope.Pointer(slot, x, y, true)
	}

	// Release slots whose touch ended this tick.
	for i := 1; i < maxTouches; i++ {
		if h.touchUsed[i] && !active[i] {
			last := h.touchLast[i]
			h.scope.Pointer(i, last.X, last.Y, false)
			h.touchUsed[i] = false
			h.touchMap[i] = 0
		}
	}
}

func (h *Host) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxTouches; i++ {
		if h.touchUsed[i] && h.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxTouches; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (h *Host) pollKeys() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if key, ok := keyMap[k]; ok {
			h.scope.PressKey(key)
		}
	}
}

// pollWheel forwards wheel motion. Ebitengine reports scrolling up as a
// positive y offset, so the sign is flipped to match document scrolling.
func (h *Host) pollWheel() {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	h.scope.Wheel(-dx*wheelPixels, -dy*wheelPixels)
}
