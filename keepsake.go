package keepsake

import "math"

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the
// API. Units are logical pixels.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in document coordinates. The origin is at
// the top-left, with Y increasing downward (toward the end of the document).
type Rect struct {
	X, Y, Width, Height float64
}

// Bounds returns r itself, so a plain Rect can be observed as an Element.
func (r Rect) Bounds() Rect {
	return r
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping area of r and other. The result has
// zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 < x0 || y1 < y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Inset grows r by m on each side. Negative margins shrink it.
func (r Rect) Inset(m Margin) Rect {
	return Rect{
		X:      r.X - m.Left,
		Y:      r.Y - m.Top,
		Width:  r.Width + m.Left + m.Right,
		Height: r.Height + m.Top + m.Bottom,
	}
}

// Margin adjusts the effective viewport used for visibility checks, like a
// CSS root margin. Positive values grow the viewport, negative values shrink it.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Stage is the position of an invitation in its intro sequence.
type Stage uint8

const (
	StageCover      Stage = iota // full-bleed cover screen
	StageInvitation              // invitation card screen
	StageMain                    // scrollable main page
)

func (s Stage) String() string {
	switch s {
	case StageCover:
		return "cover"
	case StageInvitation:
		return "invitation"
	case StageMain:
		return "main"
	default:
		return "unknown"
	}
}

// Screen is the intro sub-machine state.
type Screen uint8

const (
	ScreenCover Screen = iota
	ScreenInvitation
)

// Page is the outer page state.
type Page uint8

const (
	PageIntro Page = iota
	PageMain
)

// SwipeDirection is the direction a card is leaving the stack in.
type SwipeDirection uint8

const (
	SwipeNone SwipeDirection = iota
	SwipeUp                  // committing to the next card
	SwipeDown                // committing to the previous card
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	default:
		return "none"
	}
}

// EventType identifies a kind of choreography notification.
type EventType uint8

const (
	EventSectionChange EventType = iota // the active section changed
	EventScreenChange                   // the intro sequencer committed a stage
	EventCarouselIndex                  // a carousel display index changed
	EventCardIndex                      // a card stack top index changed
	EventHintShown                      // a delayed hint became visible
)

func (t EventType) String() string {
	switch t {
	case EventSectionChange:
		return "section"
	case EventScreenChange:
		return "screen"
	case EventCarouselIndex:
		return "carousel"
	case EventCardIndex:
		return "card"
	case EventHintShown:
		return "hint"
	default:
		return "unknown"
	}
}

// Key identifies a keyboard key the choreography engine reacts to.
type Key uint8

const (
	KeyEscape Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyEnter
	KeySpace
)

var keyNames = map[string]Key{
	"Escape":     KeyEscape,
	"ArrowLeft":  KeyArrowLeft,
	"ArrowRight": KeyArrowRight,
	"ArrowUp":    KeyArrowUp,
	"ArrowDown":  KeyArrowDown,
	"Enter":      KeyEnter,
	"Space":      KeySpace,
}

// ParseKey maps a DOM-style key name ("Escape", "ArrowLeft", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}
