package keepsake

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTheme is returned by BuiltinTheme for names with no embedded file.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrInvalidTheme wraps validation failures from LoadTheme.
var ErrInvalidTheme = errors.New("invalid theme")

//go:embed themes/*.yaml
var themeFiles embed.FS

// Hint is a delayed affordance that appears some time after a stage is entered.
type Hint struct {
	Name  string        `yaml:"name"`
	Stage Stage         `yaml:"stage"`
	Delay time.Duration `yaml:"delay"`
}

// Theme holds the pacing constants of one invitation design. Renderers that
// differ only in timing share all choreography code and differ only here.
type Theme struct {
	Name string `yaml:"name"`

	// Intro sequence.
	ChoreographyDelay   time.Duration `yaml:"choreographyDelay"`
	FadeIn              time.Duration `yaml:"fadeIn"`
	IntroSwipeThreshold float64       `yaml:"introSwipeThreshold"`
	Hints               []Hint        `yaml:"hints"`

	// Gallery carousel.
	CarouselTransition     time.Duration `yaml:"carouselTransition"`
	CarouselEase           string        `yaml:"carouselEase"`
	CarouselSwipeThreshold float64       `yaml:"carouselSwipeThreshold"`

	// Guestbook card stack.
	CardSwipeThreshold float64       `yaml:"cardSwipeThreshold"`
	CardTapThreshold   float64       `yaml:"cardTapThreshold"`
	CardExit           time.Duration `yaml:"cardExit"`
	CardSnapBack       time.Duration `yaml:"cardSnapBack"`
	CardExitDistance   float64       `yaml:"cardExitDistance"`
	CardRotation       float64       `yaml:"cardRotation"` // degrees per pixel of drag
	CardStackOffset    float64       `yaml:"cardStackOffset"`
	CardStackScale     float64       `yaml:"cardStackScale"`

	// Sections and scrolling.
	SectionThresholds []float64     `yaml:"sectionThresholds"`
	ScrollDuration    time.Duration `yaml:"scrollDuration"`
	ScrollEase        string        `yaml:"scrollEase"`
}

// DefaultTheme returns the pacing used when no theme is configured.
func DefaultTheme() Theme {
	return Theme{
		Name:                "default",
		ChoreographyDelay:   500 * time.Millisecond,
		FadeIn:              500 * time.Millisecond,
		IntroSwipeThreshold: 50,
		Hints: []Hint{
			{Name: HintTooltip, Stage: StageInvitation, Delay: 1500 * time.Millisecond},
			{Name: HintScroll, Stage: StageInvitation, Delay: 3 * time.Second},
		},
		CarouselTransition:     500 * time.Millisecond,
		CarouselEase:           "inOutQuad",
		CarouselSwipeThreshold: 50,
		CardSwipeThreshold:     50,
		CardTapThreshold:       10,
		CardExit:               250 * time.Millisecond,
		CardSnapBack:           250 * time.Millisecond,
		CardExitDistance:       600,
		CardRotation:           0.05,
		CardStackOffset:        12,
		CardStackScale:         0.05,
		SectionThresholds:      []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		ScrollDuration:         750 * time.Millisecond,
		ScrollEase:             "outCubic",
	}
}

// Names of the hints in DefaultTheme.
const (
	HintTooltip = "tooltip"
	HintScroll  = "scroll"
)

// LoadTheme parses YAML (or JSON) theme data. Fields absent from the document
// keep their DefaultTheme values.
func LoadTheme(data []byte) (Theme, error) {
	theme := DefaultTheme()
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return Theme{}, err
	}
	return theme, nil
}

// BuiltinTheme returns one of the embedded themes by name.
func BuiltinTheme(name string) (Theme, error) {
	data, err := themeFiles.ReadFile(path.Join("themes", name+".yaml"))
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return LoadTheme(data)
}

// ThemeNames lists the embedded themes in alphabetical order.
func ThemeNames() []string {
	entries, err := themeFiles.ReadDir("themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Validate reports the first inconsistency in t, wrapped in ErrInvalidTheme.
func (t Theme) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"choreographyDelay", t.ChoreographyDelay},
		{"fadeIn", t.FadeIn},
		{"carouselTransition", t.CarouselTransition},
		{"cardExit", t.CardExit},
		{"cardSnapBack", t.CardSnapBack},
		{"scrollDuration", t.ScrollDuration},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidTheme, d.name)
		}
	}
	for _, h := range t.Hints {
		if h.Name == "" {
			return fmt.Errorf("%w: hint without a name", ErrInvalidTheme)
		}
		if h.Delay < 0 {
			return fmt.Errorf("%w: hint %q delay is negative", ErrInvalidTheme, h.Name)
		}
	}
	if t.CardTapThreshold < 0 || t.CardSwipeThreshold <= t.CardTapThreshold {
		return fmt.Errorf("%w: card thresholds must satisfy 0 <= tap < swipe", ErrInvalidTheme)
	}
	if _, ok := easings[t.CarouselEase]; !ok {
		return fmt.Errorf("%w: unknown carouselEase %q", ErrInvalidTheme, t.CarouselEase)
	}
	if _, ok := easings[t.ScrollEase]; !ok {
		return fmt.Errorf("%w: unknown scrollEase %q", ErrInvalidTheme, t.ScrollEase)
	}
	prev := -1.0
	for _, th := range t.SectionThresholds {
		if th < 0 || th > 1 || th <= prev {
			return fmt.Errorf("%w: sectionThresholds must be ascending within [0, 1]", ErrInvalidTheme)
		}
		prev = th
	}
	return nil
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// easing resolves an ease name, falling back to linear.
func easing(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}

// seconds converts a duration to the float32 seconds used by tweens.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// UnmarshalText parses a stage name ("cover", "invitation", "main").
func (s *Stage) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cover":
		*s = StageCover
	case "invitation":
		*s = StageInvitation
	case "main":
		*s = StageMain
	default:
		return fmt.Errorf("unknown stage %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
