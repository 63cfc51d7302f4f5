package itemview

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"github.com/BurntSushi/toml"
)

const (
	searchTimeoutKey      = "xselect:searchTimeoutMs"
	dragDistanceKey       = "xselect:dragDistance"
	selectionBehaviorKey  = "xselect:selectionBehavior"
	singleClickKey        = "xselect:singleClickActivation"
	autoScrollIntervalKey = "xselect:autoScrollIntervalMs"
)

// Duration is a time.Duration written as "1s" or "250ms" in TOML files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Settings tune the controller.
type Settings struct {
	// SearchTimeout ends a keyboard search when no key was typed for this long.
	SearchTimeout Duration `toml:"search_timeout"`
	// DragDistance is how far the pointer has to move with a pressed item
	// before a drag starts.
	DragDistance float32 `toml:"drag_distance"`
	// SelectionBehavior limits what can be selected.
	SelectionBehavior SelectionBehavior `toml:"selection_behavior"`
	// SingleClickActivation activates items on click instead of double click.
	SingleClickActivation bool `toml:"single_click_activation"`
	// AutoScrollInterval is the tick of the rubber band auto scroll.
	AutoScrollInterval Duration `toml:"autoscroll_interval"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		SearchTimeout:         Duration(defaultSearchTimeout),
		DragDistance:          10,
		SelectionBehavior:     MultiSelection,
		SingleClickActivation: true,
		AutoScrollInterval:    Duration(30 * time.Millisecond),
	}
}

// LoadSettings reads settings from a TOML file. Keys missing from the file
// keep their default value.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path == "" {
		return s, errors.New("settings path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return s, fmt.Errorf("settings file not found: %w", err)
	}

	if _, err := toml.DecodeFile(path, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// Validate returns an error describing every invalid field.
func (s Settings) Validate() error {
	var errs []error

	if s.SearchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("search_timeout=%s must be positive", time.Duration(s.SearchTimeout)))
	}
	if s.DragDistance < 0 {
		errs = append(errs, fmt.Errorf("drag_distance=%v must not be negative", s.DragDistance))
	}
	if _, ok := selectionBehaviorNames[s.SelectionBehavior]; !ok {
		errs = append(errs, fmt.Errorf("selection_behavior=%d is unknown", int(s.SelectionBehavior)))
	}
	if s.AutoScrollInterval <= 0 {
		errs = append(errs, fmt.Errorf("autoscroll_interval=%s must be positive", time.Duration(s.AutoScrollInterval)))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LoadPreferences reads settings stored by SavePreferences. Invalid values
// are logged and replaced by their defaults.
func LoadPreferences(p fyne.Preferences) Settings {
	def := DefaultSettings()
	s := def

	s.SearchTimeout = Duration(time.Duration(p.IntWithFallback(searchTimeoutKey, int(time.Duration(def.SearchTimeout).Milliseconds()))) * time.Millisecond)
	s.DragDistance = float32(p.FloatWithFallback(dragDistanceKey, float64(def.DragDistance)))
	s.SingleClickActivation = p.BoolWithFallback(singleClickKey, def.SingleClickActivation)
	s.AutoScrollInterval = Duration(time.Duration(p.IntWithFallback(autoScrollIntervalKey, int(time.Duration(def.AutoScrollInterval).Milliseconds()))) * time.Millisecond)

	if name := p.String(selectionBehaviorKey); name != "" {
		if err := s.SelectionBehavior.UnmarshalText([]byte(name)); err != nil {
			fyne.LogError("Ignoring selection behavior preference", err)
			s.SelectionBehavior = def.SelectionBehavior
		}
	}

	if s.SearchTimeout <= 0 {
		s.SearchTimeout = def.SearchTimeout
	}
	if s.DragDistance < 0 {
		s.DragDistance = def.DragDistance
	}
	if s.AutoScrollInterval <= 0 {
		s.AutoScrollInterval = def.AutoScrollInterval
	}
	if err := s.Validate(); err != nil {
		fyne.LogError("Ignoring stored selection settings", err)
		return def
	}
	return s
}

// SavePreferences stores s so LoadPreferences can restore it.
func SavePreferences(p fyne.Preferences, s Settings) {
	p.SetInt(searchTimeoutKey, int(time.Duration(s.SearchTimeout).Milliseconds()))
	p.SetFloat(dragDistanceKey, float64(s.DragDistance))
	p.SetString(selectionBehaviorKey, s.SelectionBehavior.String())
	p.SetBool(singleClickKey, s.SingleClickActivation)
	p.SetInt(autoScrollIntervalKey, int(time.Duration(s.AutoScrollInterval).Milliseconds()))
}
