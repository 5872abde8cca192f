// Package config loads navigation settings from yaml or toml files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/s1"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/camnav/box"
	"github.com/seqsense/camnav/event"
	"github.com/seqsense/camnav/fling"
	"github.com/seqsense/camnav/nav"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalid       = errors.New("invalid value")
)

type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// FormatOf returns the format of a file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Duration is a time.Duration written as "250ms" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type Config struct {
	LogLevel   string     `yaml:"log_level" toml:"log_level"`
	Navigation Navigation `yaml:"navigation" toml:"navigation"`
	Bounds     *Bounds    `yaml:"bounds,omitempty" toml:"bounds,omitempty"`
	Keys       Keys       `yaml:"keys" toml:"keys"`
	Fling      Fling      `yaml:"fling" toml:"fling"`
	Box        Box        `yaml:"box" toml:"box"`
}

type Navigation struct {
	// Allowed lists navigation type names, e.g. PAN or ZOOM.
	Allowed []string `yaml:"allowed" toml:"allowed"`
	Frame   string   `yaml:"frame" toml:"frame"`

	// Rotation speeds in degrees per pixel.
	HorizontalSpeed float64 `yaml:"horizontal_speed" toml:"horizontal_speed"`
	VerticalSpeed   float64 `yaml:"vertical_speed" toml:"vertical_speed"`

	MinClearance    float64  `yaml:"min_clearance" toml:"min_clearance"`
	ZoomDuration    Duration `yaml:"zoom_duration" toml:"zoom_duration"`
	ZoomSpeed       float64  `yaml:"zoom_speed" toml:"zoom_speed"`
	MaxZoomFraction float64  `yaml:"max_zoom_fraction" toml:"max_zoom_fraction"`
	SurfaceApproach float64  `yaml:"surface_approach" toml:"surface_approach"`

	FirstPersonModifier string `yaml:"first_person_modifier" toml:"first_person_modifier"`
	ThroughModifier     string `yaml:"through_modifier" toml:"through_modifier"`
	PointerLockButton   string `yaml:"pointer_lock_button" toml:"pointer_lock_button"`

	DoubleClickInterval   Duration `yaml:"double_click_interval" toml:"double_click_interval"`
	GizmoPixels           float64  `yaml:"gizmo_pixels" toml:"gizmo_pixels"`
	DefaultAnchorDistance float64  `yaml:"default_anchor_distance" toml:"default_anchor_distance"`
}

type Bounds struct {
	Min [3]float64 `yaml:"min" toml:"min"`
	Max [3]float64 `yaml:"max" toml:"max"`
}

type Keys struct {
	Mode  string  `yaml:"mode" toml:"mode"`
	Speed float64 `yaml:"speed" toml:"speed"`
}

type Fling struct {
	DPI              float64  `yaml:"dpi" toml:"dpi"`
	Friction         float64  `yaml:"friction" toml:"friction"`
	VelocityGain     float64  `yaml:"velocity_gain" toml:"velocity_gain"`
	ReleaseThreshold Duration `yaml:"release_threshold" toml:"release_threshold"`
	MouseSamples     int      `yaml:"mouse_samples" toml:"mouse_samples"`
	TouchSamples     int      `yaml:"touch_samples" toml:"touch_samples"`
}

type Box struct {
	MinWidth float64 `yaml:"min_width" toml:"min_width"`
	MaxWidth float64 `yaml:"max_width" toml:"max_width"`
}

// Default returns the configuration matching nav.DefaultOptions.
func Default() Config {
	o := nav.DefaultOptions()
	l := box.DefaultLimits()

	var allowed []string
	for t := nav.Pan; t <= nav.FirstPersonRotation; t++ {
		if o.Allowed.Has(t) {
			allowed = append(allowed, t.String())
		}
	}
	return Config{
		LogLevel: "info",
		Navigation: Navigation{
			Allowed:               allowed,
			Frame:                 o.Frame.Kind.String(),
			HorizontalSpeed:       o.HorizontalSpeed.Degrees(),
			VerticalSpeed:         o.VerticalSpeed.Degrees(),
			MinClearance:          o.MinClearance,
			ZoomDuration:          Duration(o.ZoomDuration),
			ZoomSpeed:             o.ZoomSpeed,
			MaxZoomFraction:       o.MaxZoomFraction,
			SurfaceApproach:       o.SurfaceApproach,
			FirstPersonModifier:   modifierNames[o.FirstPersonModifier],
			ThroughModifier:       modifierNames[o.ThroughModifier],
			PointerLockButton:     buttonNames[o.PointerLockButtons],
			DoubleClickInterval:   Duration(o.DoubleClickInterval),
			GizmoPixels:           o.GizmoPixels,
			DefaultAnchorDistance: o.DefaultAnchorDistance,
		},
		Keys: Keys{
			Mode:  o.KeyMode.String(),
			Speed: o.KeySpeed,
		},
		Fling: Fling{
			DPI:              o.Fling.DPI,
			Friction:         o.Fling.Friction,
			VelocityGain:     o.Fling.VelocityGain,
			ReleaseThreshold: Duration(o.Fling.ReleaseThreshold),
			MouseSamples:     o.Fling.MouseSamples,
			TouchSamples:     o.Fling.TouchSamples,
		},
		Box: Box{
			MinWidth: l.MinWidth,
			MaxWidth: l.MaxWidth,
		},
	}
}

// Load reads a config file. Values missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(b, f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte, f Format) (Config, error) {
	c := Default()
	switch f {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parsing yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("parsing toml: %w", err)
		}
	default:
		return Config{}, ErrUnknownFormat
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Marshal encodes c in format f.
func (c Config) Marshal(f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatTOML:
		return toml.Marshal(c)
	}
	return nil, ErrUnknownFormat
}

func invalid(field string, v interface{}) error {
	return fmt.Errorf("%s: %v: %w", field, v, ErrInvalid)
}

// Validate returns every invalid field joined in one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, v interface{}) {
		if !ok {
			errs = append(errs, invalid(field, v))
		}
	}

	_, err := log.ValidateLevel(c.LogLevel)
	check(err == nil, "log_level", c.LogLevel)

	n := c.Navigation
	for _, s := range n.Allowed {
		t, ok := nav.ParseNavigationType(s)
		check(ok && t != nav.None, "navigation.allowed", s)
	}
	_, ok := parseFrame(n.Frame)
	check(ok, "navigation.frame", n.Frame)
	check(n.HorizontalSpeed > 0, "navigation.horizontal_speed", n.HorizontalSpeed)
	check(n.VerticalSpeed > 0, "navigation.vertical_speed", n.VerticalSpeed)
	check(n.MinClearance >= 0, "navigation.min_clearance", n.MinClearance)
	check(n.ZoomDuration >= 0, "navigation.zoom_duration", time.Duration(n.ZoomDuration))
	check(n.ZoomSpeed > 0, "navigation.zoom_speed", n.ZoomSpeed)
	check(n.MaxZoomFraction > 0 && n.MaxZoomFraction < 1, "navigation.max_zoom_fraction", n.MaxZoomFraction)
	check(n.SurfaceApproach > 0 && n.SurfaceApproach <= 1, "navigation.surface_approach", n.SurfaceApproach)
	_, ok = parseModifier(n.FirstPersonModifier)
	check(ok, "navigation.first_person_modifier", n.FirstPersonModifier)
	_, ok = parseModifier(n.ThroughModifier)
	check(ok, "navigation.through_modifier", n.ThroughModifier)
	_, ok = parseButton(n.PointerLockButton)
	check(ok, "navigation.pointer_lock_button", n.PointerLockButton)
	check(n.DoubleClickInterval > 0, "navigation.double_click_interval", time.Duration(n.DoubleClickInterval))
	check(n.GizmoPixels > 0, "navigation.gizmo_pixels", n.GizmoPixels)
	check(n.DefaultAnchorDistance > 0, "navigation.default_anchor_distance", n.DefaultAnchorDistance)

	if c.Bounds != nil {
		b := c.Bounds.bounds()
		check(b.IsValid(), "bounds", *c.Bounds)
	}

	_, ok = parseKeyMode(c.Keys.Mode)
	check(ok, "keys.mode", c.Keys.Mode)
	check(c.Keys.Speed > 0, "keys.speed", c.Keys.Speed)

	f := c.Fling
	check(f.DPI > 0, "fling.dpi", f.DPI)
	check(f.Friction > 0, "fling.friction", f.Friction)
	check(f.VelocityGain > 0, "fling.velocity_gain", f.VelocityGain)
	check(f.ReleaseThreshold > 0, "fling.release_threshold", time.Duration(f.ReleaseThreshold))
	check(f.MouseSamples > 0, "fling.mouse_samples", f.MouseSamples)
	check(f.TouchSamples > 0, "fling.touch_samples", f.TouchSamples)

	check(c.Box.MinWidth > 0, "box.min_width", c.Box.MinWidth)
	check(c.Box.MaxWidth > c.Box.MinWidth, "box.max_width", c.Box.MaxWidth)

	return errors.Join(errs...)
}

func (b Bounds) bounds() nav.Bounds {
	return nav.Bounds{Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max)}
}

// NavOptions converts a validated config into navigation options.
// Unparsable names fall back to the defaults.
func (c Config) NavOptions() nav.Options {
	o := nav.DefaultOptions()
	n := c.Navigation

	if len(n.Allowed) > 0 {
		var ts []nav.NavigationType
		for _, s := range n.Allowed {
			if t, ok := nav.ParseNavigationType(s); ok {
				ts = append(ts, t)
			}
		}
		o.Allowed = nav.NewTypeSet(ts...)
	}
	if k, ok := parseFrame(n.Frame); ok {
		o.Frame = nav.Frame{Kind: k}
	}
	if c.Bounds != nil {
		b := c.Bounds.bounds()
		o.Bounds = &b
	}
	o.HorizontalSpeed = s1.Angle(n.HorizontalSpeed) * s1.Degree
	o.VerticalSpeed = s1.Angle(n.VerticalSpeed) * s1.Degree
	o.MinClearance = n.MinClearance
	o.ZoomDuration = time.Duration(n.ZoomDuration)
	o.ZoomSpeed = n.ZoomSpeed
	o.MaxZoomFraction = n.MaxZoomFraction
	o.SurfaceApproach = n.SurfaceApproach
	if m, ok := parseModifier(n.FirstPersonModifier); ok {
		o.FirstPersonModifier = m
	}
	if m, ok := parseModifier(n.ThroughModifier); ok {
		o.ThroughModifier = m
	}
	if b, ok := parseButton(n.PointerLockButton); ok {
		o.PointerLockButtons = b
	}
	o.DoubleClickInterval = time.Duration(n.DoubleClickInterval)
	o.GizmoPixels = n.GizmoPixels
	o.DefaultAnchorDistance = n.DefaultAnchorDistance

	if m, ok := parseKeyMode(c.Keys.Mode); ok {
		o.KeyMode = m
	}
	o.KeySpeed = c.Keys.Speed

	o.Fling = fling.Options{
		DPI:              c.Fling.DPI,
		Friction:         c.Fling.Friction,
		VelocityGain:     c.Fling.VelocityGain,
		ReleaseThreshold: time.Duration(c.Fling.ReleaseThreshold),
		MouseSamples:     c.Fling.MouseSamples,
		TouchSamples:     c.Fling.TouchSamples,
	}
	return o
}

func (c Config) BoxLimits() box.Limits {
	return box.Limits{MinWidth: c.Box.MinWidth, MaxWidth: c.Box.MaxWidth}
}

// ApplyLogLevel sets the global log level. The level must be valid.
func (c Config) ApplyLogLevel() {
	lvl, err := log.ValidateLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Ignoring log level %q: %v", c.LogLevel, err)
		return
	}
	log.SetLogLevel(lvl)
}

var modifierNames = map[event.Modifiers]string{
	0:              "none",
	event.ModShift: "shift",
	event.ModCtrl:  "ctrl",
	event.ModAlt:   "alt",
	event.ModMeta:  "meta",
}

var buttonNames = map[event.Buttons]string{
	event.ButtonsLeft:   "left",
	event.ButtonsRight:  "right",
	event.ButtonsMiddle: "middle",
}

func parseModifier(s string) (event.Modifiers, bool) {
	for m, name := range modifierNames {
		if strings.EqualFold(name, s) {
			return m, true
		}
	}
	return 0, false
}

func parseButton(s string) (event.Buttons, bool) {
	for b, name := range buttonNames {
		if strings.EqualFold(name, s) {
			return b, true
		}
	}
	return 0, false
}

func parseFrame(s string) (nav.FrameKind, bool) {
	for _, k := range []nav.FrameKind{nav.FrameFlat, nav.FrameSpherical} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func parseKeyMode(s string) (nav.KeyMode, bool) {
	for _, m := range []nav.KeyMode{nav.CameraForward, nav.TangentForward} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}
