package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dpup/mapruler/internal/lib/geo"
	"github.com/dpup/mapruler/internal/lib/ruler"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: RULER_LOGGING__LEVEL=debug sets logging.level.
const EnvPrefix = "RULER_"

// Config represents the complete tool configuration
type Config struct {
	Ruler   RulerConfig   `yaml:"ruler"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

// RulerConfig holds measurement settings
type RulerConfig struct {
	LengthUnits   []geo.UnitSpec    `yaml:"length_units"`
	LengthPresets []string          `yaml:"length_presets"` // overrides length_units when set
	AngleUnit     geo.UnitSpec      `yaml:"angle_unit"`
	AnglePreset   string            `yaml:"angle_preset"` // overrides angle_unit when set
	Marker        ruler.MarkerStyle `yaml:"marker"`
	Line          ruler.LineStyle   `yaml:"line"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ExportConfig holds defaults for writing finished paths
type ExportConfig struct {
	Format string `yaml:"format"`
	Name   string `yaml:"name"`
}

// LengthPresets are the named length units
var LengthPresets = map[string]geo.UnitSpec{
	"km":  {Display: "km", Decimals: 2},
	"m":   {Display: "m", Decimals: 0, Factor: 1000},
	"mi":  {Display: "mi", Decimals: 2, Factor: 0.621371},
	"nmi": {Display: "nmi", Decimals: 2, Factor: 0.539957},
	"ft":  {Display: "ft", Decimals: 0, Factor: 3280.84},
}

// AnglePresets are the named angle units
var AnglePresets = map[string]geo.UnitSpec{
	"deg":  {Display: "°", Decimals: 2},
	"mil":  {Display: "mil", Decimals: 0, Factor: 6400},
	"grad": {Display: "gon", Decimals: 2, Factor: 400},
}

// defaults mirrors the stock control options
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"ruler.length_units": []interface{}{
			map[string]interface{}{"display": "km", "decimals": 2},
		},
		"ruler.angle_unit.display":  "°",
		"ruler.angle_unit.decimals": 2,
		"ruler.marker.color":        "red",
		"ruler.marker.radius":       2,
		"ruler.line.color":          "red",
		"ruler.line.dash_array":     "1,6",
		"logging.level":             "info",
		"logging.development":       false,
		"export.format":             "kml",
		"export.name":               "Measured path",
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	cfg, err := load("", false)
	if err != nil {
		// defaults are static; failing here is a programming error
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return cfg
}

// Load reads defaults, then the YAML file at path (if not empty), then
// RULER_ environment overrides.
func Load(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, withEnv bool) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if withEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps RULER_RULER__ANGLE_PRESET to ruler.angle_preset
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Units resolves the length and angle units, applying presets
func (c *Config) Units() ([]geo.UnitSpec, geo.UnitSpec, error) {
	lengthUnits := c.Ruler.LengthUnits
	if len(c.Ruler.LengthPresets) > 0 {
		lengthUnits = make([]geo.UnitSpec, 0, len(c.Ruler.LengthPresets))
		for _, name := range c.Ruler.LengthPresets {
			unit, ok := LengthPresets[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, geo.UnitSpec{}, fmt.Errorf("unknown length preset %q (known: %s)", name, presetNames(LengthPresets))
			}
			lengthUnits = append(lengthUnits, unit)
		}
	}

	angleUnit := c.Ruler.AngleUnit
	if c.Ruler.AnglePreset != "" {
		unit, ok := AnglePresets[strings.ToLower(strings.TrimSpace(c.Ruler.AnglePreset))]
		if !ok {
			return nil, geo.UnitSpec{}, fmt.Errorf("unknown angle preset %q (known: %s)", c.Ruler.AnglePreset, presetNames(AnglePresets))
		}
		angleUnit = unit
	}
	return lengthUnits, angleUnit, nil
}

// Validate rejects configurations the measurement core cannot display
func (c *Config) Validate() error {
	lengthUnits, angleUnit, err := c.Units()
	if err != nil {
		return err
	}
	if len(lengthUnits) == 0 {
		return errors.New("at least one length unit is required")
	}
	for i, u := range lengthUnits {
		if err := validateUnit(u); err != nil {
			return fmt.Errorf("length unit %d: %w", i+1, err)
		}
	}
	if err := validateUnit(angleUnit); err != nil {
		return fmt.Errorf("angle unit: %w", err)
	}
	return nil
}

func validateUnit(u geo.UnitSpec) error {
	if u.Decimals < 0 {
		return fmt.Errorf("decimals must not be negative, got %d", u.Decimals)
	}
	if u.Factor < 0 {
		return fmt.Errorf("factor must not be negative, got %g", u.Factor)
	}
	return nil
}

// RulerOptions builds session options from the configuration
func (c *Config) RulerOptions() (ruler.Options, error) {
	lengthUnits, angleUnit, err := c.Units()
	if err != nil {
		return ruler.Options{}, err
	}
	return ruler.Options{
		LengthUnits: lengthUnits,
		AngleUnit:   angleUnit,
		Marker:      c.Ruler.Marker,
		Line:        c.Ruler.Line,
	}, nil
}

func presetNames(presets map[string]geo.UnitSpec) string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
