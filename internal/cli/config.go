package cli

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/BurntSushi/toml"
	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
)

const (
	backendRaster = "raster" // rasterx
	backendGG     = "gg"     // gogpu/gg software renderer
)

// config holds the render settings, read from a TOML file
// and overridden by the command line flags.
type config struct {
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Frames      int      `toml:"frames"`
	Backend     string   `toml:"backend"`
	Background  string   `toml:"background"`
	StrokeWidth *float64 `toml:"stroke_width"`
	StrokeColor string   `toml:"stroke_color"`
	FillColor   string   `toml:"fill_color"`
	Strict      bool     `toml:"strict"`

	// Nodes is the progress of each node, by identifier
	Nodes map[string]float64 `toml:"nodes"`
}

func defaultConfig() config {
	return config{
		Width:      512,
		Height:     512,
		Frames:     24,
		Backend:    backendRaster,
		Background: "#ffffff",
	}
}

// loadConfig reads the TOML file at path on top of the defaults.
// An empty path returns the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return cfg, fmt.Errorf("reading config: unknown keys %v", undecoded)
	}
	return cfg, cfg.validate()
}

func (cfg config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid size: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("invalid frame count: %d", cfg.Frames)
	}
	if cfg.Backend != backendRaster && cfg.Backend != backendGG {
		return fmt.Errorf("invalid backend: %s (must be '%s' or '%s')", cfg.Backend, backendRaster, backendGG)
	}
	for id, p := range cfg.Nodes {
		if p < 0 || p > 1 {
			return fmt.Errorf("invalid progress %g for node %s", p, id)
		}
	}
	return nil
}

var errNoneColor = errors.New("'none' is not a valid color here")

func parseColorSetting(key, value string) (color.NRGBA, error) {
	c, err := svgtree.ParseColor(value)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%s: %w", key, err)
	}
	if c == nil {
		return color.NRGBA{}, fmt.Errorf("%s: %w", key, errNoneColor)
	}
	return *c, nil
}

// background returns the background color, or nil for
// an empty or 'none' setting.
func (cfg config) background() (color.Color, error) {
	if cfg.Background == "" {
		return nil, nil
	}
	c, err := svgtree.ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if c == nil {
		return nil, nil
	}
	return *c, nil
}

func (cfg config) renderOptions() ([]svgtrace.RenderOption, error) {
	var opts []svgtrace.RenderOption
	if cfg.StrokeColor != "" {
		c, err := parseColorSetting("stroke_color", cfg.StrokeColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, svgtrace.WithDefaultStrokeColor(c))
	}
	if cfg.FillColor != "" {
		c, err := parseColorSetting("fill_color", cfg.FillColor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, svgtrace.WithDefaultFillColor(c))
	}
	if cfg.StrokeWidth != nil {
		if *cfg.StrokeWidth < 0 {
			return nil, fmt.Errorf("invalid stroke width: %g", *cfg.StrokeWidth)
		}
		opts = append(opts, svgtrace.WithDefaultStrokeWidth(*cfg.StrokeWidth))
	}
	return opts, nil
}

func (cfg config) errorMode() svgtree.ErrorMode {
	if cfg.Strict {
		return svgtree.StrictErrorMode
	}
	return svgtree.WarnErrorMode
}
