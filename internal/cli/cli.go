// Package cli implements the svgtrace command-line interface.
//
// # Commands
//
//   - inspect: print the parsed document tree and the measured paths
//   - render: write PNG frames of the draw-in animation
//   - flipbook: write the animation as a PDF, one page per frame
//
// All commands support --verbose (-v) for debug-level logging, and
// --config to read the render settings from a TOML file. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the svgtrace CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "svgtrace",
		Short:        "svgtrace animates the drawing of SVG documents",
		Long:         `svgtrace parses an SVG document, measures its paths, and renders the progressive "draw-in" of their strokes, each shape being filled once its outline is complete.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("svgtrace %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newFlipbookCmd())
	return root
}

// settings binds the flags shared by the render commands
// to a config, read from the --config file.
type settings struct {
	configPath string
	flags      config
	strokeW    float64
}

func (s *settings) register(cmd *cobra.Command) {
	def := defaultConfig()
	f := cmd.Flags()
	f.StringVarP(&s.configPath, "config", "c", "", "TOML file with the render settings")
	f.IntVar(&s.flags.Width, "width", def.Width, "frame width, in pixels (or points for PDF)")
	f.IntVar(&s.flags.Height, "height", def.Height, "frame height, in pixels (or points for PDF)")
	f.IntVarP(&s.flags.Frames, "frames", "n", def.Frames, "number of frames")
	f.StringVar(&s.flags.Background, "background", def.Background, "background color, or 'none'")
	f.StringVar(&s.flags.StrokeColor, "stroke-color", "", "color of the strokes without 'stroke' attribute")
	f.StringVar(&s.flags.FillColor, "fill-color", "", "color of the fills without 'fill' attribute")
	f.Float64Var(&s.strokeW, "stroke-width", 0, "width of the strokes without 'stroke-width' attribute")
	f.BoolVar(&s.flags.Strict, "strict", false, "fail on any anomaly of the document")
}

// resolve loads the config file and applies the flags
// explicitly set on the command line.
func (s *settings) resolve(cmd *cobra.Command) (config, error) {
	cfg, err := loadConfig(s.configPath)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("width") {
		cfg.Width = s.flags.Width
	}
	if f.Changed("height") {
		cfg.Height = s.flags.Height
	}
	if f.Changed("frames") {
		cfg.Frames = s.flags.Frames
	}
	if f.Changed("background") {
		cfg.Background = s.flags.Background
	}
	if f.Changed("stroke-color") {
		cfg.StrokeColor = s.flags.StrokeColor
	}
	if f.Changed("fill-color") {
		cfg.FillColor = s.flags.FillColor
	}
	if f.Changed("stroke-width") {
		w := s.strokeW
		cfg.StrokeWidth = &w
	}
	if f.Changed("strict") {
		cfg.Strict = s.flags.Strict
	}
	if f.Lookup("backend") != nil && f.Changed("backend") {
		cfg.Backend = s.flags.Backend
	}
	return cfg, cfg.validate()
}

// loadScene parses the SVG file and builds its paths.
func loadScene(ctx context.Context, path string, mode svgtree.ErrorMode) (*svgtrace.Scene, error) {
	logger := loggerFromContext(ctx)
	doc, err := svgtree.ParseFile(path, svgtree.Options{ErrorMode: mode, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return svgtrace.NewScene(doc, svgtrace.WithLogger(logger)), nil
}
