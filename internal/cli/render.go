package cli

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svggg"
	"github.com/benoitkugler/svgtrace/svgraster"
	"github.com/spf13/cobra"
)

type renderOpts struct {
	output   string
	progress float64 // negative for the whole animation
	byNode   bool
}

func newRenderCmd() *cobra.Command {
	var (
		s    settings
		opts = renderOpts{progress: -1}
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the draw-in animation as PNG frames",
		Long: `Render writes one PNG image per frame, named <output>_<index>.png,
or a single image when --progress is given.
With --by-node, the progress of each node is read from the [nodes] table of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("progress") && (opts.progress < 0 || opts.progress > 1) {
				return fmt.Errorf("invalid progress: %g (must be in [0, 1])", opts.progress)
			}
			return runRender(cmd.Context(), args[0], cfg, opts)
		},
	}
	s.register(cmd)
	cmd.Flags().StringVar(&s.flags.Backend, "backend", backendRaster, "rasterizer: raster (rasterx) or gg (gogpu/gg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single frame) or base path (default: input name)")
	cmd.Flags().Float64VarP(&opts.progress, "progress", "p", -1, "render a single frame at this progress, in [0, 1]")
	cmd.Flags().BoolVar(&opts.byNode, "by-node", false, "render a single frame using the per node progress of the config")
	return cmd
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return strings.TrimSuffix(output, ".png")
}

// frameRenderer renders frames with the chosen backend.
type frameRenderer struct {
	cfg   config
	scene *svgtrace.Scene
	bg    color.Color
	opts  []svgtrace.RenderOption
}

func (fr frameRenderer) frame(progress float64) image.Image {
	if fr.cfg.Backend == backendGG {
		return svggg.RasterFrame(fr.scene, fr.cfg.Width, fr.cfg.Height, progress, fr.bg, fr.opts...)
	}
	return svgraster.RasterFrame(fr.scene, fr.cfg.Width, fr.cfg.Height, progress, fr.bg, fr.opts...)
}

func (fr frameRenderer) frameByNode(src svgtrace.ProgressSource) image.Image {
	if fr.cfg.Backend == backendGG {
		return svggg.RasterFrameByNode(fr.scene, fr.cfg.Width, fr.cfg.Height, src, fr.bg, fr.opts...)
	}
	return svgraster.RasterFrameByNode(fr.scene, fr.cfg.Width, fr.cfg.Height, src, fr.bg, fr.opts...)
}

func runRender(ctx context.Context, input string, cfg config, opts renderOpts) error {
	j := newJob(loggerFromContext(ctx), input)
	scene, err := loadScene(ctx, input, cfg.errorMode())
	if err != nil {
		return err
	}
	j.loaded(scene)
	bg, err := cfg.background()
	if err != nil {
		return err
	}
	renderOptions, err := cfg.renderOptions()
	if err != nil {
		return err
	}
	fr := frameRenderer{cfg: cfg, scene: scene, bg: bg, opts: renderOptions}

	base := basePath(opts.output, input)
	switch {
	case opts.byNode:
		if err := writePNG(base+".png", fr.frameByNode(svgtrace.ProgressMap(cfg.Nodes))); err != nil {
			return err
		}
		j.logger.Debug("per node progress", "entries", len(cfg.Nodes))
		j.done(base+".png", 1)
	case opts.progress >= 0:
		if err := writePNG(base+".png", fr.frame(opts.progress)); err != nil {
			return err
		}
		j.wrote(base+".png", opts.progress)
		j.done(base+".png", 1)
	default:
		for i := 0; i < cfg.Frames; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := fmt.Sprintf("%s_%03d.png", base, i)
			progress := svgtrace.FrameProgress(i, cfg.Frames)
			if err := writePNG(path, fr.frame(progress)); err != nil {
				return err
			}
			j.wrote(path, progress)
		}
		j.done(base+"_*.png", cfg.Frames)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
