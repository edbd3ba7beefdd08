package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svgtrace/svgpdf"
	"github.com/spf13/cobra"
)

func newFlipbookCmd() *cobra.Command {
	var (
		s      settings
		output string
	)
	cmd := &cobra.Command{
		Use:   "flipbook [file]",
		Short: "Write the draw-in animation as a PDF, one page per frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
			}
			return runFlipbook(cmd.Context(), args[0], output, cfg)
		},
	}
	s.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with .pdf extension)")
	return cmd
}

func runFlipbook(ctx context.Context, input, output string, cfg config) error {
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

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	err = svgpdf.WriteFlipbook(out, scene, float64(cfg.Width), float64(cfg.Height), cfg.Frames, bg, renderOptions...)
	if errClose := out.Close(); err == nil {
		err = errClose
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	j.done(output, cfg.Frames)
	return nil
}
