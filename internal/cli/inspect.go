package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/benoitkugler/svgtrace/svgtree"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var (
		strict bool
		paths  bool
	)
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the document tree and its measured paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := svgtree.WarnErrorMode
			if strict {
				mode = svgtree.StrictErrorMode
			}
			return runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], mode, paths)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any anomaly of the document")
	cmd.Flags().BoolVar(&paths, "paths", false, "also print the path data of each shape")
	return cmd
}

func runInspect(ctx context.Context, w io.Writer, input string, mode svgtree.ErrorMode, paths bool) error {
	scene, err := loadScene(ctx, input, mode)
	if err != nil {
		return err
	}
	if err := svgtree.Fprint(w, scene.Doc); err != nil {
		return err
	}
	return fprintUnits(w, scene.Units(), paths)
}

func fprintUnits(w io.Writer, units []svgtrace.PathUnit, paths bool) error {
	if _, err := fmt.Fprintf(w, "\n%d paths, total length %.3f\n", len(units), svgtrace.TotalLength(units)); err != nil {
		return err
	}
	for _, u := range units {
		b := u.Path.Bounds()
		_, err := fmt.Fprintf(w, "%s length=%.3f contours=%d bounds=[%g %g %g %g]\n",
			u.Node.Common().ID, u.Length, len(u.Contours()), b.X, b.Y, b.W, b.H)
		if err != nil {
			return err
		}
		if paths {
			if _, err := fmt.Fprintf(w, "  %s\n", u.Path.ToSVGPath()); err != nil {
				return err
			}
		}
	}
	return nil
}
