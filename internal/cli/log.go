package cli

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/benoitkugler/svgtrace/svgtrace"
	"github.com/charmbracelet/log"
)

// newLogger returns the logger shared by the commands. Parser diagnostics
// go out at warn level, per frame details at debug level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "svgtrace",
	})
}

// job reports the work done by one command on one input file.
type job struct {
	logger *log.Logger
	start  time.Time
}

func newJob(l *log.Logger, input string) *job {
	return &job{logger: l.With("input", input), start: time.Now()}
}

// loaded logs the size of the scene built from the input.
func (j *job) loaded(scene *svgtrace.Scene) {
	j.logger.Debug("scene loaded",
		"nodes", len(scene.Doc.Nodes()),
		"paths", len(scene.Units()),
		"length", round3(scene.TotalLength()))
}

// wrote logs one written image or page, at debug level.
func (j *job) wrote(output string, progress float64) {
	j.logger.Debug("frame written", "output", output, "progress", round3(progress))
}

// done logs the completion of the job: what was produced and how long it took.
func (j *job) done(output string, frames int) {
	j.logger.Info("done",
		"output", output,
		"frames", frames,
		"elapsed", time.Since(j.start).Round(time.Millisecond))
}

func round3(f float64) float64 { return math.Round(f*1000) / 1000 }

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger installed by the root command,
// or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
