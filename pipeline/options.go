package pipeline

import (
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/peaks"
)

// ErrInvalidWorkers is returned for a non-positive worker count.
var ErrInvalidWorkers = fmt.Errorf("%w: pipeline: workers must be positive", errs.ErrInvalidArgument)

// Options configures a Detector.
type Options struct {
	Engine  peaks.Kind
	Peaks   []peaks.Option
	Workers int
	Logger  logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Engine:  peaks.KindStreaming,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithEngine selects the detection engine.
func WithEngine(kind peaks.Kind) Option {
	return func(o *Options) { o.Engine = kind }
}

// WithPeakOptions forwards options to every engine.
func WithPeakOptions(opts ...peaks.Option) Option {
	return func(o *Options) { o.Peaks = append(o.Peaks, opts...) }
}

// WithWorkers sets the number of chunks detected concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
