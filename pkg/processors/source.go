package processors

import (
	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/paths"
)

// SourceProcessorName is the registry name of the test source processor
const SourceProcessorName = "source"

func init() {
	if err := Register(Processor{
		Metadata: Metadata{
			Name:          SourceProcessorName,
			CommandName:   "<source>",
			Priority:      PrioritySource,
			AllowMultiple: true,
			HelpContent:   "Test container to run; positional, may be repeated",
		},
		NewExecutor: NewSourceExecutor,
	}); err != nil {
		panic(err)
	}
}

// SourceExecutor records a test container on the shared options object.
type SourceExecutor struct {
	fs   filesystem.FS
	opts *options.CommandLineOptions
}

// NewSourceExecutor creates an executor bound to the shared collaborators
func NewSourceExecutor(deps Deps) Executor {
	return &SourceExecutor{
		fs:   deps.FS,
		opts: deps.Options,
	}
}

// Initialize validates the source file and appends it to the run's sources
func (e *SourceExecutor) Initialize(argument string) error {
	value := paths.TrimQuotes(argument)
	if value == "" {
		return errors.New(errors.ErrMissingValue, "a test source path is required")
	}

	resolved, err := paths.Resolve(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArgumentProcessing,
			"error processing argument %q", argument).
			WithDetail("argument", argument)
	}

	if !filesystem.FileExists(e.fs, resolved) {
		return errors.Newf(errors.ErrInvalidPath,
			"the test source %q does not exist", resolved)
	}

	e.opts.Sources = paths.Dedupe(append(e.opts.Sources, resolved))
	return nil
}

// Execute performs no additional work
func (e *SourceExecutor) Execute() (Result, error) {
	return Success, nil
}
