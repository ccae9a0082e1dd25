package processors

import (
	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/logging"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/paths"
	"github.com/testrig-dev/testrig/pkg/runsettings"
)

// AdapterPathProcessorName is the registry name of the adapter path processor
const AdapterPathProcessorName = "adapterpath"

// AdapterPathCommandName is the user-facing flag
const AdapterPathCommandName = "--test-adapter-path"

func init() {
	if err := Register(Processor{
		Metadata: Metadata{
			Name:          AdapterPathProcessorName,
			CommandName:   AdapterPathCommandName,
			Priority:      PriorityAdapterPath,
			AllowMultiple: true,
			HelpContent:   "Directory containing custom test adapters; may be repeated, values accumulate",
		},
		NewExecutor: NewAdapterPathExecutor,
	}); err != nil {
		panic(err)
	}
}

// AdapterPathExecutor validates a directory argument, re-validates the
// adapter paths already recorded in the run-settings store, and commits
// the merged, deduplicated list back to the store and the shared options
// object.
type AdapterPathExecutor struct {
	fs    filesystem.FS
	store *runsettings.Store
	opts  *options.CommandLineOptions

	initialized bool
}

// NewAdapterPathExecutor creates an executor bound to the shared collaborators
func NewAdapterPathExecutor(deps Deps) Executor {
	return &AdapterPathExecutor{
		fs:    deps.FS,
		store: deps.Store,
		opts:  deps.Options,
	}
}

// Initialize validates the argument and applies the merge. The store and
// options object are only written after every path, new and previously
// stored, has passed the directory check.
func (e *AdapterPathExecutor) Initialize(argument string) error {
	// A quoted-empty argument ("") trims down to nothing and must not
	// resolve to the working directory.
	value := paths.TrimQuotes(argument)
	if value == "" {
		return errors.Newf(errors.ErrMissingValue,
			"the %s argument requires a directory path", AdapterPathCommandName)
	}

	resolved, err := paths.Resolve(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArgumentProcessing,
			"error processing argument %q", argument).
			WithDetail("argument", argument)
	}

	if !filesystem.DirExists(e.fs, resolved) {
		return errors.Newf(errors.ErrInvalidPath,
			"the test adapter path %q does not exist or is not a directory", resolved)
	}

	existing, _ := e.store.QueryNode(runsettings.TestAdaptersPathsKey)

	var merged []string
	for _, segment := range paths.SplitList(existing) {
		prior, err := paths.Resolve(paths.TrimQuotes(segment))
		if err != nil {
			return errors.Wrapf(err, errors.ErrArgumentProcessing,
				"error processing argument %q", argument).
				WithDetail("argument", argument)
		}
		// A previously valid path that has since been removed invalidates
		// the entire update.
		if !filesystem.DirExists(e.fs, prior) {
			return errors.Newf(errors.ErrInvalidPath,
				"the configured test adapter path %q does not exist or is not a directory", prior)
		}
		merged = append(merged, prior)
	}

	merged = paths.Dedupe(append(merged, resolved))
	joined := paths.JoinList(merged)

	e.store.UpdateNode(runsettings.TestAdaptersPathsKey, joined)
	e.opts.TestAdapterPath = joined

	e.initialized = true
	return nil
}

// Execute performs no additional work; all effects are applied during
// Initialize. Calling it before Initialize silently succeeds.
func (e *AdapterPathExecutor) Execute() (Result, error) {
	if !e.initialized {
		logger := logging.GetLogger("adapterpath")
		logger.Trace().Msg("Execute called without Initialize; nothing to do")
	}
	return Success, nil
}
