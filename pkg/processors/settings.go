package processors

import (
	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/paths"
	"github.com/testrig-dev/testrig/pkg/runsettings"
)

// SettingsProcessorName is the registry name of the settings processor
const SettingsProcessorName = "settings"

// SettingsCommandName is the user-facing flag
const SettingsCommandName = "--settings"

func init() {
	if err := Register(Processor{
		Metadata: Metadata{
			Name:          SettingsProcessorName,
			CommandName:   SettingsCommandName,
			Priority:      PrioritySettings,
			AllowMultiple: false,
			HelpContent:   "Run-settings XML file to use for the run",
		},
		NewExecutor: NewSettingsExecutor,
	}); err != nil {
		panic(err)
	}
}

// SettingsExecutor loads a run-settings file into the shared store. It
// runs before the adapter path processor so adapter paths merge into the
// supplied document rather than an empty one.
type SettingsExecutor struct {
	fs    filesystem.FS
	store *runsettings.Store
	opts  *options.CommandLineOptions
}

// NewSettingsExecutor creates an executor bound to the shared collaborators
func NewSettingsExecutor(deps Deps) Executor {
	return &SettingsExecutor{
		fs:    deps.FS,
		store: deps.Store,
		opts:  deps.Options,
	}
}

// Initialize validates the file and replaces the shared store's document
func (e *SettingsExecutor) Initialize(argument string) error {
	value := paths.TrimQuotes(argument)
	if value == "" {
		return errors.Newf(errors.ErrMissingValue,
			"the %s argument requires a run-settings file path", SettingsCommandName)
	}

	resolved, err := paths.Resolve(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArgumentProcessing,
			"error processing argument %q", argument).
			WithDetail("argument", argument)
	}

	if !filesystem.FileExists(e.fs, resolved) {
		return errors.Newf(errors.ErrInvalidPath,
			"the run-settings file %q does not exist", resolved)
	}

	if err := e.store.LoadFrom(e.fs, resolved); err != nil {
		return errors.Wrapf(err, errors.ErrArgumentProcessing,
			"error processing argument %q", argument).
			WithDetail("argument", argument)
	}

	e.opts.SettingsFile = resolved
	return nil
}

// Execute performs no additional work
func (e *SettingsExecutor) Execute() (Result, error) {
	return Success, nil
}
