package processors

import (
	"sort"

	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/logging"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/registry"
	"github.com/testrig-dev/testrig/pkg/runsettings"
)

// Result signals the outcome of an executor's Execute phase
type Result int

const (
	// Success indicates the processor completed its work
	Success Result = iota
	// Fail indicates the processor could not complete
	Fail
)

// Executor performs the work for one occurrence of a flag. Initialize
// validates the argument and applies all side effects; Execute signals
// completion to the driver.
//
// Calling Execute before Initialize is a silent no-op returning Success.
// The surrounding driver always initializes first, so executors do not
// enforce the ordering themselves.
type Executor interface {
	Initialize(argument string) error
	Execute() (Result, error)
}

// Metadata describes a processor to the driver and the help system.
type Metadata struct {
	// Name is the registry key, e.g. "adapterpath"
	Name string

	// CommandName is the user-facing flag, e.g. "--test-adapter-path"
	CommandName string

	// Priority orders dispatch; lower runs earlier
	Priority int

	// AllowMultiple permits repeated occurrences of the flag
	AllowMultiple bool

	// HelpContent is the one-line flag description
	HelpContent string
}

// Deps are the shared collaborators injected into every executor. The
// store and options object are process-wide singletons owned by the
// driver; executors assume exclusive, sequential access.
type Deps struct {
	FS      filesystem.FS
	Store   *runsettings.Store
	Options *options.CommandLineOptions
}

// ExecutorFactory constructs an executor bound to the shared collaborators
type ExecutorFactory func(deps Deps) Executor

// Processor pairs a processor's metadata with its executor factory. Both
// are constructed eagerly at registration; nothing here is expensive
// enough to defer.
type Processor struct {
	Metadata    Metadata
	NewExecutor ExecutorFactory
}

// Dispatch priorities. Settings load before adapter paths so a supplied
// settings file is in place before paths merge into it; sources come last.
const (
	PrioritySettings    = 10
	PriorityAdapterPath = 20
	PrioritySource      = 30
)

var processorRegistry = registry.New[Processor]()

// Register adds a processor to the global registry
func Register(p Processor) error {
	return processorRegistry.Register(p.Metadata.Name, p)
}

// Get retrieves a processor by registry name
func Get(name string) (Processor, error) {
	return processorRegistry.Get(name)
}

// All returns every registered processor sorted by priority
func All() []Processor {
	names := processorRegistry.List()
	procs := make([]Processor, 0, len(names))
	for _, name := range names {
		p, err := processorRegistry.Get(name)
		if err != nil {
			continue
		}
		procs = append(procs, p)
	}
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].Metadata.Priority < procs[j].Metadata.Priority
	})
	return procs
}

// Invocation is one occurrence of a flag: the processor to run and the
// raw argument it was given.
type Invocation struct {
	Name     string
	Argument string
}

// Dispatch runs the given invocations in processor priority order,
// preserving command-line order within a processor. Each invocation is
// initialized and executed before the next one runs, so repeated flags
// merge against the store as it stands. The first error aborts the
// sequence.
func Dispatch(deps Deps, invocations []Invocation) error {
	logger := logging.GetLogger("processors")

	ordered := make([]Invocation, len(invocations))
	copy(ordered, invocations)
	// Unknown processors sort last; the loop below reports them.
	const unknownPriority = 1 << 30
	priority := func(inv Invocation) int {
		p, err := Get(inv.Name)
		if err != nil {
			return unknownPriority
		}
		return p.Metadata.Priority
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return priority(ordered[i]) < priority(ordered[j])
	})

	seen := make(map[string]bool)
	for _, inv := range ordered {
		proc, err := Get(inv.Name)
		if err != nil {
			return errors.Wrapf(err, errors.ErrNotFound, "unknown argument processor %q", inv.Name)
		}

		if seen[inv.Name] && !proc.Metadata.AllowMultiple {
			return errors.Newf(errors.ErrInvalidInput,
				"the %s argument may only be specified once", proc.Metadata.CommandName)
		}
		seen[inv.Name] = true

		logger.Debug().
			Str("processor", inv.Name).
			Str("argument", inv.Argument).
			Msg("Initializing argument processor")

		exec := proc.NewExecutor(deps)
		if err := exec.Initialize(inv.Argument); err != nil {
			return err
		}
		if result, err := exec.Execute(); err != nil {
			return err
		} else if result != Success {
			return errors.Newf(errors.ErrInternal,
				"argument processor %q did not complete", inv.Name)
		}
	}
	return nil
}
