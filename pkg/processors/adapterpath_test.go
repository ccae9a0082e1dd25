package processors_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/filesystem"
	"github.com/testrig-dev/testrig/pkg/options"
	"github.com/testrig-dev/testrig/pkg/processors"
	"github.com/testrig-dev/testrig/pkg/runsettings"
)

// newTestDeps builds deps on an in-memory filesystem and returns the memfs
// so tests can seed directories and files.
func newTestDeps(t *testing.T) (processors.Deps, afero.Fs) {
	t.Helper()
	memfs := afero.NewMemMapFs()
	return processors.Deps{
		FS:      filesystem.NewAferoFS(memfs),
		Store:   runsettings.New(),
		Options: options.New(),
	}, memfs
}

func mkdir(t *testing.T, memfs afero.Fs, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, memfs.MkdirAll(d, 0755))
	}
}

func TestAdapterPathInitialize(t *testing.T) {
	t.Run("valid directory commits to store and options", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/opt/adapters")

		exec := processors.NewAdapterPathExecutor(deps)
		require.NoError(t, exec.Initialize("/opt/adapters"))

		result, err := exec.Execute()
		require.NoError(t, err)
		assert.Equal(t, processors.Success, result)

		assert.Equal(t, "/opt/adapters", deps.Options.TestAdapterPath)
		stored, ok := deps.Store.QueryNode(runsettings.TestAdaptersPathsKey)
		require.True(t, ok)
		assert.Equal(t, "/opt/adapters", stored)
	})

	t.Run("missing value", func(t *testing.T) {
		deps, _ := newTestDeps(t)

		for _, arg := range []string{"", "   ", "\t"} {
			err := processors.NewAdapterPathExecutor(deps).Initialize(arg)
			require.Error(t, err, "argument %q", arg)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingValue),
				"argument %q should yield MISSING_VALUE, got %v", arg, err)
		}
	})

	t.Run("quoted-empty value", func(t *testing.T) {
		deps, _ := newTestDeps(t)

		// `""` and `" "` trim down to nothing; they must never resolve
		// to the working directory and merge it into the store.
		for _, arg := range []string{`""`, `" "`, `  ""  `} {
			err := processors.NewAdapterPathExecutor(deps).Initialize(arg)
			require.Error(t, err, "argument %q", arg)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingValue),
				"argument %q should yield MISSING_VALUE, got %v", arg, err)
		}

		assert.Empty(t, deps.Options.TestAdapterPath)
		_, ok := deps.Store.QueryNode(runsettings.TestAdaptersPathsKey)
		assert.False(t, ok, "store must stay untouched")
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		deps, _ := newTestDeps(t)

		err := processors.NewAdapterPathExecutor(deps).Initialize(`"/nonexistent/dir"`)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
	})

	t.Run("file is not a directory", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		require.NoError(t, afero.WriteFile(memfs, "/opt/adapter.dll", []byte("x"), 0644))

		err := processors.NewAdapterPathExecutor(deps).Initialize("/opt/adapter.dll")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
	})

	t.Run("quote and whitespace stripping", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/opt/adapters")

		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize(`  "/opt/adapters"  `))
		assert.Equal(t, "/opt/adapters", deps.Options.TestAdapterPath)
	})

	t.Run("malformed path wraps as argument processing error", func(t *testing.T) {
		deps, _ := newTestDeps(t)

		arg := "/opt\x00/adapters"
		err := processors.NewAdapterPathExecutor(deps).Initialize(arg)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrArgumentProcessing))
		assert.Equal(t, arg, errors.GetErrorDetails(err)["argument"],
			"error should carry the original argument text")
	})
}

func TestAdapterPathMerge(t *testing.T) {
	t.Run("new path appended after stored paths", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/a", "/b", "/c")
		deps.Store.UpdateNode(runsettings.TestAdaptersPathsKey, "/a;/b")

		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize("/c"))

		assert.Equal(t, "/a;/b;/c", deps.Options.TestAdapterPath)
		stored, _ := deps.Store.QueryNode(runsettings.TestAdaptersPathsKey)
		assert.Equal(t, "/a;/b;/c", stored)
	})

	t.Run("duplicate collapses preserving first occurrence", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/a", "/b")
		deps.Store.UpdateNode(runsettings.TestAdaptersPathsKey, "/a;/b")

		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize("/b"))

		assert.Equal(t, "/a;/b", deps.Options.TestAdapterPath)
	})

	t.Run("idempotent under repeated application", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/opt/adapters")

		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize("/opt/adapters"))
		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize("/opt/adapters"))

		assert.Equal(t, "/opt/adapters", deps.Options.TestAdapterPath)
		stored, _ := deps.Store.QueryNode(runsettings.TestAdaptersPathsKey)
		assert.Equal(t, "/opt/adapters", stored)
	})

	t.Run("empty segments in stored value discarded", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/a", "/b")
		deps.Store.UpdateNode(runsettings.TestAdaptersPathsKey, ";/a;;")

		require.NoError(t, processors.NewAdapterPathExecutor(deps).Initialize("/b"))

		assert.Equal(t, "/a;/b", deps.Options.TestAdapterPath)
	})

	t.Run("stale stored path fails fast and leaves store untouched", func(t *testing.T) {
		deps, memfs := newTestDeps(t)
		mkdir(t, memfs, "/a", "/c")
		// /b was configured earlier but no longer exists
		deps.Store.UpdateNode(runsettings.TestAdaptersPathsKey, "/a;/b")

		err := processors.NewAdapterPathExecutor(deps).Initialize("/c")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))

		stored, _ := deps.Store.QueryNode(runsettings.TestAdaptersPathsKey)
		assert.Equal(t, "/a;/b", stored, "failed update must not modify the store")
		assert.Empty(t, deps.Options.TestAdapterPath, "failed update must not modify options")
	})
}

func TestAdapterPathExecuteBeforeInitialize(t *testing.T) {
	deps, _ := newTestDeps(t)

	// Execute before Initialize is a silent no-op returning success.
	exec := processors.NewAdapterPathExecutor(deps)
	result, err := exec.Execute()
	require.NoError(t, err)
	assert.Equal(t, processors.Success, result)
	assert.Empty(t, deps.Options.TestAdapterPath)
}
