package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testrig-dev/testrig/pkg/config"
	"github.com/testrig-dev/testrig/pkg/errors"
	"github.com/testrig-dev/testrig/pkg/processors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunWithAdapterPath(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "run", "--test-adapter-path", dir, "--output-format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Test adapter path: "+dir)
}

func TestRunWithRepeatedAdapterPaths(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	out, err := execute(t, "run",
		"--test-adapter-path", a,
		"--test-adapter-path", b,
		"--output-format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, a+";"+b)
}

func TestRunWithMissingAdapterPath(t *testing.T) {
	_, err := execute(t, "run",
		"--test-adapter-path", filepath.Join(t.TempDir(), "missing"),
		"--output-format", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPath))
}

func TestRunSaveSettings(t *testing.T) {
	adapterDir := t.TempDir()
	outFile := filepath.Join(t.TempDir(), "effective.runsettings")

	_, err := execute(t, "run",
		"--test-adapter-path", adapterDir,
		"--save-settings", outFile,
		"--output-format", "text")
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<TestAdaptersPaths>"+adapterDir+"</TestAdaptersPaths>")
}

func TestBuildInvocations(t *testing.T) {
	cfg := &config.Config{
		Adapters: config.AdaptersConfig{DefaultPaths: "/d1;/d2"},
		Run:      config.RunConfig{SettingsFile: "/cfg.runsettings"},
	}

	t.Run("config defaults precede flag values", func(t *testing.T) {
		got := buildInvocations(cfg, "", []string{"/flag"}, []string{"/src.dll"})

		want := []processors.Invocation{
			{Name: processors.SettingsProcessorName, Argument: "/cfg.runsettings"},
			{Name: processors.AdapterPathProcessorName, Argument: "/d1"},
			{Name: processors.AdapterPathProcessorName, Argument: "/d2"},
			{Name: processors.AdapterPathProcessorName, Argument: "/flag"},
			{Name: processors.SourceProcessorName, Argument: "/src.dll"},
		}
		assert.Equal(t, want, got)
	})

	t.Run("settings flag overrides config", func(t *testing.T) {
		got := buildInvocations(cfg, "/flag.runsettings", nil, nil)
		require.NotEmpty(t, got)
		assert.Equal(t, "/flag.runsettings", got[0].Argument)
	})

	t.Run("empty config yields no settings invocation", func(t *testing.T) {
		got := buildInvocations(&config.Config{}, "", nil, nil)
		assert.Empty(t, got)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "testrig version")
}
