package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/burstbuild/internal/app"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func requireExitCode(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	require.Equal(t, code, exitErr.Code)
	return exitErr
}

func TestHash(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "hash", "cc -c foo.c -o foo.o")
	require.NoError(t, err)
	assert.Equal(t, "00eb2d9e30d30266\n", out)

	out, _, err = execute(t, "hash", "--rspfile-content", "foo.c bar.c", "cc -c foo.c -o foo.o")
	require.NoError(t, err)
	assert.Equal(t, "b940b1d8f9d80550\n", out)
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "hash without command", args: []string{"hash"}, want: "accepts 1 arg(s)"},
		{name: "unknown flag", args: []string{"inspect", "--this-is-not-a-valid-flag"}, want: "unknown flag: --this-is-not-a-valid-flag"},
		{name: "unknown command", args: []string{"build"}, want: `unknown command "build"`},
		{name: "bad log level", args: []string{"--log-level", "loud", "hash", "x"}, want: "invalid log level 'loud'"},
		{name: "bad output", args: []string{"inspect", "-o", "xml", "build.hcl"}, want: "invalid output format 'xml'"},
		{name: "bad workers", args: []string{"inspect", "--workers", "0", "build.hcl"}, want: "invalid worker count 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tc.args...)

			exitErr := requireExitCode(t, err, 2)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "inspect")
	assert.Contains(t, out, "hash")
}

func TestInspect_JSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	manifest := filepath.Join(dir, "build.hcl")
	require.NoError(t, os.WriteFile(manifest, []byte(`
rule "cc" {
  command = "cc -c $in -o $out"
}
build {
  rule    = "cc"
  outputs = ["foo.o"]
  inputs  = ["foo.c"]
}
`), 0o600))

	// --- Act ---
	out, logs, err := execute(t, "--log-format", "json", "inspect", "-f", manifest, "-o", "json")

	// --- Assert ---
	require.NoError(t, err)
	var rep app.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Edges, 1)
	assert.Equal(t, "00eb2d9e30d30266", rep.Edges[0].Fingerprint)
	assert.Contains(t, logs, `"msg":"Graph inspected."`)
}

func TestInspect_RuntimeErrorKeepsType(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "inspect", filepath.Join(t.TempDir(), "absent.hcl"))

	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "load failures are not usage errors")
	assert.Contains(t, err.Error(), "error accessing path")
}

func TestEnvFile(t *testing.T) {
	t.Parallel()

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BURSTBUILD_LOG_FORMAT=xml\n"), 0o600))

	_, _, err := execute(t, "--env-file", envFile, "hash", "x")
	exitErr := requireExitCode(t, err, 2)
	assert.Contains(t, exitErr.Message, "invalid log format 'xml'")

	out, _, err := execute(t, "--env-file", envFile, "--log-format", "text", "hash", "")
	require.NoError(t, err, "flags override the env file")
	assert.Equal(t, "0000000000000000\n", out)
}
