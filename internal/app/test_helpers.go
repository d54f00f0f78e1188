package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteManifest writes src to a build.hcl file in a fresh temp dir and returns its path.
func WriteManifest(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

// SetupAppTest creates an App at debug level, returning it with its report
// and log buffers. Set BURSTBUILD_TEST_LOGS=true to print the logs.
func SetupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp := New(out, logs, valid)

	t.Cleanup(func() {
		if os.Getenv("BURSTBUILD_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}
