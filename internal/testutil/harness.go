package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/quizgridgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an app-level test run.
type HarnessResult struct {
	LogOutput string
	Err       error
}

// RunAppTest provides a standardized harness for app-level tests. It writes
// the given deck files into a temporary directory, runs the app against that
// directory for the given duration, and returns the captured log output.
func RunAppTest(t *testing.T, files map[string]string, runFor time.Duration) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		DeckPath:     tmpDir,
		PollInterval: 50 * time.Millisecond,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig)

	ctx, cancel := context.WithTimeout(context.Background(), runFor)
	defer cancel()
	runErr := testApp.Run(ctx)

	if os.Getenv("QGG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
}
