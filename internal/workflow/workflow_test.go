package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anonsum/anonsum/internal/config"
	"github.com/anonsum/anonsum/internal/logger"
	"github.com/anonsum/anonsum/internal/mask"
	"github.com/anonsum/anonsum/internal/registry"
)

// summarizerFunc adapts a function to the Summarizer interface.
type summarizerFunc func(ctx context.Context, text string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func newTestEngine(t *testing.T) *mask.Engine {
	t.Helper()
	reg, err := registry.Build(config.AnonymizeConfig{
		Organizations: []string{"Acme Corp"},
		Projects:      []string{"Phoenix"},
		People:        []string{"Jane Doe"},
	})
	require.NoError(t, err)
	return mask.NewEngine(reg, logger.Nop())
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRunHappyPath(t *testing.T) {
	tempDir := t.TempDir()
	var sent string

	summ := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		sent = text
		return "Summary: [PERSON_1] finished [PROJECT_1] at [ORG_1].", nil
	})

	pipeline := New(newTestEngine(t), summ, Options{TempDir: tempDir}, logger.Nop())

	result, err := pipeline.Run(context.Background(),
		"Jane Doe led the Phoenix effort at Acme Corp this week.")
	require.NoError(t, err)

	assert.Equal(t, "[PERSON_1] led the [PROJECT_1] effort at [ORG_1] this week.", result.Masked)
	assert.Equal(t, result.Masked, sent, "the summarizer must only ever see masked text")
	assert.Equal(t, 3, result.Substitutions)
	assert.True(t, result.PlaceholdersRestored)
	assert.Equal(t, "Summary: Jane Doe finished Phoenix at Acme Corp.", result.Final)

	// Temp artifacts are cleaned up when KeepTemp is off.
	assert.Empty(t, dirEntries(t, tempDir))
	assert.Empty(t, result.MaskedPath)
	assert.Empty(t, result.SummaryPath)
}

func TestRunKeepTemp(t *testing.T) {
	tempDir := t.TempDir()

	summ := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		return "[PROJECT_1] done.", nil
	})

	pipeline := New(newTestEngine(t), summ, Options{KeepTemp: true, TempDir: tempDir}, logger.Nop())

	result, err := pipeline.Run(context.Background(), "Phoenix shipped.")
	require.NoError(t, err)

	require.NotEmpty(t, result.MaskedPath)
	require.NotEmpty(t, result.SummaryPath)

	maskedData, err := os.ReadFile(result.MaskedPath)
	require.NoError(t, err)
	assert.Equal(t, "[PROJECT_1] shipped.", string(maskedData))

	summaryData, err := os.ReadFile(result.SummaryPath)
	require.NoError(t, err)
	assert.Equal(t, "[PROJECT_1] done.", string(summaryData))
}

func TestRunSummarizerFailure(t *testing.T) {
	failure := errors.New("upstream returned 401")

	summ := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		return "", failure
	})

	t.Run("aborts and cleans up", func(t *testing.T) {
		tempDir := t.TempDir()
		pipeline := New(newTestEngine(t), summ, Options{TempDir: tempDir}, logger.Nop())

		_, err := pipeline.Run(context.Background(), "Phoenix shipped.")
		require.ErrorIs(t, err, failure)
		assert.Empty(t, dirEntries(t, tempDir))
	})

	t.Run("keeps the masked intermediate for manual retry", func(t *testing.T) {
		tempDir := t.TempDir()
		pipeline := New(newTestEngine(t), summ, Options{KeepTemp: true, TempDir: tempDir}, logger.Nop())

		_, err := pipeline.Run(context.Background(), "Phoenix shipped.")
		require.ErrorIs(t, err, failure)

		entries := dirEntries(t, tempDir)
		require.Len(t, entries, 1)
		assert.True(t, strings.HasSuffix(entries[0], "-masked.md"))

		data, err := os.ReadFile(filepath.Join(tempDir, entries[0]))
		require.NoError(t, err)
		assert.Equal(t, "[PROJECT_1] shipped.", string(data))
	})
}

func TestRunParaphrasedSummary(t *testing.T) {
	summ := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		return "The team finished the big project.", nil
	})

	pipeline := New(newTestEngine(t), summ, Options{TempDir: t.TempDir()}, logger.Nop())

	result, err := pipeline.Run(context.Background(), "Phoenix shipped.")
	require.NoError(t, err)

	assert.False(t, result.PlaceholdersRestored)
	assert.Equal(t, "The team finished the big project.", result.Final)
}

func TestRunZeroSubstitutions(t *testing.T) {
	summ := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		return "A quiet week.", nil
	})

	pipeline := New(newTestEngine(t), summ, Options{TempDir: t.TempDir()}, logger.Nop())

	result, err := pipeline.Run(context.Background(), "General maintenance only.")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Substitutions)
	assert.Equal(t, "A quiet week.", result.Final)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No stray temp files left behind.
	assert.Equal(t, []string{"out.md"}, dirEntries(t, dir))
}
