package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
anonymize:
  organizations:
    - Acme Corp
  projects:
    - Phoenix
  people:
    - Jane Doe
`

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestAnonymizeDeanonymizeRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigYAML), 0o644))

	inputPath := filepath.Join(dir, "accomplishment.md")
	original := "Jane Doe led the Phoenix effort at Acme Corp this week.\n"
	require.NoError(t, os.WriteFile(inputPath, []byte(original), 0o644))

	maskedPath := filepath.Join(dir, "masked.md")
	err := runCommand(t, "anonymize", inputPath, "-c", cfgPath, "-o", maskedPath)
	require.NoError(t, err)

	masked, err := os.ReadFile(maskedPath)
	require.NoError(t, err)
	assert.Equal(t, "[PERSON_1] led the [PROJECT_1] effort at [ORG_1] this week.\n", string(masked))

	restoredPath := filepath.Join(dir, "restored.md")
	err = runCommand(t, "deanonymize", maskedPath, "-c", cfgPath, "-o", restoredPath)
	require.NoError(t, err)

	restored, err := os.ReadFile(restoredPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(restored))
}

func TestAnonymizeMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigYAML), 0o644))

	err := runCommand(t, "anonymize", filepath.Join(dir, "missing.md"),
		"-c", cfgPath, "-o", filepath.Join(dir, "out.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading input file")
}

func TestAnonymizeMissingConfig(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "accomplishment.md")
	require.NoError(t, os.WriteFile(inputPath, []byte("text"), 0o644))

	err := runCommand(t, "anonymize", inputPath,
		"-c", filepath.Join(dir, "missing.yaml"), "-o", filepath.Join(dir, "out.md"))
	require.Error(t, err)
}

func TestAnonymizeBadRegistry(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("anonymize:\n  people:\n    - Jane Doe\n    - jane doe\n"), 0o644))

	inputPath := filepath.Join(dir, "accomplishment.md")
	require.NoError(t, os.WriteFile(inputPath, []byte("text"), 0o644))

	err := runCommand(t, "anonymize", inputPath, "-c", cfgPath, "-o", filepath.Join(dir, "out.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building name registry")
}
