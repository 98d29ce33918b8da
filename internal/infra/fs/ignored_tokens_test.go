package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ignored_tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadIgnoredTokens(t *testing.T) {
	path := writeFile(t, `{"tokens": [" AAA ", "", "BBB"]}`)

	tokens, err := LoadIgnoredTokens(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, tokens)
}

func TestLoadIgnoredTokensMissingOrEmpty(t *testing.T) {
	for _, path := range []string{
		"",
		filepath.Join(t.TempDir(), "nope.json"),
		writeFile(t, "  "),
		writeFile(t, "{}"),
	} {
		tokens, err := LoadIgnoredTokens(path)
		require.NoError(t, err, path)
		assert.Empty(t, tokens, path)
	}
}

func TestLoadIgnoredTokensMalformed(t *testing.T) {
	_, err := LoadIgnoredTokens(writeFile(t, `["AAA"`))
	assert.ErrorContains(t, err, "failed to parse ignored tokens JSON")
}
