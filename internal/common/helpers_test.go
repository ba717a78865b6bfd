package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBOM(t *testing.T) {
	t.Parallel()

	data := []byte(`{"a":1}`)
	withBOM := WithBOM(data)

	assert.Len(t, withBOM, len(data)+3)
	assert.Equal(t, data, StripBOM(withBOM))
	assert.Equal(t, data, StripBOM(data))
}

func TestEnsureWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.cwt")
	assert.NoError(t, EnsureWritable(missing))

	empty := filepath.Join(dir, "empty.cwt")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	assert.NoError(t, EnsureWritable(empty))

	full := filepath.Join(dir, "full.cwt")
	require.NoError(t, os.WriteFile(full, []byte("x"), 0600))
	err := EnsureWritable(full)
	require.Error(t, err)
	assert.True(t, IsFileExistsError(err))
}

func TestResolveInside(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := ResolveInside(dir, "wallets/out.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wallets", "out.pdf"), got)

	got, err = ResolveInside(dir, filepath.Join(dir, "abs.json"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abs.json"), got)

	for _, bad := range []string{"", "   ", "../escape.json", ".", "a/../../b", "/etc/passwd"} {
		_, err := ResolveInside(dir, bad)
		assert.Error(t, err, bad)
	}
}
