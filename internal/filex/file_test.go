package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDir(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "deep", "tk.db")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureParentDir_StripsDSNDecorations(t *testing.T) {
	base := t.TempDir()
	path := "file:" + filepath.Join(base, "sub", "tk.db") + "?cache=shared"

	require.NoError(t, EnsureParentDir(path))

	_, err := os.Stat(filepath.Join(base, "sub"))
	require.NoError(t, err)
}

func TestEnsureParentDir_LeavesMemoryDSNsAlone(t *testing.T) {
	require.NoError(t, EnsureParentDir(":memory:"))
	require.NoError(t, EnsureParentDir("file::memory:?cache=shared"))
	require.NoError(t, EnsureParentDir(""))
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("tk.db"))
}
