package corpus_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/stresser/internal/corpus"
)

func TestSaveAndReadInput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "corpus")
	store, err := corpus.New(dir)
	require.NoError(t, err)

	input := strings.Repeat("17 42 1000000\n", 10000)
	path, err := store.SaveInput(input)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".zst", filepath.Ext(path))

	// Generated inputs are repetitive; the stored file should be far
	// smaller than the raw text.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(input)/10))

	got, err := corpus.ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestSaveInputsGetDistinctNames(t *testing.T) {
	store, err := corpus.New(t.TempDir())
	require.NoError(t, err)

	first, err := store.SaveInput("a\n")
	require.NoError(t, err)
	second, err := store.SaveInput("a\n")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := corpus.ReadInput(filepath.Join(t.TempDir(), "nope.zst"))
	assert.Error(t, err)
}
