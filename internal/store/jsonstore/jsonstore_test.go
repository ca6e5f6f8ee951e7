package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetAbsent(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"))

	b, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestStore_SetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := New(dir)

	require.NoError(t, s.Set("todos", []byte(`[{"id":"a","text":"x","completed":false}]`)))
	require.NoError(t, s.Set("todos", []byte(`[]`)))

	b, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(b))

	onDisk, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(onDisk))
}

func TestStore_InvalidKey(t *testing.T) {
	s := New(t.TempDir())

	for _, key := range []string{"", "../todos", "a/b", ".hidden"} {
		_, err := s.Path(key)
		assert.Error(t, err, key)
		assert.Error(t, s.Set(key, []byte("[]")), key)
	}
}
