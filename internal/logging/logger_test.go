package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "todo.log")

	l, closer, err := New("info", file)
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("key", "todos").Msg("loaded list")
	closer()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"loaded list"`)
	assert.Contains(t, string(b), `"key":"todos"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.ErrorContains(t, err, "parse log level")
}

func TestComponent(t *testing.T) {
	file := filepath.Join(t.TempDir(), "todo.log")
	l, closer, err := New("debug", file)
	require.NoError(t, err)

	prev := log.Logger
	log.Logger = l
	t.Cleanup(func() { log.Logger = prev })

	Component("store").Info().Msg("hello")
	closer()

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"cmp":"store"`)
}
