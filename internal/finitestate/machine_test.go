package finitestate

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	t.Parallel()

	m, err := New(slog.DiscardHandler)
	require.NoError(t, err)
	assert.Equal(t, StatusNew, m.GetState())

	for _, s := range []string{StatusBooting, StatusRunning, StatusStopping, StatusStopped} {
		require.NoError(t, m.Transition(s))
		assert.Equal(t, s, m.GetState())
	}
}

func TestInvalidTransition(t *testing.T) {
	t.Parallel()

	m, err := New(slog.DiscardHandler)
	require.NoError(t, err)

	require.Error(t, m.Transition(StatusStopped))
	assert.Equal(t, StatusNew, m.GetState())

	require.NoError(t, m.SetState(StatusError))
	assert.Equal(t, StatusError, m.GetState())
}
