package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAltScreen_RequestSettles(t *testing.T) {
	a := newAltScreen(false)
	require.True(t, a.Supported())

	var seen []string
	cancel := a.OnChange(func(active string) { seen = append(seen, active) })

	var doneErr error
	called := 0
	a.Request("player", func(err error) {
		called++
		doneErr = err
	})
	assert.NotNil(t, a.drain(), "request queues a terminal command")
	assert.Nil(t, a.drain(), "drain empties the queue")
	assert.Equal(t, 0, called, "completion waits for the terminal")

	a.settle(altScreenMsg{node: "player", enter: true})
	assert.Equal(t, 1, called)
	require.NoError(t, doneErr)
	assert.Equal(t, "player", a.Active())
	assert.Equal(t, []string{"player"}, seen)

	a.Exit(func(error) { called++ })
	a.settle(altScreenMsg{})
	assert.Equal(t, 2, called)
	assert.Empty(t, a.Active())

	cancel()
	a.settle(altScreenMsg{})
	assert.Equal(t, []string{"player", ""}, seen, "cancelled listener is not notified")
}

func TestAltScreen_Leave(t *testing.T) {
	a := newAltScreen(false)
	assert.False(t, a.leave(), "nothing to leave")
	assert.Nil(t, a.drain())

	a.settle(altScreenMsg{node: "player", enter: true})
	assert.True(t, a.leave())
	assert.NotNil(t, a.drain())
}

func TestAltScreen_Disabled(t *testing.T) {
	assert.False(t, newAltScreen(true).Supported())
}
