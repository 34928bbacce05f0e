package execx

import (
	"bytes"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("syncing environment")

	t.Run("quits on done", func(t *testing.T) {
		updated, cmd := m.Update(doneMsg{})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
		assert.Contains(t, updated.(spinnerModel).View(), "✓")
	})

	t.Run("failure verdict", func(t *testing.T) {
		updated, _ := m.Update(doneMsg{err: errors.New("boom")})
		view := updated.(spinnerModel).View()
		assert.Contains(t, view, "✗")
		assert.Contains(t, view, "syncing environment")
	})

	t.Run("running view shows label", func(t *testing.T) {
		assert.Contains(t, m.View(), "syncing environment")
	})
}

func TestRunWithSpinner(t *testing.T) {
	t.Run("returns nil on success", func(t *testing.T) {
		var buf bytes.Buffer
		err := runWithSpinner(&buf, "working", func() error { return nil })
		assert.NoError(t, err)
	})

	t.Run("propagates the command error", func(t *testing.T) {
		var buf bytes.Buffer
		boom := errors.New("exit status 3")
		err := runWithSpinner(&buf, "working", func() error { return boom })
		assert.Equal(t, boom, err)
	})
}
