package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/speak/internal/config"
)

func press(t *testing.T, m tuiModel, keys ...string) tuiModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(tuiModel)
	}
	return m
}

func TestTUI_RequiresTextOrFile(t *testing.T) {
	withSettings(t, config.Default())
	newSpeakCommand(t)

	m := initialTUIModel()
	for range idxSpeak {
		m = press(t, m, "down")
	}
	require.Equal(t, idxSpeak, m.cursor)

	m = press(t, m, "enter")
	assert.False(t, m.confirmed)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "text or file is required")
}

func TestTUI_EditTextAndSpeak(t *testing.T) {
	withSettings(t, config.Default())
	cmd := newSpeakCommand(t)

	m := initialTUIModel()
	m = press(t, m, "enter", "Helo", "backspace", "lo", " world", "enter")
	assert.Equal(t, "Hello world", m.items[idxText].value)
	assert.Equal(t, idxFile, m.cursor, "enter advances to the next item")

	for m.cursor != idxSpeak {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")
	require.True(t, m.confirmed)

	require.NoError(t, applySelections(cmd, m))
	assert.True(t, cmd.Flags().Changed("text"))
	assert.Equal(t, "Hello world", flagText)
	assert.False(t, cmd.Flags().Changed("file"))
	assert.False(t, cmd.Flags().Changed("voice"))
	assert.Equal(t, "wav", flagContainer)
	assert.Equal(t, 0, flagQuality)
}

func TestTUI_ContainerChangeRebuildsQualities(t *testing.T) {
	withSettings(t, config.Default())
	newSpeakCommand(t, "-c", "mp3", "-q", "3")

	m := initialTUIModel()
	assert.Equal(t, "mp3", m.items[idxContainer].value)
	assert.Equal(t, "3", m.items[idxQuality].value)
	assert.Len(t, m.items[idxQuality].options, 8)

	m.cursor = idxContainer
	// mp3 is second in the list; wav is first.
	m = press(t, m, "enter", "up", "enter")
	assert.Equal(t, "wav", m.items[idxContainer].value)
	assert.Len(t, m.items[idxQuality].options, 4)
	assert.Equal(t, "0", m.items[idxQuality].value, "level 3 does not exist for wav")
	assert.Equal(t, idxQuality, m.cursor)

	// A level that exists in both containers is kept.
	m.items[idxQuality].value = "-2"
	m.cursor = idxContainer
	m = press(t, m, "enter", "down", "enter")
	assert.Equal(t, "mp3", m.items[idxContainer].value)
	assert.Equal(t, "-2", m.items[idxQuality].value)
}

func TestTUI_CancelDiscards(t *testing.T) {
	withSettings(t, config.Default())
	cmd := newSpeakCommand(t)

	m := press(t, initialTUIModel(), "q")
	assert.True(t, m.cancelled)
	assert.Error(t, applySelections(cmd, m))
	assert.False(t, cmd.Flags().Changed("text"))
}
