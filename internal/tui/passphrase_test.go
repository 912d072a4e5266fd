// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"testing"

	"github.com/MKhiriev/go-enml/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m *PassphraseModel, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestPassphraseModel_Submit(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Hint: "pet", Cipher: "AES", KeyLength: 128, Attempt: 1})
	typeText(m, "s3cret")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	answer, ok := m.Answer()
	require.True(t, ok)
	assert.Equal(t, "s3cret", answer.Passphrase)
	assert.False(t, answer.RememberForSession)
	assert.False(t, m.Quit())
}

func TestPassphraseModel_RememberToggle(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Cipher: "AES", KeyLength: 128, Attempt: 1})
	typeText(m, "pw")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "[x] Remember")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	answer, ok := m.Answer()
	require.True(t, ok)
	assert.True(t, answer.RememberForSession)
	assert.Equal(t, "pw", answer.Passphrase)
}

func TestPassphraseModel_EmptyPassphraseRejected(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Attempt: 1})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Passphrase is required")

	_, ok := m.Answer()
	assert.False(t, ok)
}

func TestPassphraseModel_Skip(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Attempt: 1})
	typeText(m, "pw")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	_, ok := m.Answer()
	assert.False(t, ok)
	assert.False(t, m.Quit())
}

func TestPassphraseModel_Quit(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Attempt: 1})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Quit())
	_, ok := m.Answer()
	assert.False(t, ok)
}

func TestPassphraseModel_View(t *testing.T) {
	m := NewPassphraseModel(models.PassphraseRequest{Hint: "my cat", Cipher: "RC2", KeyLength: 64, Attempt: 2})
	typeText(m, "abc")

	view := m.View()
	assert.Contains(t, view, "my cat")
	assert.Contains(t, view, "RC2/64")
	assert.Contains(t, view, "Wrong passphrase, attempt 2")
	assert.NotContains(t, view, "abc")
}
