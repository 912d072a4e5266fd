// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-enml/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PassphraseModel is the Bubble Tea model of the passphrase prompt. It shows
// the hint of the encrypted block, a masked input and the "remember for
// session" switch.
type PassphraseModel struct {
	req      models.PassphraseRequest
	input    textinput.Model
	remember bool

	submitted bool
	cancelled bool
	quit      bool
	errMsg    string
}

// NewPassphraseModel creates the prompt for req with the input focused.
func NewPassphraseModel(req models.PassphraseRequest) *PassphraseModel {
	input := textinput.New()
	input.Placeholder = "passphrase"
	input.CharLimit = 256
	input.Width = 40
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return &PassphraseModel{req: req, input: input}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *PassphraseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled keys:
//   - enter  submits a non-empty passphrase.
//   - tab    toggles "remember for session".
//   - esc    skips the block.
//   - ctrl+c aborts the program.
//
// All other messages are forwarded to the input.
func (m *PassphraseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.remember):
			m.remember = !m.remember
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.input.Value() == "" {
				m.errMsg = "Passphrase is required"
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *PassphraseModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cipher     │ %s/%d\n", m.req.Cipher, m.req.KeyLength)
	if m.req.Hint != "" {
		fmt.Fprintf(&b, "Hint       │ %s\n", hintStyle.Render(m.req.Hint))
	}
	b.WriteString("Passphrase │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")
	fmt.Fprintf(&b, "\n%s Remember for this session\n", checkbox(m.remember))

	switch {
	case m.errMsg != "":
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	case m.req.Attempt > 1:
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Wrong passphrase, attempt %d", m.req.Attempt)))
		b.WriteString("\n")
	}

	return renderPage("DECRYPT ENCRYPTED TEXT", strings.TrimRight(b.String(), "\n"), keys.help())
}

// Answer returns the result of a finished prompt. ok is false unless the
// user submitted a passphrase.
func (m *PassphraseModel) Answer() (models.PassphraseAnswer, bool) {
	if !m.submitted {
		return models.PassphraseAnswer{}, false
	}
	return models.PassphraseAnswer{
		Passphrase:         m.input.Value(),
		RememberForSession: m.remember,
	}, true
}

// Quit reports whether the user aborted the program.
func (m *PassphraseModel) Quit() bool {
	return m.quit
}
