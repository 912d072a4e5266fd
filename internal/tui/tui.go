// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal passphrase prompt used to decrypt encrypted
// note blocks.
package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI implements service.PassphrasePrompter on the terminal. Prompts are
// serialized: batch conversions share one terminal.
type TUI struct {
	mu     sync.Mutex
	in     io.Reader
	out    io.Writer
	logger *logger.Logger
}

// New returns a prompter drawing on stderr, so converted output on stdout
// stays clean.
func New(log *logger.Logger) *TUI {
	return &TUI{in: os.Stdin, out: os.Stderr, logger: log}
}

// Prompt shows the passphrase prompt for req and blocks until the user
// answers. ok is false when the block was skipped; ErrUserQuit is returned
// when the user aborted.
func (t *TUI) Prompt(ctx context.Context, req models.PassphraseRequest) (models.PassphraseAnswer, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	model := NewPassphraseModel(req)
	finalModel, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.PassphraseAnswer{}, false, ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return models.PassphraseAnswer{}, false, ErrUserQuit
		}
		t.logger.Err(err).Str("func", "TUI.Prompt").Msg("passphrase prompt failed")
		return models.PassphraseAnswer{}, false, err
	}

	result, ok := finalModel.(*PassphraseModel)
	if !ok {
		return models.PassphraseAnswer{}, false, tea.ErrProgramKilled
	}
	if result.Quit() {
		return models.PassphraseAnswer{}, false, ErrUserQuit
	}

	answer, ok := result.Answer()
	return answer, ok, nil
}
