// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/internal/service"
	"github.com/MKhiriev/go-enml/internal/workers"
	"github.com/MKhiriev/go-enml/models"
	"github.com/atotto/clipboard"
)

type App struct {
	cfg       config.Converter
	files     []string
	notes     service.NoteContentService
	pool      *workers.Workers
	skipRules []models.SkipHTMLElementRule
	logger    *logger.Logger

	stdin     io.Reader
	stdout    io.Writer
	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte) error
	copy      func(string) error
}

// NewApp prepares a run over cfg.Files, or standard input when there are
// none. The skip rule file, if configured, is loaded here.
func NewApp(cfg config.StructuredConfig, notes service.NoteContentService, pool *workers.Workers, log *logger.Logger) (*App, error) {
	var rules []models.SkipHTMLElementRule
	if cfg.Converter.SkipRulesPath != "" {
		var err error
		if rules, err = config.LoadSkipRules(cfg.Converter.SkipRulesPath); err != nil {
			return nil, fmt.Errorf("load skip rules: %w", err)
		}
		log.Debug().Int("rules", len(rules)).Msg("skip rules loaded")
	}

	return &App{
		cfg:       cfg.Converter,
		files:     cfg.Files,
		notes:     notes,
		pool:      pool,
		skipRules: rules,
		logger:    log,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		readFile:  os.ReadFile,
		writeFile: func(name string, data []byte) error { return os.WriteFile(name, data, 0o644) },
		copy:      clipboard.WriteAll,
	}, nil
}

// Run converts every input. A failing input does not stop the others; the
// returned error joins all failures.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}
	defer a.notes.EndSession()

	inputs := a.files
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	jobs := make([]workers.Worker, len(inputs))
	for i, name := range inputs {
		jobs[i] = workers.WorkerFunc(func(ctx context.Context) (string, error) {
			return a.convert(ctx, name)
		})
	}
	results := a.pool.Run(ctx, jobs)

	var errs []error
	if len(inputs) == 1 {
		r := results[0]
		if r.Output != "" {
			if err := a.emit(r.Output); err != nil {
				errs = append(errs, err)
			}
		}
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
		return errors.Join(errs...)
	}

	for i, r := range results {
		fmt.Fprintf(a.stdout, "==> %s <==\n", inputs[i])
		if r.Output != "" {
			fmt.Fprintln(a.stdout, r.Output)
		}
		if r.Err != nil {
			fmt.Fprintf(a.stdout, "error: %v\n", r.Err)
			errs = append(errs, fmt.Errorf("%s: %w", inputs[i], r.Err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) convert(ctx context.Context, name string) (string, error) {
	log := a.logger.With().Str("input", name).Logger()

	content, err := a.read(name)
	if err != nil {
		return "", err
	}

	switch a.cfg.Mode {
	case config.ModeToHTML:
		markup, extra, err := a.notes.LoadNote(ctx, content)
		if err != nil {
			return "", err
		}
		log.Info().
			Int("encrypted", extra.NumEncryptedNodes).
			Int("decrypted", extra.NumDecryptedNodes).
			Int("todos", extra.NumTodoNodes).
			Msg("note converted to editor html")
		return markup, nil

	case config.ModeToENML:
		res, err := a.notes.SaveNote(ctx, content, a.skipRules)
		if err != nil {
			return "", err
		}
		for _, w := range res.Warnings {
			log.Warn().Str("issue", w.String()).Msg("converted note deviates from ENML")
		}
		return enml.SerializeDocument(res.Document), nil

	case config.ModeValidate:
		issues, err := a.notes.Validate(ctx, content)
		if err != nil {
			return "", err
		}
		if len(issues) == 0 {
			return MsgValidDocument, nil
		}
		lines := make([]string, len(issues))
		for i, issue := range issues {
			lines[i] = issue.String()
		}
		return strings.Join(lines, "\n"), fmt.Errorf("%w: %d issues", ErrInvalidDocument, len(issues))
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMode, a.cfg.Mode)
}

func (a *App) read(name string) (string, error) {
	if name == stdinName {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := a.readFile(name)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// emit writes the output of a single conversion.
func (a *App) emit(output string) error {
	if a.cfg.CopyToClipboard {
		if err := a.copy(output); err != nil {
			a.logger.Err(err).Msg("copy to clipboard failed")
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	if a.cfg.Output != "" {
		if err := a.writeFile(a.cfg.Output, []byte(output+"\n")); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(a.stdout, output)
	return err
}
