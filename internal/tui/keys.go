// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	enter    key.Binding
	esc      key.Binding
	remember key.Binding
	quit     key.Binding
}

var keys = keyMap{
	enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "decrypt")),
	esc:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip block")),
	remember: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "remember for session")),
	quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func (k keyMap) help() string {
	bindings := []key.Binding{k.enter, k.remember, k.esc, k.quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " │ "
		}
		out += b.Help().Key + ": " + b.Help().Desc
	}
	return out
}
