// Package ui implements the terminal interface: login and register
// forms plus the todo dashboard.
package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a minimal single-line text input.
type field struct {
	label  string
	value  string
	masked bool
}

func (f *field) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	case tea.KeySpace:
		f.value += " "
	}
}

func (f *field) render(focused bool) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	shown := f.value
	if f.masked {
		shown = strings.Repeat("*", len([]rune(f.value)))
	}
	if focused {
		shown += "_"
	}
	return cursor + f.label + ": " + shown
}

// form is a vertical stack of fields with one focused at a time.
type form struct {
	fields  []*field
	focused int
}

func (f *form) next() {
	f.focused = (f.focused + 1) % len(f.fields)
}

func (f *form) prev() {
	f.focused = (f.focused - 1 + len(f.fields)) % len(f.fields)
}

func (f *form) handleKey(msg tea.KeyMsg) {
	f.fields[f.focused].handleKey(msg)
}

func (f *form) render(b *strings.Builder) {
	for i, fl := range f.fields {
		b.WriteString(fl.render(i == f.focused) + "\n")
	}
}

func (f *form) reset() {
	for _, fl := range f.fields {
		fl.value = ""
	}
	f.focused = 0
}
