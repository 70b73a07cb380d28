package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrQuit ends Run without error when returned by an action.
	ErrQuit = errors.New("quit menu")
	// ErrUnknownChoice reports a key with no entry.
	ErrUnknownChoice = errors.New("unknown menu choice")
)

// Action handles one menu choice.
type Action func(ctx context.Context, p *Prompt) error

// Entry binds a key to an action.
type Entry struct {
	Key    string
	Label  string
	Action Action
}

// Menu is an ordered dispatch table.
type Menu struct {
	title   string
	entries []Entry
	index   map[string]int
}

// New builds a menu. Keys must be unique and non-empty.
func New(title string, entries ...Entry) (*Menu, error) {
	m := &Menu{title: title, index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			return nil, fmt.Errorf("menu entry %q has no key", entry.Label)
		}
		if entry.Action == nil {
			return nil, fmt.Errorf("menu entry %q has no action", key)
		}
		if _, dup := m.index[key]; dup {
			return nil, fmt.Errorf("duplicate menu key %q", key)
		}
		entry.Key = key
		m.index[key] = len(m.entries)
		m.entries = append(m.entries, entry)
	}
	return m, nil
}

// Entries returns the table in display order.
func (m *Menu) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Dispatch runs the action bound to key.
func (m *Menu) Dispatch(ctx context.Context, key string, p *Prompt) error {
	i, ok := m.index[strings.TrimSpace(key)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChoice, key)
	}
	return m.entries[i].Action(ctx, p)
}

// Render writes the title and numbered choices.
func (m *Menu) Render(p *Prompt) {
	p.title(m.title)
	for _, entry := range m.entries {
		p.Printf("  %s) %s\n", entry.Key, entry.Label)
	}
}

// Run loops reading choices from in until an action returns ErrQuit, the
// input ends, or ctx is cancelled. Action errors are printed and the loop
// continues.
func (m *Menu) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	p := NewPrompt(in, out)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.Render(p)
		choice, err := p.Ask("Choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "" {
			continue
		}
		err = m.Dispatch(ctx, choice, p)
		switch {
		case err == nil:
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrUnknownChoice):
			p.Warn("Invalid choice %q, pick one of the numbers above.", choice)
		case errors.Is(err, io.EOF):
			return nil
		default:
			p.Error("Error: %v", err)
		}
	}
}
