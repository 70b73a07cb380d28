package menu_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"globalsort/internal/menu"
)

func TestNewRejectsDuplicateKeys(t *testing.T) {
	noop := func(context.Context, *menu.Prompt) error { return nil }
	_, err := menu.New("t", menu.Entry{Key: "1", Label: "a", Action: noop}, menu.Entry{Key: "1", Label: "b", Action: noop})
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if _, err := menu.New("t", menu.Entry{Key: "1", Label: "a"}); err == nil {
		t.Fatal("expected missing action error")
	}
}

func TestRunDispatchesUntilQuit(t *testing.T) {
	var calls []string
	m, err := menu.New("Test menu",
		menu.Entry{Key: "1", Label: "Echo", Action: func(_ context.Context, p *menu.Prompt) error {
			answer, err := p.Ask("Say: ")
			if err != nil {
				return err
			}
			calls = append(calls, answer)
			return nil
		}},
		menu.Entry{Key: "2", Label: "Fail", Action: func(context.Context, *menu.Prompt) error {
			return errors.New("boom")
		}},
		menu.Entry{Key: "0", Label: "Quit", Action: func(context.Context, *menu.Prompt) error {
			return menu.ErrQuit
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("1\nhello\n9\n2\n\n0\n1\nnever\n")
	var out bytes.Buffer
	if err := m.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(calls) != 1 || calls[0] != "hello" {
		t.Fatalf("calls = %v", calls)
	}
	text := out.String()
	for _, want := range []string{"Test menu", "1) Echo", "Invalid choice \"9\"", "Error: boom"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	m, err := menu.New("t", menu.Entry{Key: "1", Label: "x", Action: func(context.Context, *menu.Prompt) error { return nil }})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Run(context.Background(), strings.NewReader("1\n1"), &bytes.Buffer{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunHonorsCancelledContext(t *testing.T) {
	m, err := menu.New("t")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx, strings.NewReader("1\n"), &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestConfirmDefaults(t *testing.T) {
	p := menu.NewPrompt(strings.NewReader("\nn\nYES\n"), &bytes.Buffer{})
	for i, want := range []bool{true, false, true} {
		got, err := p.Confirm("ok?", true)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("answer %d = %v, want %v", i, got, want)
		}
	}
}
