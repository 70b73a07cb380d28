package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"globalsort/internal/config"
	"globalsort/internal/menu"
	"globalsort/internal/session"
)

const menuHelp = `Sorting moves every file in a directory into a folder named after its
category (Music/, Documents/, ...). Subfolders follow the category of most
of the files they contain. Unknown extensions go to the fallback folder.
Every move is recorded; "Undo all moves" puts everything back.`

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(s *session.Session) error {
				m, err := buildMenu(s)
				if err != nil {
					return err
				}
				return m.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}

func buildMenu(s *session.Session) (*menu.Menu, error) {
	var entries []menu.Entry
	add := func(label string, action menu.Action) {
		entries = append(entries, menu.Entry{Key: strconv.Itoa(len(entries) + 1), Label: label, Action: action})
	}

	for _, dir := range s.Config().Sort.LibraryDirs {
		add("Sort "+filepath.Base(dir), func(ctx context.Context, p *menu.Prompt) error {
			printSortResult(newPrinter(p.Out()), s.Sort(ctx, dir))
			return nil
		})
	}
	add("Sort a specific folder", func(ctx context.Context, p *menu.Prompt) error {
		answer, err := p.Ask("Folder to sort: ")
		if err != nil {
			return err
		}
		if answer == "" {
			p.Warn("No folder given.")
			return nil
		}
		dir, err := config.ExpandPath(answer)
		if err != nil {
			return err
		}
		printSortResult(newPrinter(p.Out()), s.Sort(ctx, dir))
		return nil
	})
	add("Sort all folders", func(ctx context.Context, p *menu.Prompt) error {
		printBatchResult(newPrinter(p.Out()), s.SortAll(ctx))
		return nil
	})
	add("Manage custom folders", func(_ context.Context, p *menu.Prompt) error {
		return manageFolders(s, p)
	})
	add("Manage extensions", func(_ context.Context, p *menu.Prompt) error {
		return manageExtensions(s, p)
	})
	add("Undo all moves", func(ctx context.Context, p *menu.Prompt) error {
		ok, err := p.Confirm("Move every recorded entry back?", false)
		if err != nil || !ok {
			return err
		}
		report, err := s.UndoAll(ctx)
		if err != nil {
			return err
		}
		printUndoReport(newPrinter(p.Out()), report)
		return nil
	})
	add("Help", func(_ context.Context, p *menu.Prompt) error {
		p.Printf("%s\n", menuHelp)
		return nil
	})
	add("Quit", func(context.Context, *menu.Prompt) error {
		return menu.ErrQuit
	})

	return menu.New("GlobalSort", entries...)
}

func manageFolders(s *session.Session, p *menu.Prompt) error {
	action, err := p.Ask("list, add, or remove? ")
	if err != nil {
		return err
	}
	out := newPrinter(p.Out())
	switch strings.ToLower(action) {
	case "list", "l":
		list := s.Folders().List()
		if len(list) == 0 {
			p.Printf("No custom folders.\n")
			return nil
		}
		existing := make(map[string]struct{})
		for _, f := range s.Folders().Existing() {
			existing[f.Label] = struct{}{}
		}
		for _, f := range list {
			if _, ok := existing[f.Label]; ok {
				p.Printf("  %-12s %s\n", f.Label, f.Path)
			} else {
				p.Printf("  %-12s %s (missing)\n", f.Label, f.Path)
			}
		}
		return nil
	case "add", "a":
		label, err := p.Ask("Label: ")
		if err != nil {
			return err
		}
		path, err := p.Ask("Path (empty for current directory): ")
		if err != nil {
			return err
		}
		entry, err := s.Folders().Add(label, path)
		if err := reportPersistWarning(out, err); err != nil {
			return err
		}
		p.Success("Folder %s -> %s saved.", entry.Label, entry.Path)
		return nil
	case "remove", "r":
		label, err := p.Ask("Label: ")
		if err != nil {
			return err
		}
		if err := reportPersistWarning(out, s.Folders().Remove(label)); err != nil {
			return err
		}
		p.Success("Folder %s removed.", label)
		return nil
	default:
		return fmt.Errorf("unknown folder action %q", action)
	}
}

func manageExtensions(s *session.Session, p *menu.Prompt) error {
	action, err := p.Ask("list, add, or remove? ")
	if err != nil {
		return err
	}
	out := newPrinter(p.Out())
	switch strings.ToLower(action) {
	case "list", "l":
		for _, entry := range s.Registry().Entries() {
			p.Printf("  %-10s %s\n", entry.Extension, entry.Category)
		}
		return nil
	case "add", "a":
		ext, err := p.Ask("Extension: ")
		if err != nil {
			return err
		}
		category, err := p.Ask("Category: ")
		if err != nil {
			return err
		}
		if err := reportPersistWarning(out, s.Registry().Add(ext, category)); err != nil {
			return err
		}
		p.Success("Mapped %s to %s.", ext, category)
		return nil
	case "remove", "r":
		ext, err := p.Ask("Extension: ")
		if err != nil {
			return err
		}
		if err := reportPersistWarning(out, s.Registry().Remove(ext)); err != nil {
			return err
		}
		p.Success("Removed %s.", ext)
		return nil
	default:
		return fmt.Errorf("unknown extension action %q", action)
	}
}
