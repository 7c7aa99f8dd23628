// Package service drives the terminal client's commands: it fetches lists
// through the api package and discloses them with a cursor.
package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/o6b7/travelbond/internal/cli/output"
	"github.com/o6b7/travelbond/internal/cli/prompter"
	"github.com/o6b7/travelbond/internal/disclosure"
)

// BrowseOptions sizes the disclosure cursor of a list command
type BrowseOptions struct {
	Initial int
	Step    int
	// All prints the whole list and never prompts
	All bool
}

type listView[T any] struct {
	Items      []T                `json:"items"`
	Disclosure disclosure.Control `json:"disclosure"`
	Total      int                `json:"total"`
}

// Browse prints the visible window of items and lets the user reveal more,
// collapse back, or quit. render returns the lines describing one item.
// In JSON mode it prints the first window and returns.
func Browse[T any](p *prompter.Prompter, opts BrowseOptions, title string, items []T, render func(T) []string) error {
	out := p.Out()
	if output.GetFormat() == output.FormatJSON {
		view, err := disclose(opts, items)
		if err != nil {
			return err
		}
		return output.JSON(out, view)
	}

	cursor, err := newCursor(opts, len(items))
	if err != nil {
		return err
	}

	if len(items) == 0 {
		output.Muted(out, "No %s found.", strings.ToLower(title))
		return nil
	}

	redraw := true
	for {
		ctl := disclosure.ControlFor(cursor, len(items))
		if redraw {
			renderWindow(out, title, disclosure.Window(cursor, items), ctl, render)
		}
		if opts.All || (!ctl.CanRevealMore && !ctl.CanReset) {
			return nil
		}

		answer, err := p.String(choices(ctl) + " > ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		redraw = true
		switch strings.ToLower(answer) {
		case "m", "more":
			if !ctl.CanRevealMore {
				redraw = false
				output.Muted(out, "Everything is already shown.")
				continue
			}
			cursor.RevealMore()
		case "l", "less":
			if !ctl.CanReset {
				redraw = false
				output.Muted(out, "Already showing the shortest list.")
				continue
			}
			cursor.Reset()
		case "q", "quit":
			return nil
		default:
			redraw = false
		}
	}
}

func newCursor(opts BrowseOptions, total int) (*disclosure.Cursor, error) {
	initial := opts.Initial
	if opts.All {
		initial = total
	}
	cursor, err := disclosure.New(initial, opts.Step)
	if err != nil {
		return nil, fmt.Errorf("invalid --initial/--step: %w", err)
	}
	return cursor, nil
}

// disclose builds the first window of items without prompting
func disclose[T any](opts BrowseOptions, items []T) (listView[T], error) {
	if items == nil {
		items = []T{}
	}
	cursor, err := newCursor(opts, len(items))
	if err != nil {
		return listView[T]{}, err
	}
	return listView[T]{
		Items:      disclosure.Window(cursor, items),
		Disclosure: disclosure.ControlFor(cursor, len(items)),
		Total:      len(items),
	}, nil
}

func renderWindow[T any](out io.Writer, title string, window []T, ctl disclosure.Control, render func(T) []string) {
	fmt.Fprintln(out)
	output.Heading(out, "%s (%d of %d)", title, ctl.Shown, ctl.Total)
	for i, item := range window {
		for j, line := range render(item) {
			if j == 0 {
				fmt.Fprintf(out, "%3d. %s\n", i+1, line)
				continue
			}
			fmt.Fprintf(out, "     %s\n", line)
		}
	}
	if ctl.Remaining > 0 {
		output.Muted(out, "     ... %d more", ctl.Remaining)
	}
}

func choices(ctl disclosure.Control) string {
	var opts []string
	if ctl.CanRevealMore {
		opts = append(opts, "[m]ore")
	}
	if ctl.CanReset {
		opts = append(opts, "[l]ess")
	}
	opts = append(opts, "[q]uit")
	return strings.Join(opts, " ")
}
