package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/panesync/internal/page"
)

// Command is one entry of the command palette. It either fires a page event
// or runs a UI action.
type Command struct {
	Name   string
	Help   string
	Event  page.Event
	Action Action
}

func commandCatalog() []Command {
	out := make([]Command, 0, len(page.Events())+6)
	for _, e := range page.Events() {
		out = append(out, Command{Name: string(e), Help: string(e.Target()) + ": " + e.Label(), Event: e})
	}
	out = append(out,
		Command{Name: "focus.header", Help: "focus header", Action: actionFocusHeader},
		Command{Name: "focus.left", Help: "focus left container", Action: actionFocusLeft},
		Command{Name: "focus.right", Help: "focus right container", Action: actionFocusRight},
		Command{Name: "journal", Help: "toggle journal pane", Action: actionToggleJournal},
		Command{Name: "help", Help: "toggle key help", Action: actionToggleHelp},
		Command{Name: "quit", Help: "quit", Action: actionQuit},
	)
	return out
}

type scoredCommand struct {
	cmd   Command
	score int
}

// rankCommands orders catalog entries by how well they match query: exact
// names first, then prefixes, then substrings, then close edits. Entries too
// far from the query are dropped.
func rankCommands(query string, catalog []Command) []Command {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Command(nil), catalog...)
	}
	limit := max(2, len(q)/2)
	var scored []scoredCommand
	for _, c := range catalog {
		name := strings.ToLower(c.Name)
		var score int
		switch {
		case name == q:
			score = 0
		case strings.HasPrefix(name, q):
			score = 100 + len(name) - len(q)
		case strings.Contains(name, q):
			score = 200 + strings.Index(name, q)
		default:
			d := levenshtein.ComputeDistance(q, name)
			if d > limit {
				continue
			}
			score = 300 + d
		}
		scored = append(scored, scoredCommand{cmd: c, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score < scored[j].score })
	out := make([]Command, len(scored))
	for i, s := range scored {
		out[i] = s.cmd
	}
	return out
}
