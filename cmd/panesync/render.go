package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/panesync/internal/logging"
	"github.com/jask/panesync/internal/page"
	"github.com/jask/panesync/internal/state"
	"github.com/jask/panesync/internal/tui"
)

var (
	renderEvents []string
	renderScript string
	renderWidth  int
	renderState  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Apply events to a fresh page and print it",
	Long: `Builds a fresh page, applies the given events in order and prints the
resulting page as text.

Events are "target.control" pairs: header.inc, header.dec, left.inc,
left.dec, left.header, left.children, right.inc, right.dec, right.header,
right.children. "left+" and "left-" are shorthands for counter controls.

Example:
  panesync render -e left+ -e left+ -e right.header
  panesync render --script demo.toml`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringArrayVarP(&renderEvents, "event", "e", nil, "event to apply (repeatable)")
	renderCmd.Flags().StringVar(&renderScript, "script", "", "TOML file with [[step]] event/repeat entries")
	renderCmd.Flags().IntVar(&renderWidth, "width", 80, "page width in cells")
	renderCmd.Flags().BoolVar(&renderState, "state", false, "also print the shared state tree")
}

// script is the TOML shape accepted by --script.
type script struct {
	Step []scriptStep `toml:"step"`
}

type scriptStep struct {
	Event  string `toml:"event"`
	Repeat int    `toml:"repeat"`
}

func loadScript(path string) ([]page.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s script
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	var out []page.Event
	for i, step := range s.Step {
		e, err := page.ParseEvent(step.Event)
		if err != nil {
			return nil, fmt.Errorf("script step %d: %w", i+1, err)
		}
		n := max(1, step.Repeat)
		for range n {
			out = append(out, e)
		}
	}
	return out, nil
}

func collectEvents() ([]page.Event, error) {
	var events []page.Event
	if renderScript != "" {
		scripted, err := loadScript(renderScript)
		if err != nil {
			return nil, err
		}
		events = append(events, scripted...)
	}
	for _, raw := range renderEvents {
		e, err := page.ParseEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	events, err := collectEvents()
	if err != nil {
		return err
	}
	store := state.NewStore()
	store.Subscribe(logging.DispatchLogger(logger))
	p := page.New(store)
	defer p.Close()

	if err := p.ApplyAll(events); err != nil {
		return err
	}
	logger.Debug("rendered page", zap.Int("events", len(events)))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tui.RenderPage(p, renderWidth, tui.ThemeFor(cfg.UI.Accent)))
	if renderState {
		fmt.Fprintln(out, formatState(store.State()))
	}
	return nil
}

func formatState(s state.GlobalState) string {
	return fmt.Sprintf("header: {headerString: %q, headerNumber: %d}\nchildren: {childrenString: %q, leftChildrenNumber: %d, rightChildrenNumber: %d}",
		s.Header.HeaderString, s.Header.HeaderNumber,
		s.Children.ChildrenString, s.Children.LeftChildrenNumber, s.Children.RightChildrenNumber)
}
