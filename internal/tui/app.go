// Package tui is the terminal front end: it draws the page, maps keys onto
// page events, and shows the session journal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/panesync/internal/config"
	"github.com/jask/panesync/internal/journal"
	"github.com/jask/panesync/internal/page"
	"github.com/jask/panesync/widgets"
)

// Options wires the app's collaborators. Journal and Logger may be nil.
type Options struct {
	Config  config.Config
	Journal *journal.Journal
	Session string
	Logger  *zap.Logger
}

// App ties the page to the terminal.
type App struct {
	ctx         context.Context
	page        *page.Page
	keys        *KeyRegistry
	help        help.Model
	palette     textinput.Model
	paletteOpen bool
	matches     []Command
	render      *renderer
	theme       Theme
	focus       int
	width       int
	height      int
	showJournal bool
	showHelp    bool
	journalRows int
	journal     *journal.Journal
	session     string
	entries     []journal.Entry
	status      string
	statusErr   bool
	logger      *zap.Logger
}

type journalMsg []journal.Entry

type errMsg struct{ error }

// ConfigMsg carries a reloaded configuration into a running program.
type ConfigMsg config.Config

func New(ctx context.Context, p *page.Page, opts Options) (*App, error) {
	keys := NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(opts.Config.Keybindings); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = ":"
	ti.Placeholder = "left.inc, right.header, journal ..."
	ti.CharLimit = 64

	a := &App{
		ctx:     ctx,
		page:    p,
		keys:    keys,
		help:    help.New(),
		palette: ti,
		render:  newRenderer(),
		journal: opts.Journal,
		session: opts.Session,
		logger:  logger,
		width:   80,
	}
	a.applyUI(opts.Config)
	if a.journal != nil {
		if a.session == "" {
			a.session = journal.NewSession()
		}
		p.Store.Subscribe(a.journal.Recorder(ctx, a.session, func(err error) {
			a.logger.Warn("journal append failed", zap.Error(err))
			a.setError(fmt.Errorf("journal: %w", err))
		}))
	}
	return a, nil
}

func (a *App) applyUI(cfg config.Config) {
	a.theme = ThemeFor(cfg.UI.Accent)
	a.showJournal = cfg.UI.ShowJournal
	a.showHelp = cfg.UI.ShowHelp
	a.journalRows = cfg.Journal.Rows
	if a.journalRows <= 0 {
		a.journalRows = 8
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadJournal()
}

func (a *App) loadJournal() tea.Cmd {
	if a.journal == nil || !a.showJournal {
		return nil
	}
	j, session, rows := a.journal, a.session, a.journalRows
	return func() tea.Msg {
		entries, err := j.Recent(a.ctx, session, rows)
		if err != nil {
			return errMsg{fmt.Errorf("load journal: %w", err)}
		}
		return journalMsg(entries)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case tea.KeyMsg:
		if a.paletteOpen {
			return a.updatePalette(m)
		}
		b := a.keys.Lookup(m.String(), scopePage)
		if b == nil {
			return a, nil
		}
		return a.run(b.Action)
	case journalMsg:
		a.entries = []journal.Entry(m)
	case ConfigMsg:
		a.applyUI(config.Config(m))
		a.setStatus("config reloaded")
		return a, a.loadJournal()
	case errMsg:
		a.setError(m.error)
	}
	return a, nil
}

func (a *App) run(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case actionQuit:
		return a, tea.Quit
	case actionIncrement:
		return a.fire(page.ControlIncrement)
	case actionDecrement:
		return a.fire(page.ControlDecrement)
	case actionChangeHeader:
		return a.fire(page.ControlHeaderText)
	case actionChangeChildren:
		return a.fire(page.ControlChildrenText)
	case actionFocusNext:
		a.focus = (a.focus + 1) % len(page.Targets())
	case actionFocusPrev:
		a.focus = (a.focus + len(page.Targets()) - 1) % len(page.Targets())
	case actionFocusHeader:
		a.focus = 0
	case actionFocusLeft:
		a.focus = 1
	case actionFocusRight:
		a.focus = 2
	case actionToggleJournal:
		a.showJournal = !a.showJournal
		return a, a.loadJournal()
	case actionToggleHelp:
		a.showHelp = !a.showHelp
	case actionCommandPalette:
		a.paletteOpen = true
		a.palette.SetValue("")
		a.matches = rankCommands("", commandCatalog())
		return a, a.palette.Focus()
	}
	return a, nil
}

// Focused returns the view that receives control keys.
func (a *App) Focused() page.Target {
	return page.Targets()[a.focus]
}

func (a *App) fire(c page.Control) (tea.Model, tea.Cmd) {
	return a.apply(page.EventFor(a.Focused(), c))
}

func (a *App) apply(e page.Event) (tea.Model, tea.Cmd) {
	a.setStatus("")
	if err := a.page.Apply(e); err != nil {
		if errors.Is(err, page.ErrUnknownEvent) {
			a.setStatus(fmt.Sprintf("%s has no %q control", e.Target(), e.Control()))
			return a, nil
		}
		a.logger.Error("apply event", zap.String("event", string(e)), zap.Error(err))
		a.setError(err)
		return a, nil
	}
	if !a.statusErr {
		a.setStatus(string(e))
	}
	return a, a.loadJournal()
}

func (a *App) updatePalette(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(m.String(), scopePalette); b != nil {
		switch b.Action {
		case actionClose:
			a.closePalette()
			return a, nil
		case actionConfirm:
			query := a.palette.Value()
			a.closePalette()
			matches := rankCommands(query, commandCatalog())
			if len(matches) == 0 {
				a.setStatus(fmt.Sprintf("no command matches %q", query))
				return a, nil
			}
			cmd := matches[0]
			if cmd.Event != "" {
				return a.apply(cmd.Event)
			}
			return a.run(cmd.Action)
		case actionQuit:
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.palette, cmd = a.palette.Update(m)
	a.matches = rankCommands(a.palette.Value(), commandCatalog())
	return a, cmd
}

func (a *App) closePalette() {
	a.paletteOpen = false
	a.palette.Blur()
	a.matches = nil
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = "error: " + err.Error()
	a.statusErr = true
}

func (a *App) View() string {
	body := a.render.page(a.page, pageLayout{
		width:       a.width,
		focus:       a.Focused(),
		theme:       a.theme,
		showJournal: a.showJournal,
		journalRows: a.journalRows,
		entries:     a.entries,
	})
	status := a.theme.Status.Render(a.status)
	if a.statusErr {
		status = a.theme.Error.Render(a.status)
	}
	body += "\n" + status
	if a.showHelp {
		body += "\n" + a.help.ShortHelpView(a.keys.HelpBindings(scopePage))
	}
	if a.paletteOpen {
		body = a.overlayPalette(body)
	}
	return body
}

const paletteMatches = 5

func (a *App) overlayPalette(body string) string {
	lines := []string{a.palette.View()}
	for i, c := range a.matches {
		if i == paletteMatches {
			break
		}
		lines = append(lines, a.theme.Row.Render(fmt.Sprintf("%-16s %s", c.Name, c.Help)))
	}
	if len(a.matches) == 0 {
		lines = append(lines, a.theme.Status.Render("no matches"))
	}
	height := max(a.height, strings.Count(body, "\n")+1)
	return widgets.RenderPopup(body, strings.Join(lines, "\n"), max(minPageWidth, a.width), height, a.theme.Accent)
}
