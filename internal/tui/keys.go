package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/panesync/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopePage    = "page"
	scopePalette = "palette"
)

const (
	actionQuit           Action = "quit"
	actionFocusNext      Action = "focus_next"
	actionFocusPrev      Action = "focus_prev"
	actionFocusHeader    Action = "focus_header"
	actionFocusLeft      Action = "focus_left"
	actionFocusRight     Action = "focus_right"
	actionIncrement      Action = "increment"
	actionDecrement      Action = "decrement"
	actionChangeHeader   Action = "change_header"
	actionChangeChildren Action = "change_children"
	actionToggleJournal  Action = "toggle_journal"
	actionToggleHelp     Action = "toggle_help"
	actionCommandPalette Action = "command_palette"
	actionClose          Action = "close"
	actionConfirm        Action = "confirm"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopePage, actionIncrement, []string{"+", "=", "up", "k"}, "+1")
	reg(scopePage, actionDecrement, []string{"-", "down", "j"}, "-1")
	reg(scopePage, actionChangeHeader, []string{"h"}, "change header")
	reg(scopePage, actionChangeChildren, []string{"c"}, "change children")
	reg(scopePage, actionFocusNext, []string{"tab", "right", "l"}, "next view")
	reg(scopePage, actionFocusPrev, []string{"shift+tab", "left"}, "prev view")
	reg(scopePage, actionFocusHeader, []string{"1"}, "header")
	reg(scopePage, actionFocusLeft, []string{"2"}, "left")
	reg(scopePage, actionFocusRight, []string{"3"}, "right")
	reg(scopePage, actionToggleJournal, []string{"L"}, "journal")
	reg(scopePage, actionCommandPalette, []string{":"}, "commands")
	reg(scopePage, actionToggleHelp, []string{"?"}, "help")
	reg(scopePage, actionQuit, []string{"q"}, "quit")

	reg(scopePalette, actionConfirm, []string{"enter"}, "run")
	reg(scopePalette, actionClose, []string{"esc"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	keys := normalizeKeyList(b.Keys)
	if len(keys) == 0 {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || r.scopeHasAnyKey(scope, keys) {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		copyBinding := b
		copyBinding.Keys = keys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves keyName in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.indexByScope[scopeGlobal][keyName]
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if len(trimmed) == 1 {
		// single runes keep their case so "L" and "l" can differ
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}

// ApplyKeybindingConfig replaces the keys of every binding for each listed
// action, in whichever scopes the action appears.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.KeybindingConfig) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	seen := make(map[Action]bool)
	for _, o := range items {
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding: action is required")
		}
		if seen[action] {
			return fmt.Errorf("keybinding action=%q: duplicated entry", action)
		}
		seen[action] = true
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding action=%q: keys are required", action)
		}
		found := false
		for _, bindings := range r.bindingsByScope {
			for _, b := range bindings {
				if b.Action == action {
					b.Keys = keys
					found = true
				}
			}
		}
		if !found {
			return fmt.Errorf("keybinding action=%q: unknown action", action)
		}
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		owner := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := owner[k]; ok {
					return fmt.Errorf("keybinding conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				owner[k] = b.Action
			}
		}
	}
	return nil
}

// ExportKeybindingConfig returns the effective bindings, one entry per
// action, sorted by action name.
func (r *KeyRegistry) ExportKeybindingConfig() []config.KeybindingConfig {
	if r == nil {
		return nil
	}
	scopes := make([]string, 0, len(r.bindingsByScope))
	for scope := range r.bindingsByScope {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	byAction := make(map[Action][]string)
	for _, scope := range scopes {
		for _, b := range r.bindingsByScope[scope] {
			for _, k := range b.Keys {
				if !contains(byAction[b.Action], k) {
					byAction[b.Action] = append(byAction[b.Action], k)
				}
			}
		}
	}
	out := make([]config.KeybindingConfig, 0, len(byAction))
	for action, keys := range byAction {
		out = append(out, config.KeybindingConfig{Action: string(action), Keys: keys})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
