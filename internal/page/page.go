// Package page composes the store and the three views into one page and maps
// control activations onto view operations.
package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jask/panesync/internal/state"
	"github.com/jask/panesync/internal/view"
)

var ErrUnknownEvent = errors.New("unknown event")

// Target identifies one view on the page.
type Target string

const (
	TargetHeader Target = "header"
	TargetLeft   Target = "left"
	TargetRight  Target = "right"
)

// Targets returns the views in display order.
func Targets() []Target {
	return []Target{TargetHeader, TargetLeft, TargetRight}
}

// Control is a button on a view.
type Control string

const (
	ControlIncrement    Control = "inc"
	ControlDecrement    Control = "dec"
	ControlHeaderText   Control = "header"
	ControlChildrenText Control = "children"
)

// Event is a control activation on a target, written "target.control".
type Event string

func EventFor(t Target, c Control) Event {
	return Event(string(t) + "." + string(c))
}

const (
	HeaderInc     Event = "header.inc"
	HeaderDec     Event = "header.dec"
	LeftInc       Event = "left.inc"
	LeftDec       Event = "left.dec"
	LeftHeader    Event = "left.header"
	LeftChildren  Event = "left.children"
	RightInc      Event = "right.inc"
	RightDec      Event = "right.dec"
	RightHeader   Event = "right.header"
	RightChildren Event = "right.children"
)

// Events lists every event the page accepts.
func Events() []Event {
	return []Event{
		HeaderInc, HeaderDec,
		LeftInc, LeftDec, LeftHeader, LeftChildren,
		RightInc, RightDec, RightHeader, RightChildren,
	}
}

func (e Event) Target() Target {
	t, _, _ := strings.Cut(string(e), ".")
	return Target(t)
}

func (e Event) Control() Control {
	_, c, _ := strings.Cut(string(e), ".")
	return Control(c)
}

// Label is the button caption shown for the event.
func (e Event) Label() string {
	switch e.Control() {
	case ControlIncrement:
		return "+"
	case ControlDecrement:
		return "-"
	case ControlHeaderText:
		return "Change Header content"
	case ControlChildrenText:
		return "Change Children content"
	}
	return string(e)
}

// ParseEvent accepts an event name, case-insensitively. The shorthands
// "left+" and "left-" are accepted for counter controls.
func ParseEvent(s string) (Event, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(s, "+"):
		s = strings.TrimSuffix(s, "+") + "." + string(ControlIncrement)
	case strings.HasSuffix(s, "-"):
		s = strings.TrimSuffix(s, "-") + "." + string(ControlDecrement)
	}
	for _, e := range Events() {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// Page is the root composition: one store shared by every view through
// constructor injection.
type Page struct {
	Store  *state.Store
	Header *view.Header
	Left   *view.Sibling
	Right  *view.Sibling
}

func New(store *state.Store) *Page {
	return &Page{
		Store:  store,
		Header: view.NewHeader(store),
		Left:   view.NewLeft(store),
		Right:  view.NewRight(store),
	}
}

// Apply runs the view operation bound to e.
func (p *Page) Apply(e Event) error {
	var err error
	switch e {
	case HeaderInc:
		err = p.Header.Increment()
	case HeaderDec:
		err = p.Header.Decrement()
	case LeftInc, LeftDec, LeftHeader, LeftChildren:
		err = applySibling(p.Left, e.Control())
	case RightInc, RightDec, RightHeader, RightChildren:
		err = applySibling(p.Right, e.Control())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e)
	}
	if err != nil {
		return fmt.Errorf("apply %s: %w", e, err)
	}
	return nil
}

func applySibling(s *view.Sibling, c Control) error {
	switch c {
	case ControlIncrement:
		return s.Increment()
	case ControlDecrement:
		return s.Decrement()
	case ControlHeaderText:
		return s.ChangeHeaderText()
	case ControlChildrenText:
		return s.ChangeChildrenText()
	}
	return ErrUnknownEvent
}

// ApplyAll applies events in order and stops at the first failure.
func (p *Page) ApplyAll(events []Event) error {
	for _, e := range events {
		if err := p.Apply(e); err != nil {
			return err
		}
	}
	return nil
}

// Controls returns the events available on t, in button order.
func Controls(t Target) []Event {
	var out []Event
	for _, e := range Events() {
		if e.Target() == t {
			out = append(out, e)
		}
	}
	return out
}

// Content returns the render-ready content of t.
func (p *Page) Content(t Target) view.Content {
	switch t {
	case TargetLeft:
		return p.Left.Content()
	case TargetRight:
		return p.Right.Content()
	}
	return p.Header.Content()
}

// Revision returns the change counter of t's view.
func (p *Page) Revision(t Target) uint64 {
	switch t {
	case TargetLeft:
		return p.Left.Revision()
	case TargetRight:
		return p.Right.Revision()
	}
	return p.Header.Revision()
}

// Close detaches every view from the store.
func (p *Page) Close() {
	p.Header.Close()
	p.Left.Close()
	p.Right.Close()
}
