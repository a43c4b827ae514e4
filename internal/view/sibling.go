package view

import (
	"github.com/jask/panesync/internal/state"
)

type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

func (s Side) Other() Side {
	if s == SideRight {
		return SideLeft
	}
	return SideRight
}

// Signature is the fixed text a sibling writes into shared strings.
func (s Side) Signature() string {
	if s == SideRight {
		return "Modified by Right container"
	}
	return "Modified by left container"
}

func (s Side) setNumber(n int) state.Action {
	if s == SideRight {
		return state.SetRightChildrenNumber(n)
	}
	return state.SetLeftChildrenNumber(n)
}

func (s Side) number(g state.GlobalState) int {
	if s == SideRight {
		return g.Children.RightChildrenNumber
	}
	return g.Children.LeftChildrenNumber
}

func (s Side) otherLabel() string {
	if s == SideRight {
		return "Count of Left container"
	}
	return "Count of right container"
}

// SiblingSlice is the part of the tree a sibling renders. It never includes
// the sibling's own shared counter; that value is shown from the local
// counter it mirrors.
type SiblingSlice struct {
	ChildrenString string
	HeaderNumber   int
	OtherNumber    int
}

// Sibling is the left or right container.
type Sibling struct {
	revision
	side        Side
	store       Store
	local       Counter
	slice       SiblingSlice
	unsubscribe func()
}

func NewSibling(store Store, side Side) *Sibling {
	s := &Sibling{side: side, store: store}
	other := side.Other()
	sel := func(g state.GlobalState) SiblingSlice {
		return SiblingSlice{
			ChildrenString: g.Children.ChildrenString,
			HeaderNumber:   g.Header.HeaderNumber,
			OtherNumber:    other.number(g),
		}
	}
	s.slice, s.unsubscribe = state.Watch(store, sel, func(v SiblingSlice) {
		s.slice = v
		s.bump()
	})
	return s
}

func NewLeft(store Store) *Sibling  { return NewSibling(store, SideLeft) }
func NewRight(store Store) *Sibling { return NewSibling(store, SideRight) }

func (s *Sibling) Side() Side { return s.side }

func (s *Sibling) Increment() error { return s.step(1) }
func (s *Sibling) Decrement() error { return s.step(-1) }

func (s *Sibling) step(delta int) error {
	err := s.local.Step(delta, func(n int) error {
		return s.store.Dispatch(s.side.setNumber(n))
	})
	if err != nil {
		return wrap(s.side.String(), err)
	}
	s.bump()
	return nil
}

// ChangeHeaderText overwrites the header string with this sibling's
// signature.
func (s *Sibling) ChangeHeaderText() error {
	return wrap(s.side.String(), s.store.Dispatch(state.SetHeaderString(s.side.Signature())))
}

// ChangeChildrenText overwrites the shared children string. Either sibling
// may do so; the last write wins.
func (s *Sibling) ChangeChildrenText() error {
	return wrap(s.side.String(), s.store.Dispatch(state.SetChildrenString(s.side.Signature())))
}

func (s *Sibling) LocalCount() int     { return s.local.Value() }
func (s *Sibling) Slice() SiblingSlice { return s.slice }

func (s *Sibling) Content() Content {
	return Content{
		Heading: s.slice.ChildrenString,
		Rows: []Row{
			intRow("Local count", s.local.Value()),
			intRow("Count of header", s.slice.HeaderNumber),
			intRow(s.side.otherLabel(), s.slice.OtherNumber),
		},
	}
}

func (s *Sibling) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
