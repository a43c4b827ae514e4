package state

import (
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

// GlobalState is the whole tree. Both sub-states are always present.
type GlobalState struct {
	Header   HeaderState
	Children ChildrenState
}

func Initial() GlobalState {
	return GlobalState{Header: InitialHeader(), Children: InitialChildren()}
}

// Reduce applies a to s and returns the new tree. Exactly the targeted field
// differs between s and the result; s itself is not modified.
func Reduce(s GlobalState, a Action) (GlobalState, error) {
	var ok bool
	switch a.Slice() {
	case SliceHeader:
		s.Header, ok = reduceHeader(s.Header, a)
	case SliceChildren:
		s.Children, ok = reduceChildren(s.Children, a)
	}
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return s, nil
}

// Change describes one completed dispatch.
type Change struct {
	Action Action
	Prev   GlobalState
	Next   GlobalState
}

type Listener func(Change)

// Source is the read side of a store.
type Source interface {
	State() GlobalState
	Subscribe(Listener) (unsubscribe func())
}

type subscription struct {
	id int
	fn Listener
}

// Store is the single writer of GlobalState. It is not safe for concurrent
// use: callers serialize Dispatch on one goroutine (the UI event loop).
type Store struct {
	state  GlobalState
	subs   []subscription
	nextID int
}

func NewStore() *Store {
	return &Store{state: Initial()}
}

// State returns a copy of the current tree.
func (s *Store) State() GlobalState {
	return s.state
}

// Dispatch applies a and notifies every listener before returning. A
// dispatch made from inside a listener is applied and announced right away;
// listeners of the outer round still pending then see a Change whose Next is
// older than State().
func (s *Store) Dispatch(a Action) error {
	prev := s.state
	next, err := Reduce(prev, a)
	if err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	s.state = next
	change := Change{Action: a, Prev: prev, Next: next}
	round := append([]subscription(nil), s.subs...)
	for _, sub := range round {
		sub.fn(change)
	}
	return nil
}

// Subscribe registers l for every subsequent dispatch. The returned func
// removes it and may be called more than once.
func (s *Store) Subscribe(l Listener) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: l})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Listeners reports how many subscriptions are active.
func (s *Store) Listeners() int {
	return len(s.subs)
}
