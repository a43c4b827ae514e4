package view

import "github.com/jask/panesync/internal/state"

// HeaderSlice is the part of the tree the header renders.
type HeaderSlice struct {
	HeaderString        string
	LeftChildrenNumber  int
	RightChildrenNumber int
}

func selectHeaderSlice(s state.GlobalState) HeaderSlice {
	return HeaderSlice{
		HeaderString:        s.Header.HeaderString,
		LeftChildrenNumber:  s.Children.LeftChildrenNumber,
		RightChildrenNumber: s.Children.RightChildrenNumber,
	}
}

// Header shows the header string and both sibling counters. Its +/- controls
// drive header.HeaderNumber.
type Header struct {
	revision
	store       Store
	local       Counter
	slice       HeaderSlice
	unsubscribe func()
}

func NewHeader(store Store) *Header {
	h := &Header{store: store}
	h.slice, h.unsubscribe = state.Watch(store, selectHeaderSlice, func(s HeaderSlice) {
		h.slice = s
		h.bump()
	})
	return h
}

func (h *Header) Increment() error { return h.step(1) }
func (h *Header) Decrement() error { return h.step(-1) }

func (h *Header) step(delta int) error {
	err := h.local.Step(delta, func(n int) error {
		return h.store.Dispatch(state.SetHeaderNumber(n))
	})
	if err != nil {
		return wrap("header", err)
	}
	h.bump()
	return nil
}

func (h *Header) LocalCount() int    { return h.local.Value() }
func (h *Header) Slice() HeaderSlice { return h.slice }

func (h *Header) Content() Content {
	return Content{
		Heading: h.slice.HeaderString,
		Rows: []Row{
			intRow("Local count", h.local.Value()),
			intRow("count of left children", h.slice.LeftChildrenNumber),
			intRow("count of right children", h.slice.RightChildrenNumber),
		},
	}
}

// Close detaches the view from the store.
func (h *Header) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}
