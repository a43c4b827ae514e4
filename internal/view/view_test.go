package view

import (
	"errors"
	"math"
	"testing"

	"github.com/jask/panesync/internal/state"
)

func TestHeaderIncrementMirrorsIntoSharedState(t *testing.T) {
	for _, n := range []int{0, 1, 2, 17} {
		store := state.NewStore()
		h := NewHeader(store)
		for i := 0; i < n; i++ {
			if err := h.Increment(); err != nil {
				t.Fatalf("increment: %v", err)
			}
			if got := store.State().Header.HeaderNumber; got != h.LocalCount() {
				t.Fatalf("after %d steps shared=%d local=%d", i+1, got, h.LocalCount())
			}
		}
		if h.LocalCount() != n || store.State().Header.HeaderNumber != n {
			t.Fatalf("n=%d: local=%d shared=%d", n, h.LocalCount(), store.State().Header.HeaderNumber)
		}
	}
}

func TestDecrementBelowZeroIsPreserved(t *testing.T) {
	store := state.NewStore()
	h := NewHeader(store)
	left := NewLeft(store)
	right := NewRight(store)

	for _, step := range []func() error{h.Decrement, left.Decrement, right.Decrement, right.Decrement} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	got := store.State()
	if h.LocalCount() != -1 || got.Header.HeaderNumber != -1 {
		t.Fatalf("header local=%d shared=%d, want -1", h.LocalCount(), got.Header.HeaderNumber)
	}
	if left.LocalCount() != -1 || got.Children.LeftChildrenNumber != -1 {
		t.Fatalf("left local=%d shared=%d, want -1", left.LocalCount(), got.Children.LeftChildrenNumber)
	}
	if right.LocalCount() != -2 || got.Children.RightChildrenNumber != -2 {
		t.Fatalf("right local=%d shared=%d, want -2", right.LocalCount(), got.Children.RightChildrenNumber)
	}
}

func TestSiblingCountersAreIndependent(t *testing.T) {
	store := state.NewStore()
	left := NewLeft(store)
	right := NewRight(store)

	_ = left.Increment()
	_ = left.Increment()
	_ = right.Increment()

	if left.LocalCount() != 2 || right.LocalCount() != 1 {
		t.Fatalf("local counts left=%d right=%d", left.LocalCount(), right.LocalCount())
	}
	if left.Slice().OtherNumber != 1 {
		t.Fatalf("left sees right=%d, want 1", left.Slice().OtherNumber)
	}
	if right.Slice().OtherNumber != 2 {
		t.Fatalf("right sees left=%d, want 2", right.Slice().OtherNumber)
	}
}

func TestTwoInstancesOfSameSideKeepPrivateCounters(t *testing.T) {
	store := state.NewStore()
	a := NewLeft(store)
	b := NewLeft(store)

	_ = a.Increment()
	_ = a.Increment()
	_ = b.Increment()

	if a.LocalCount() != 2 || b.LocalCount() != 1 {
		t.Fatalf("a=%d b=%d", a.LocalCount(), b.LocalCount())
	}
	// last publisher wins the shared field
	if got := store.State().Children.LeftChildrenNumber; got != 1 {
		t.Fatalf("shared left = %d, want 1", got)
	}
}

func TestChangeTextSignatures(t *testing.T) {
	store := state.NewStore()
	left := NewLeft(store)
	right := NewRight(store)
	h := NewHeader(store)

	if err := left.ChangeHeaderText(); err != nil {
		t.Fatal(err)
	}
	if got := h.Content().Heading; got != "Modified by left container" {
		t.Fatalf("header heading = %q", got)
	}
	if err := right.ChangeHeaderText(); err != nil {
		t.Fatal(err)
	}
	if got := store.State().Header.HeaderString; got != "Modified by Right container" {
		t.Fatalf("header string = %q", got)
	}
	if got := store.State().Children.ChildrenString; got != state.InitialChildrenString {
		t.Fatalf("children string changed to %q", got)
	}

	_ = right.ChangeChildrenText()
	_ = left.ChangeChildrenText()
	if got := right.Content().Heading; got != "Modified by left container" {
		t.Fatalf("right heading = %q, want last writer's signature", got)
	}
}

func TestHeaderContentRows(t *testing.T) {
	store := state.NewStore()
	h := NewHeader(store)
	left := NewLeft(store)
	_ = left.Increment()
	_ = h.Decrement()

	c := h.Content()
	if c.Heading != "Initial Header" {
		t.Fatalf("heading = %q", c.Heading)
	}
	want := []string{"Local count: -1", "count of left children: 1", "count of right children: 0"}
	if len(c.Rows) != len(want) {
		t.Fatalf("rows = %v", c.Rows)
	}
	for i, row := range c.Rows {
		if row.String() != want[i] {
			t.Errorf("row %d = %q, want %q", i, row.String(), want[i])
		}
	}
}

func TestSiblingContentRows(t *testing.T) {
	store := state.NewStore()
	h := NewHeader(store)
	right := NewRight(store)
	_ = h.Increment()

	c := right.Content()
	if c.Heading != "Initial Children" {
		t.Fatalf("heading = %q", c.Heading)
	}
	want := []string{"Local count: 0", "Count of header: 1", "Count of Left container: 0"}
	for i, row := range c.Rows {
		if row.String() != want[i] {
			t.Errorf("row %d = %q, want %q", i, row.String(), want[i])
		}
	}
}

func TestRevisionBumpsOnlyOnVisibleChange(t *testing.T) {
	store := state.NewStore()
	h := NewHeader(store)
	start := h.Revision()

	_ = store.Dispatch(state.SetChildrenString("not shown in header"))
	if h.Revision() != start {
		t.Fatalf("revision moved for unrelated field")
	}
	_ = store.Dispatch(state.SetRightChildrenNumber(3))
	if h.Revision() == start {
		t.Fatalf("revision did not move for right counter")
	}
	before := h.Revision()
	_ = h.Increment()
	if h.Revision() == before {
		t.Fatalf("revision did not move for local increment")
	}
}

func TestCloseStopsUpdates(t *testing.T) {
	store := state.NewStore()
	left := NewLeft(store)
	left.Close()
	left.Close()
	_ = store.Dispatch(state.SetHeaderNumber(8))
	if left.Slice().HeaderNumber != 0 {
		t.Fatalf("closed view observed header number %d", left.Slice().HeaderNumber)
	}
	if store.Listeners() != 0 {
		t.Fatalf("listeners = %d", store.Listeners())
	}
}

type rejectingStore struct {
	*state.Store
}

func (rejectingStore) Dispatch(state.Action) error { return errBoom }

var errBoom = errors.New("boom")

func TestFailedPublishLeavesLocalCounter(t *testing.T) {
	store := rejectingStore{Store: state.NewStore()}
	right := NewRight(store)
	err := right.Increment()
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v", err)
	}
	if right.LocalCount() != 0 {
		t.Fatalf("local = %d, want 0 after rejected publish", right.LocalCount())
	}
}

func TestCounterStopsAtIntLimits(t *testing.T) {
	published := 0
	publish := func(int) error { published++; return nil }

	hi := Counter{value: math.MaxInt}
	if err := hi.Step(1, publish); !errors.Is(err, ErrCounterLimit) {
		t.Fatalf("step past MaxInt: err = %v", err)
	}
	if hi.Value() != math.MaxInt {
		t.Fatalf("value = %d, want MaxInt", hi.Value())
	}

	lo := Counter{value: math.MinInt}
	if err := lo.Step(-1, publish); !errors.Is(err, ErrCounterLimit) {
		t.Fatalf("step past MinInt: err = %v", err)
	}
	if err := lo.Step(1, publish); err != nil {
		t.Fatalf("step back from MinInt: %v", err)
	}
	if lo.Value() != math.MinInt+1 || published != 1 {
		t.Fatalf("value = %d published = %d", lo.Value(), published)
	}
}

func TestIncrementFromListenerIsMirroredImmediately(t *testing.T) {
	store := state.NewStore()
	left := NewLeft(store)
	var local, shared int
	var header string
	store.Subscribe(func(c state.Change) {
		if c.Action.Type != state.ActionSetHeaderNumber {
			return
		}
		if err := left.Increment(); err != nil {
			t.Errorf("increment: %v", err)
		}
		local, shared = left.LocalCount(), store.State().Children.LeftChildrenNumber
		if err := store.Dispatch(state.SetHeaderString("X")); err != nil {
			t.Errorf("dispatch: %v", err)
		}
		header = store.State().Header.HeaderString
	})

	if err := store.Dispatch(state.SetHeaderNumber(1)); err != nil {
		t.Fatal(err)
	}
	if local != 1 || shared != 1 {
		t.Fatalf("inside listener local=%d shared=%d, want 1 and 1", local, shared)
	}
	if header != "X" {
		t.Fatalf("header string after nested dispatch = %q, want X", header)
	}
	if got := left.Slice().ChildrenString; got != state.InitialChildrenString {
		t.Fatalf("children string = %q", got)
	}
}
