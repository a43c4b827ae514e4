package view

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jask/panesync/internal/state"
)

// Store is what a view needs from the state store.
type Store interface {
	state.Source
	Dispatch(state.Action) error
}

// ErrCounterLimit is returned by a step that would leave the int range.
var ErrCounterLimit = errors.New("counter limit")

// Counter is a view's private count. Nothing outside the owning view reads
// it; only the values it publishes reach shared state. The range is that of
// int: a step past math.MaxInt or math.MinInt fails with ErrCounterLimit
// instead of wrapping.
type Counter struct {
	value int
}

func (c Counter) Value() int { return c.value }

// Step moves the counter by delta after publish accepts the new value. On
// publish failure the counter is left unchanged, so the local value and the
// mirrored shared field never disagree.
func (c *Counter) Step(delta int, publish func(int) error) error {
	if (delta > 0 && c.value > math.MaxInt-delta) || (delta < 0 && c.value < math.MinInt-delta) {
		return fmt.Errorf("%w: %d%+d", ErrCounterLimit, c.value, delta)
	}
	next := c.value + delta
	if err := publish(next); err != nil {
		return err
	}
	c.value = next
	return nil
}

// Row is one labelled value in a rendered view.
type Row struct {
	Label string
	Value string
}

func (r Row) String() string {
	return r.Label + ": " + r.Value
}

// Content is the render-ready output of a view.
type Content struct {
	Heading string
	Rows    []Row
}

func intRow(label string, v int) Row {
	return Row{Label: label, Value: strconv.Itoa(v)}
}

// revision counts visible changes so callers can cache rendered output.
type revision struct {
	n uint64
}

func (r *revision) bump()            { r.n++ }
func (r *revision) Revision() uint64 { return r.n }

func wrap(who string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", who, err)
}
