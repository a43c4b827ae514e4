package state

import (
	"fmt"
	"strconv"
)

// ActionType names one field of one sub-state. The prefix before the slash is
// the sub-state the action is routed to.
type ActionType string

const (
	ActionSetHeaderString        ActionType = "header/setHeaderString"
	ActionSetHeaderNumber        ActionType = "header/setHeaderNumber"
	ActionSetChildrenString      ActionType = "children/setChildrenString"
	ActionSetLeftChildrenNumber  ActionType = "children/setLeftChildrenNumber"
	ActionSetRightChildrenNumber ActionType = "children/setRightChildrenNumber"
)

const (
	SliceHeader   = "header"
	SliceChildren = "children"
)

// Action is a tagged replace request. String actions read Text, numeric
// actions read Number; the other field is ignored.
type Action struct {
	Type   ActionType
	Text   string
	Number int
}

func SetHeaderString(v string) Action {
	return Action{Type: ActionSetHeaderString, Text: v}
}

func SetHeaderNumber(v int) Action {
	return Action{Type: ActionSetHeaderNumber, Number: v}
}

func SetChildrenString(v string) Action {
	return Action{Type: ActionSetChildrenString, Text: v}
}

func SetLeftChildrenNumber(v int) Action {
	return Action{Type: ActionSetLeftChildrenNumber, Number: v}
}

func SetRightChildrenNumber(v int) Action {
	return Action{Type: ActionSetRightChildrenNumber, Number: v}
}

// ActionTypes lists every action the store understands, header first.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionSetHeaderString,
		ActionSetHeaderNumber,
		ActionSetChildrenString,
		ActionSetLeftChildrenNumber,
		ActionSetRightChildrenNumber,
	}
}

// Slice returns the sub-state the action targets, or "" for unknown types.
func (a Action) Slice() string {
	switch a.Type {
	case ActionSetHeaderString, ActionSetHeaderNumber:
		return SliceHeader
	case ActionSetChildrenString, ActionSetLeftChildrenNumber, ActionSetRightChildrenNumber:
		return SliceChildren
	}
	return ""
}

func (a Action) isString() bool {
	return a.Type == ActionSetHeaderString || a.Type == ActionSetChildrenString
}

// Payload renders the value the action carries.
func (a Action) Payload() string {
	if a.isString() {
		return strconv.Quote(a.Text)
	}
	return strconv.Itoa(a.Number)
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Type, a.Payload())
}
