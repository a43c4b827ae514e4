package state

const InitialChildrenString = "Initial Children"

// ChildrenState is the sub-state shared by the two sibling views. Each
// sibling owns one counter; the string is writable by anyone.
type ChildrenState struct {
	ChildrenString      string
	LeftChildrenNumber  int
	RightChildrenNumber int
}

func InitialChildren() ChildrenState {
	return ChildrenState{ChildrenString: InitialChildrenString}
}

func reduceChildren(s ChildrenState, a Action) (ChildrenState, bool) {
	switch a.Type {
	case ActionSetChildrenString:
		s.ChildrenString = a.Text
	case ActionSetLeftChildrenNumber:
		s.LeftChildrenNumber = a.Number
	case ActionSetRightChildrenNumber:
		s.RightChildrenNumber = a.Number
	default:
		return s, false
	}
	return s, true
}
