package state

const InitialHeaderString = "Initial Header"

// HeaderState is the sub-state controlled by the header view.
type HeaderState struct {
	HeaderString string
	HeaderNumber int
}

func InitialHeader() HeaderState {
	return HeaderState{HeaderString: InitialHeaderString, HeaderNumber: 0}
}

func reduceHeader(s HeaderState, a Action) (HeaderState, bool) {
	switch a.Type {
	case ActionSetHeaderString:
		s.HeaderString = a.Text
	case ActionSetHeaderNumber:
		s.HeaderNumber = a.Number
	default:
		return s, false
	}
	return s, true
}
