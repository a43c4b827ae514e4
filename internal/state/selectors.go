package state

func SelectHeaderString(s GlobalState) string   { return s.Header.HeaderString }
func SelectHeaderNumber(s GlobalState) int      { return s.Header.HeaderNumber }
func SelectChildrenString(s GlobalState) string { return s.Children.ChildrenString }
func SelectLeftChildrenNumber(s GlobalState) int {
	return s.Children.LeftChildrenNumber
}
func SelectRightChildrenNumber(s GlobalState) int {
	return s.Children.RightChildrenNumber
}

// Watch subscribes fn to the value sel picks out of the tree. fn runs only
// when that value changes, never for dispatches that leave it equal. The
// current value is returned so callers can render before the first change.
// The value is read from src, not from the Change, so a round that arrives
// after a nested dispatch never hands fn a stale value.
func Watch[T comparable](src Source, sel func(GlobalState) T, fn func(T)) (T, func()) {
	last := sel(src.State())
	unsubscribe := src.Subscribe(func(Change) {
		v := sel(src.State())
		if v == last {
			return
		}
		last = v
		fn(v)
	})
	return last, unsubscribe
}
