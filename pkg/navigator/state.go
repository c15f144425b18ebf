package navigator

// NavigationState is the current screen and the stack that led to it. The
// top of History is always Current and History is never empty.
type NavigationState struct {
	Current Screen
	History []Screen
}

func NewNavigationState(entry Screen) NavigationState {
	return NavigationState{Current: entry, History: []Screen{entry}}
}

// Push returns a new state with dest on top of the stack.
func (n NavigationState) Push(dest Screen) NavigationState {
	history := make([]Screen, len(n.History), len(n.History)+1)
	copy(history, n.History)
	return NavigationState{Current: dest, History: append(history, dest)}
}

// Replace collapses the stack to dest alone.
func (n NavigationState) Replace(dest Screen) NavigationState {
	return NewNavigationState(dest)
}

// Back pops one entry. With a single entry left it returns n unchanged.
func (n NavigationState) Back() NavigationState {
	if len(n.History) <= 1 {
		return n
	}
	history := make([]Screen, len(n.History)-1)
	copy(history, n.History)
	return NavigationState{Current: history[len(history)-1], History: history}
}

func (n NavigationState) Depth() int {
	return len(n.History)
}

func (n NavigationState) Clone() NavigationState {
	history := make([]Screen, len(n.History))
	copy(history, n.History)
	return NavigationState{Current: n.Current, History: history}
}

func (n NavigationState) navigate(dest Screen, replace bool) NavigationState {
	if replace {
		return n.Replace(dest)
	}
	return n.Push(dest)
}
