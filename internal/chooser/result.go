package chooser

// Result is what a dialog reports to its caller.
type Result struct {
	Path     string
	Accepted bool
}

// ResolveAccept computes the answer for the accept button. In DirectoryOnly
// mode the browsed directory is always the answer. Otherwise the selected
// entry is, and with nothing selected ok is false and the press does nothing.
func (s *State) ResolveAccept() (res Result, ok bool) {
	if s.mode == DirectoryOnly {
		return Result{Path: s.currentPath, Accepted: true}, true
	}
	if s.selected == "" {
		return Result{}, false
	}
	return Result{Path: s.selected, Accepted: true}, true
}

// ResolveCancel is available in every state.
func (s *State) ResolveCancel() Result {
	return Result{}
}
