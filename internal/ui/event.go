package ui

// SubmitEvent stands for a form submission coming from a shell. The surface
// always cancels the default action; shells check DefaultPrevented and skip
// their own navigation when it is set.
type SubmitEvent struct {
	prevented bool
}

// NewSubmitEvent returns an event whose default action is still enabled.
func NewSubmitEvent() *SubmitEvent {
	return &SubmitEvent{}
}

// PreventDefault cancels the default submission behaviour.
func (e *SubmitEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *SubmitEvent) DefaultPrevented() bool {
	return e.prevented
}
