package form

// Callback is run when an option is chosen, a field is answered or a form completes.
//
// A Callback has one of two shapes, picked when it is created:
//   - Action wraps a function that takes no arguments
//   - ActionWithForm wraps a function that receives the form that ran it
//
// The zero value is "no callback".
//
// Example:
//
//	form.AddOption("Quit", form.Action(func() { os.Exit(0) }))
//	form.AddOption("Verbose", form.ActionWithForm(func(f form.Context) {
//		f.Settings().SetClearAfterAction(true)
//	}))
type Callback struct {
	plain    func()
	withForm func(Context)
}

// Action creates a callback that takes no arguments.
func Action(fn func()) Callback {
	return Callback{plain: fn}
}

// ActionWithForm creates a callback that receives the running form.
func ActionWithForm(fn func(Context)) Callback {
	return Callback{withForm: fn}
}

// IsZero reports whether the callback has nothing to run.
func (c Callback) IsZero() bool {
	return c.plain == nil && c.withForm == nil
}

// TakesForm reports whether the callback receives the form.
func (c Callback) TakesForm() bool {
	return c.withForm != nil
}

func (c Callback) invoke(f Context) {
	switch {
	case c.withForm != nil:
		c.withForm(f)
	case c.plain != nil:
		c.plain()
	}
}

// toCallback converts the loosely typed values accepted by Settings.Set.
func toCallback(value any) (Callback, bool) {
	switch v := value.(type) {
	case nil:
		return Callback{}, true
	case Callback:
		return v, true
	case func():
		return Action(v), v != nil
	case func(Context):
		return ActionWithForm(v), v != nil
	default:
		return Callback{}, false
	}
}
