package viewmodel

import "github.com/Rahulguptaid/ViewModelExample/pkg/validation"

// Hooks are the zero-argument callbacks a presentation layer installs to
// hear about status changes. Any of them may be nil.
type Hooks struct {
	// ShowAlert fires after every write to the error field, including
	// clearing it.
	ShowAlert func()

	// UpdateLoadingStatus fires after every write to the loading flag.
	UpdateLoadingStatus func()

	// DidFinishFetch fires once when an action completes successfully.
	DidFinishFetch func()
}

// Status is the loading/error state shared by every view-model.
//
// Status is not synchronized. It is written from the view-model's
// dispatcher only, so reads must happen there too.
type Status struct {
	Hooks Hooks

	isLoading bool
	errMsg    string
	hasErr    bool
}

// IsLoading reports whether an action is in flight.
func (s *Status) IsLoading() bool {
	return s.isLoading
}

// LastError returns the error of the last action; ok is false when it
// was cleared.
func (s *Status) LastError() (msg string, ok bool) {
	return s.errMsg, s.hasErr
}

// SetLoading stores the flag and fires UpdateLoadingStatus.
func (s *Status) SetLoading(loading bool) {
	s.isLoading = loading
	fire(s.Hooks.UpdateLoadingStatus)
}

// SetError stores msg as the current error and fires ShowAlert.
func (s *Status) SetError(msg string) {
	s.errMsg, s.hasErr = msg, true
	fire(s.Hooks.ShowAlert)
}

// ClearError clears the current error and fires ShowAlert.
func (s *Status) ClearError() {
	s.errMsg, s.hasErr = "", false
	fire(s.Hooks.ShowAlert)
}

func (s *Status) finish() {
	fire(s.Hooks.DidFinishFetch)
}

func fire(hook func()) {
	if hook != nil {
		hook()
	}
}

// ViewModel is the contract shared by the form and list view-models.
type ViewModel interface {
	// Validate discards the previous broken rules, recomputes them and
	// returns the new result.
	Validate() validation.Result

	// BrokenRules returns the rules broken by the last Validate call.
	BrokenRules() []validation.BrokenRule

	IsLoading() bool
	LastError() (string, bool)
}
