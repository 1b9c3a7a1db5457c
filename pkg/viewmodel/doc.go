// Package viewmodel holds form and list state, validation and action
// orchestration for a presentation layer that talks to it through cells
// and hooks.
//
// # Actions
//
// SignIn and PopulateSources follow the same lifecycle:
//
//	Idle -> Loading -> Success | Failed
//
// Entering Loading sets the loading flag (firing UpdateLoadingStatus) and
// calls the network collaborator on a new goroutine. The completion is
// redispatched through the view-model's Dispatcher before any state is
// touched. A transport error or a logical rejection (no result, or
// Response 0) sets the error (firing ShowAlert) and clears the loading
// flag. A success clears the error, clears the loading flag, stores the
// result and fires DidFinishFetch. Every write fires its hook, so one run
// fires UpdateLoadingStatus at least twice.
//
// # Validation
//
// Validate is an explicit command that replaces the stored broken rules;
// use the returned Result to decide whether the form is valid:
//
//	if res := vm.Validate(); res.Valid() {
//	    vm.SignIn(ctx)
//	} else {
//	    show(res.Rules())
//	}
//
// # Ownership
//
// A view-model never references its presentation layer; the presenter
// holds the view-model and installs hooks and cell listeners on it.
package viewmodel
