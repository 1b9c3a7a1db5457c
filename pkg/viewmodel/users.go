package viewmodel

import (
	"context"

	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/observable"
	"github.com/Rahulguptaid/ViewModelExample/pkg/validation"
)

// UsersViewModel backs a user directory list.
type UsersViewModel struct {
	Status

	// Category is sent as the directory request's type parameter.
	Category string

	sources *observable.Cell[[]network.PropertyListUser]

	dir  network.Directory
	opts options
}

// NewUsers creates a directory view-model that fetches from dir.
func NewUsers(dir network.Directory, category string, opts ...Option) *UsersViewModel {
	return &UsersViewModel{
		Category: category,
		sources:  observable.New[[]network.PropertyListUser](nil),
		dir:      dir,
		opts:     buildOptions("viewmodel.users", opts),
	}
}

// Validate has nothing to check; the result is always valid.
func (vm *UsersViewModel) Validate() validation.Result {
	return validation.Run()
}

// BrokenRules is always empty.
func (vm *UsersViewModel) BrokenRules() []validation.BrokenRule {
	return nil
}

// Sources returns the fetched records in backend order.
func (vm *UsersViewModel) Sources() []network.PropertyListUser {
	return vm.sources.Get()
}

// BindSources sets the listener called every time the records are
// replaced, discarding the previous one.
func (vm *UsersViewModel) BindSources(fn func([]network.PropertyListUser)) {
	vm.sources.Bind(fn)
}

// ObserveSources adds a listener for record replacement alongside the
// bound one.
func (vm *UsersViewModel) ObserveSources(fn func([]network.PropertyListUser)) *observable.Subscription {
	return vm.sources.Observe(fn)
}

// PopulateSources fetches the directory for Category.
//
// On success the error is cleared, loading stops, the records are
// replaced (notifying the sources listener) and DidFinishFetch fires.
// On failure the error is set, loading stops and the records are kept.
func (vm *UsersViewModel) PopulateSources(ctx context.Context) {
	category := vm.Category
	vm.opts.logger.Debug("populating sources", "category", category)

	runAction(ctx, &vm.Status, vm.opts, ActionPopulateSources,
		func(ctx context.Context) (*network.UsersResult, error) {
			return vm.dir.Users(ctx, category)
		},
		func(res *network.UsersResult) (string, bool) {
			if res == nil {
				return rejection(""), false
			}
			if res.Response == 0 {
				return rejection(res.Msg), false
			}
			return "", true
		},
		func(res *network.UsersResult) {
			records := res.PropertyList
			if records == nil {
				records = []network.PropertyListUser{}
			}
			vm.sources.Set(records)
		},
	)
}

var _ ViewModel = (*UsersViewModel)(nil)
