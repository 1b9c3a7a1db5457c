package viewmodel

import (
	"context"

	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/observable"
	"github.com/Rahulguptaid/ViewModelExample/pkg/session"
	"github.com/Rahulguptaid/ViewModelExample/pkg/validation"
)

// Broken-rule names and messages of the login form.
const (
	RuleNoEmail    = "NoEmail"
	RuleNoPassword = "noPassword"

	MessageNoEmail    = "Please enter email"
	MessageNoPassword = "Please enter password"
)

// LoginViewModel backs a sign-in form.
type LoginViewModel struct {
	Status

	Email    *observable.Cell[string]
	Password *observable.Cell[string]

	brokenRules []validation.BrokenRule
	rules       []validation.Rule

	auth    network.Authenticator
	session *session.State
	opts    options
}

// NewLogin creates a login view-model that signs in through auth and
// records a successful sign-in in sess.
func NewLogin(auth network.Authenticator, sess *session.State, opts ...Option) *LoginViewModel {
	if sess == nil {
		sess = session.New()
	}
	vm := &LoginViewModel{
		Email:    observable.New(""),
		Password: observable.New(""),
		auth:     auth,
		session:  sess,
		opts:     buildOptions("viewmodel.login", opts),
	}
	vm.rules = []validation.Rule{
		validation.Required(RuleNoEmail, MessageNoEmail, vm.Email.Get),
		validation.Required(RuleNoPassword, MessageNoPassword, vm.Password.Get),
	}
	return vm
}

// Validate discards the previous broken rules and checks the fields in
// declaration order.
func (vm *LoginViewModel) Validate() validation.Result {
	vm.brokenRules = nil
	res := validation.Run(vm.rules...)
	vm.brokenRules = res.Rules()
	return res
}

// BrokenRules returns the rules broken by the last Validate call.
func (vm *LoginViewModel) BrokenRules() []validation.BrokenRule {
	out := make([]validation.BrokenRule, len(vm.brokenRules))
	copy(out, vm.brokenRules)
	return out
}

// Session returns the state a successful sign-in is recorded in.
func (vm *LoginViewModel) Session() *session.State {
	return vm.session
}

// SignIn sends the current credentials to the backend. It does not
// validate first and does not guard against overlapping calls.
//
// On success the error is cleared, loading stops, the session is marked
// logged in and DidFinishFetch fires. On failure the error is set,
// loading stops and DidFinishFetch does not fire.
func (vm *LoginViewModel) SignIn(ctx context.Context) {
	email, password := vm.Email.Get(), vm.Password.Get()
	vm.opts.logger.Debug("signing in", "email", email)

	runAction(ctx, &vm.Status, vm.opts, ActionSignIn,
		func(ctx context.Context) (*network.LoginResult, error) {
			return vm.auth.Login(ctx, email, password)
		},
		func(res *network.LoginResult) (string, bool) {
			if res == nil {
				return rejection(""), false
			}
			if res.Response == 0 {
				return rejection(res.Msg), false
			}
			return "", true
		},
		func(res *network.LoginResult) {
			vm.session.MarkLoggedIn(res.UserID, res.Token)
		},
	)
}

var _ ViewModel = (*LoginViewModel)(nil)
