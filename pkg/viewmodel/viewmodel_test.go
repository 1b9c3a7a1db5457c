package viewmodel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"github.com/Rahulguptaid/ViewModelExample/pkg/network"
	"github.com/Rahulguptaid/ViewModelExample/pkg/session"
	"github.com/Rahulguptaid/ViewModelExample/pkg/validation"
	"github.com/google/go-cmp/cmp"
)

// testDispatcher hands completions to the test goroutine, which plays the
// role of the presentation thread.
type testDispatcher chan func()

func (d testDispatcher) Dispatch(fn func()) { d <- fn }

// settle runs the next dispatched completion or fails after a timeout.
func (d testDispatcher) settle(t *testing.T) {
	t.Helper()
	select {
	case fn := <-d:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}

type fakeAuth struct {
	res *network.LoginResult
	err error

	mu                  sync.Mutex
	calls               int
	gotEmail, gotPasswd string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*network.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotEmail, f.gotPasswd = email, password
	return f.res, f.err
}

type fakeDirectory struct {
	res *network.UsersResult
	err error

	mu          sync.Mutex
	gotCategory string
}

func (f *fakeDirectory) Users(_ context.Context, category string) (*network.UsersResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotCategory = category
	return f.res, f.err
}

type recordingObserver struct {
	started  []string
	finished []Outcome
}

func (o *recordingObserver) ActionStarted(action string) {
	o.started = append(o.started, action)
}

func (o *recordingObserver) ActionFinished(_ string, outcome Outcome, _ time.Duration) {
	o.finished = append(o.finished, outcome)
}

// hookCounter installs counting hooks and records the order of events.
type hookCounter struct {
	alerts, loading, finished int
	loadingSeen               []bool
	events                    []string
}

func (h *hookCounter) install(st *Status) {
	st.Hooks = Hooks{
		ShowAlert: func() {
			h.alerts++
			h.events = append(h.events, "alert")
		},
		UpdateLoadingStatus: func() {
			h.loading++
			h.loadingSeen = append(h.loadingSeen, st.IsLoading())
			h.events = append(h.events, "loading")
		},
		DidFinishFetch: func() {
			h.finished++
			h.events = append(h.events, "finish")
		},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLogin(auth network.Authenticator, opts ...Option) (*LoginViewModel, testDispatcher) {
	d := make(testDispatcher, 1)
	opts = append([]Option{WithDispatcher(d), WithLogger(quietLogger())}, opts...)
	return NewLogin(auth, session.New(), opts...), d
}

func TestLoginValidate(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     []validation.BrokenRule
	}{
		{
			name: "both empty",
			want: []validation.BrokenRule{
				{PropertyName: RuleNoEmail, Message: MessageNoEmail},
				{PropertyName: RuleNoPassword, Message: MessageNoPassword},
			},
		},
		{
			name:     "no email",
			password: "x",
			want:     []validation.BrokenRule{{PropertyName: RuleNoEmail, Message: MessageNoEmail}},
		},
		{
			name:  "no password",
			email: "a@b.com",
			want:  []validation.BrokenRule{{PropertyName: RuleNoPassword, Message: MessageNoPassword}},
		},
		{
			name:     "valid",
			email:    "a@b.com",
			password: "x",
			want:     []validation.BrokenRule{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, _ := newTestLogin(&fakeAuth{})
			vm.Email.Set(tt.email)
			vm.Password.Set(tt.password)

			res := vm.Validate()
			if res.Valid() != (len(tt.want) == 0) {
				t.Errorf("Valid() = %v, want %v", res.Valid(), len(tt.want) == 0)
			}
			if diff := cmp.Diff(tt.want, vm.BrokenRules()); diff != "" {
				t.Errorf("BrokenRules() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoginValidateIdempotent(t *testing.T) {
	vm, _ := newTestLogin(&fakeAuth{})
	vm.Password.Set("x")

	vm.Validate()
	first := vm.BrokenRules()
	vm.Validate()
	second := vm.BrokenRules()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("consecutive validations differ (-first +second):\n%s", diff)
	}
	if len(second) != 1 {
		t.Errorf("len(BrokenRules()) = %d, want 1", len(second))
	}
}

func TestLoginValidateDiscardsPreviousResult(t *testing.T) {
	vm, _ := newTestLogin(&fakeAuth{})
	if vm.Validate().Valid() {
		t.Fatal("empty form reported valid")
	}

	vm.Email.Set("a@b.com")
	vm.Password.Set("x")
	if !vm.Validate().Valid() {
		t.Fatal("filled form reported invalid")
	}
	if n := len(vm.BrokenRules()); n != 0 {
		t.Errorf("len(BrokenRules()) = %d after fixing input, want 0", n)
	}
}

func TestSignInTransportFailure(t *testing.T) {
	auth := &fakeAuth{err: errors.New("Network down")}
	vm, d := newTestLogin(auth)
	var hooks hookCounter
	hooks.install(&vm.Status)

	vm.SignIn(context.Background())
	d.settle(t)

	msg, ok := vm.LastError()
	if !ok || msg != "Network down" {
		t.Errorf("LastError() = (%q, %v), want (%q, true)", msg, ok, "Network down")
	}
	if vm.IsLoading() {
		t.Error("IsLoading() = true after failure")
	}
	if hooks.finished != 0 {
		t.Errorf("DidFinishFetch fired %d times, want 0", hooks.finished)
	}
	if hooks.alerts != 1 {
		t.Errorf("ShowAlert fired %d times, want 1", hooks.alerts)
	}
	if vm.Session().LoggedIn() {
		t.Error("session logged in after failure")
	}
}

func TestSignInLogicalFailure(t *testing.T) {
	tests := []struct {
		name string
		res  *network.LoginResult
		want string
	}{
		{name: "no result", res: nil, want: DefaultFailureMessage},
		{name: "zero response with message", res: &network.LoginResult{Msg: "Invalid email or password"}, want: "Invalid email or password"},
		{name: "zero response without message", res: &network.LoginResult{}, want: DefaultFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, d := newTestLogin(&fakeAuth{res: tt.res})
			var hooks hookCounter
			hooks.install(&vm.Status)

			vm.SignIn(context.Background())
			d.settle(t)

			msg, ok := vm.LastError()
			if !ok || msg != tt.want {
				t.Errorf("LastError() = (%q, %v), want (%q, true)", msg, ok, tt.want)
			}
			if vm.IsLoading() {
				t.Error("IsLoading() = true after rejection")
			}
			if hooks.finished != 0 {
				t.Errorf("DidFinishFetch fired %d times, want 0", hooks.finished)
			}
		})
	}
}

func TestSignInSuccess(t *testing.T) {
	auth := &fakeAuth{res: &network.LoginResult{Response: 1, UserID: "u-1", Token: "tok"}}
	vm, d := newTestLogin(auth)
	vm.Email.Set("a@b.com")
	vm.Password.Set("x")
	var hooks hookCounter
	hooks.install(&vm.Status)

	vm.SignIn(context.Background())
	d.settle(t)

	if _, ok := vm.LastError(); ok {
		t.Error("LastError() reports an error after success")
	}
	if vm.IsLoading() {
		t.Error("IsLoading() = true after success")
	}
	if hooks.finished != 1 {
		t.Errorf("DidFinishFetch fired %d times, want 1", hooks.finished)
	}
	if !vm.Session().LoggedIn() || vm.Session().UserID() != "u-1" || vm.Session().Token() != "tok" {
		t.Errorf("session = logged in %v, user %q, token %q",
			vm.Session().LoggedIn(), vm.Session().UserID(), vm.Session().Token())
	}

	auth.mu.Lock()
	defer auth.mu.Unlock()
	if auth.gotEmail != "a@b.com" || auth.gotPasswd != "x" {
		t.Errorf("collaborator got (%q, %q)", auth.gotEmail, auth.gotPasswd)
	}

	want := []string{"loading", "alert", "loading", "finish"}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("hook order mismatch (-want +got):\n%s", diff)
	}
}

func TestSignInLoadingHookChurn(t *testing.T) {
	vm, d := newTestLogin(&fakeAuth{err: errors.New("timeout")})
	var hooks hookCounter
	hooks.install(&vm.Status)

	vm.SignIn(context.Background())
	if !vm.IsLoading() {
		t.Fatal("IsLoading() = false while the call is in flight")
	}
	if hooks.loading != 1 {
		t.Fatalf("UpdateLoadingStatus fired %d times before completion, want 1", hooks.loading)
	}
	d.settle(t)

	if hooks.loading < 2 {
		t.Errorf("UpdateLoadingStatus fired %d times, want at least 2", hooks.loading)
	}
	if diff := cmp.Diff([]bool{true, false}, hooks.loadingSeen); diff != "" {
		t.Errorf("loading values mismatch (-want +got):\n%s", diff)
	}
}

func TestSignInRetryOverwritesError(t *testing.T) {
	auth := &fakeAuth{err: errors.New("Network down")}
	vm, d := newTestLogin(auth)

	vm.SignIn(context.Background())
	d.settle(t)
	if _, ok := vm.LastError(); !ok {
		t.Fatal("expected an error after the first attempt")
	}

	auth.mu.Lock()
	auth.err = nil
	auth.res = &network.LoginResult{Response: 1}
	auth.mu.Unlock()

	vm.SignIn(context.Background())
	d.settle(t)
	if msg, ok := vm.LastError(); ok {
		t.Errorf("LastError() = %q after a successful retry", msg)
	}
}

func TestSignInUnsetHooks(t *testing.T) {
	vm, d := newTestLogin(&fakeAuth{res: &network.LoginResult{Response: 1}})
	vm.SignIn(context.Background())
	d.settle(t)

	if !vm.Session().LoggedIn() {
		t.Error("session not logged in")
	}
}

func TestSignInReplacedFinishHook(t *testing.T) {
	vm, d := newTestLogin(&fakeAuth{res: &network.LoginResult{Response: 1}})
	first, second := 0, 0
	vm.Hooks.DidFinishFetch = func() { first++ }

	vm.SignIn(context.Background())
	vm.Hooks.DidFinishFetch = func() { second++ }
	d.settle(t)

	if first != 0 || second != 1 {
		t.Errorf("finish hooks fired (first %d, second %d), want (0, 1)", first, second)
	}
}

func TestSignInObserver(t *testing.T) {
	obs := &recordingObserver{}
	vm, d := newTestLogin(&fakeAuth{res: &network.LoginResult{}}, WithObserver(obs))

	vm.SignIn(context.Background())
	d.settle(t)

	if diff := cmp.Diff([]string{ActionSignIn}, obs.started); diff != "" {
		t.Errorf("started mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Outcome{OutcomeLogicalFailure}, obs.finished); diff != "" {
		t.Errorf("finished mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLoginDefaultsSession(t *testing.T) {
	vm := NewLogin(&fakeAuth{}, nil)
	if vm.Session() == nil {
		t.Fatal("Session() = nil")
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func threeUsers() []network.PropertyListUser {
	return []network.PropertyListUser{
		{Id: intPtr(1), FirstName: strPtr("Ada")},
		{Id: intPtr(2), FirstName: strPtr("Alan")},
		{Id: intPtr(3), FirstName: strPtr("Grace")},
	}
}

func newTestUsers(dir network.Directory, opts ...Option) (*UsersViewModel, testDispatcher) {
	d := make(testDispatcher, 1)
	opts = append([]Option{WithDispatcher(d), WithLogger(quietLogger())}, opts...)
	return NewUsers(dir, "agent", opts...), d
}

func TestPopulateSourcesSuccess(t *testing.T) {
	dir := &fakeDirectory{res: &network.UsersResult{Response: 1, PropertyList: threeUsers()}}
	vm, d := newTestUsers(dir)
	var hooks hookCounter
	hooks.install(&vm.Status)

	replaced := 0
	vm.BindSources(func(records []network.PropertyListUser) {
		replaced++
		hooks.events = append(hooks.events, "sources")
		if len(records) != 3 {
			t.Errorf("listener got %d records, want 3", len(records))
		}
	})

	vm.PopulateSources(context.Background())
	d.settle(t)

	if _, ok := vm.LastError(); ok {
		t.Error("LastError() reports an error after success")
	}
	if vm.IsLoading() {
		t.Error("IsLoading() = true after success")
	}
	if len(vm.Sources()) != 3 {
		t.Errorf("len(Sources()) = %d, want 3", len(vm.Sources()))
	}
	if hooks.finished != 1 {
		t.Errorf("DidFinishFetch fired %d times, want 1", hooks.finished)
	}
	if replaced != 1 {
		t.Errorf("sources listener fired %d times, want 1", replaced)
	}

	want := []string{"loading", "alert", "loading", "sources", "finish"}
	if diff := cmp.Diff(want, hooks.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}

	dir.mu.Lock()
	defer dir.mu.Unlock()
	if dir.gotCategory != "agent" {
		t.Errorf("category = %q, want agent", dir.gotCategory)
	}
}

func TestPopulateSourcesFailureKeepsRecords(t *testing.T) {
	dir := &fakeDirectory{res: &network.UsersResult{Response: 1, PropertyList: threeUsers()}}
	vm, d := newTestUsers(dir)
	vm.PopulateSources(context.Background())
	d.settle(t)

	dir.mu.Lock()
	dir.res, dir.err = nil, errors.New("Network down")
	dir.mu.Unlock()

	var hooks hookCounter
	hooks.install(&vm.Status)
	replaced := 0
	vm.BindSources(func([]network.PropertyListUser) { replaced++ })

	vm.PopulateSources(context.Background())
	d.settle(t)

	if msg, ok := vm.LastError(); !ok || msg != "Network down" {
		t.Errorf("LastError() = (%q, %v)", msg, ok)
	}
	if vm.IsLoading() {
		t.Error("IsLoading() = true after failure")
	}
	if hooks.finished != 0 {
		t.Errorf("DidFinishFetch fired %d times, want 0", hooks.finished)
	}
	if replaced != 0 {
		t.Errorf("sources replaced %d times on failure", replaced)
	}
	if len(vm.Sources()) != 3 {
		t.Errorf("len(Sources()) = %d, want previous 3", len(vm.Sources()))
	}
	if hooks.loading < 2 {
		t.Errorf("UpdateLoadingStatus fired %d times, want at least 2", hooks.loading)
	}
}

func TestPopulateSourcesRejected(t *testing.T) {
	vm, d := newTestUsers(&fakeDirectory{res: &network.UsersResult{Msg: "No users found"}})
	vm.PopulateSources(context.Background())
	d.settle(t)

	if msg, _ := vm.LastError(); msg != "No users found" {
		t.Errorf("LastError() = %q, want %q", msg, "No users found")
	}
}

func TestPopulateSourcesEmptyList(t *testing.T) {
	vm, d := newTestUsers(&fakeDirectory{res: &network.UsersResult{Response: 1}})
	var got []network.PropertyListUser
	vm.BindSources(func(records []network.PropertyListUser) { got = records })

	vm.PopulateSources(context.Background())
	d.settle(t)

	if got == nil {
		t.Error("listener received a nil list, want an empty one")
	}
	if len(vm.Sources()) != 0 {
		t.Errorf("len(Sources()) = %d, want 0", len(vm.Sources()))
	}
}

func TestObserveSources(t *testing.T) {
	vm, d := newTestUsers(&fakeDirectory{res: &network.UsersResult{Response: 1, PropertyList: threeUsers()}})
	bound, observed := 0, 0
	vm.BindSources(func([]network.PropertyListUser) { bound++ })
	sub := vm.ObserveSources(func([]network.PropertyListUser) { observed++ })

	vm.PopulateSources(context.Background())
	d.settle(t)
	sub.Cancel()
	vm.PopulateSources(context.Background())
	d.settle(t)

	if bound != 2 || observed != 1 {
		t.Errorf("bound %d, observed %d; want 2, 1", bound, observed)
	}
}

func TestUsersValidateAlwaysValid(t *testing.T) {
	vm, _ := newTestUsers(&fakeDirectory{})
	if !vm.Validate().Valid() {
		t.Error("Validate() reported broken rules")
	}
	if len(vm.BrokenRules()) != 0 {
		t.Error("BrokenRules() not empty")
	}
}

func TestStatusHooksAreIndependent(t *testing.T) {
	var st Status
	var hooks hookCounter
	hooks.install(&st)

	st.SetError("x")
	st.ClearError()
	st.SetLoading(true)

	if hooks.alerts != 2 || hooks.loading != 1 {
		t.Errorf("alerts %d, loading %d; want 2, 1", hooks.alerts, hooks.loading)
	}
	if _, ok := st.LastError(); ok {
		t.Error("error still set after ClearError")
	}
	if !st.IsLoading() {
		t.Error("IsLoading() = false after SetLoading(true)")
	}
}

type outcomeObserver chan Outcome

func (outcomeObserver) ActionStarted(string) {}

func (o outcomeObserver) ActionFinished(_ string, outcome Outcome, _ time.Duration) {
	o <- outcome
}

func TestSignInDiscardedCompletion(t *testing.T) {
	queue := dispatch.NewQueue(1, quietLogger())
	queue.Close()

	obs := make(outcomeObserver, 1)
	vm := NewLogin(&fakeAuth{res: &network.LoginResult{Response: 1}}, session.New(),
		WithDispatcher(queue), WithLogger(quietLogger()), WithObserver(obs))
	var hooks hookCounter
	hooks.install(&vm.Status)

	vm.SignIn(context.Background())

	select {
	case got := <-obs:
		if got != OutcomeDiscarded {
			t.Errorf("outcome = %q, want %q", got, OutcomeDiscarded)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no outcome reported for discarded completion")
	}
	if hooks.loading != 1 || hooks.alerts != 0 || hooks.finished != 0 {
		t.Errorf("hooks = %+v, want only the loading raise", hooks)
	}
	if vm.Session().LoggedIn() {
		t.Error("session marked logged in by a discarded completion")
	}
}
