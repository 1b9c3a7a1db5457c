// Package observable provides the value cell that view-models expose to
// their presentation layer.
//
// A Cell holds one value and at most one primary listener. Every write
// notifies the listener synchronously, after the value is stored:
//
//	email := observable.New("")
//	email.BindAndFire(func(v string) { label.SetText(v) }) // fires with ""
//	email.Set("a@b.com")                                   // fires again
//	email.Set("a@b.com")                                   // and again
//
// Writes are not deduplicated. Binding a new listener discards the old
// one; binding nil clears it.
//
// # Observers
//
// Observe registers additional listeners keyed by a Subscription handle.
// They are notified after the primary listener, in subscription order,
// and leave the single-listener contract of Bind untouched.
package observable
