// Package validation computes broken-rule lists for view-model forms.
//
// A validation pass is a command: Run evaluates every rule and returns a
// fresh Result. Result.Valid is a pure predicate over that result; nothing
// in this package re-validates on read.
package validation

// BrokenRule records a single failed check.
type BrokenRule struct {
	PropertyName string `json:"propertyName"`
	Message      string `json:"message"`
}

// String returns "PropertyName: Message".
func (r BrokenRule) String() string {
	return r.PropertyName + ": " + r.Message
}

// Result is the ordered list of rules broken by one validation pass.
type Result struct {
	rules []BrokenRule
}

// Valid reports whether no rule was broken.
func (r Result) Valid() bool {
	return len(r.rules) == 0
}

// Rules returns a copy of the broken rules in evaluation order.
func (r Result) Rules() []BrokenRule {
	if len(r.rules) == 0 {
		return nil
	}
	out := make([]BrokenRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Rule is a named check. Broken returns true when the check fails.
type Rule struct {
	Property string
	Message  string
	Broken   func() bool
}

// Required returns a rule broken when value returns the empty string.
func Required(property, message string, value func() string) Rule {
	if message == "" {
		message = "This field is required"
	}
	return Rule{
		Property: property,
		Message:  message,
		Broken:   func() bool { return value() == "" },
	}
}

// Run evaluates rules in order and returns one BrokenRule per failure.
// Rules with a nil Broken func are skipped.
func Run(rules ...Rule) Result {
	var res Result
	for _, rule := range rules {
		if rule.Broken == nil || !rule.Broken() {
			continue
		}
		res.rules = append(res.rules, BrokenRule{
			PropertyName: rule.Property,
			Message:      rule.Message,
		})
	}
	return res
}
