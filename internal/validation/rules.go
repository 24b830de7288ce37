// Package validation holds the client-side form rules of the portal. Every form
// is an ordered list of rules evaluated first-failure-wins, producing at most one
// user-visible message.
package validation

// Rule pairs a predicate with the message shown when it does not hold.
type Rule struct {
	Check   func() bool
	Message string
}

// Result is the outcome of evaluating a rule list: valid, or invalid with a message.
type Result struct {
	invalid bool
	message string
}

// Valid is the passing result.
func Valid() Result {
	return Result{}
}

// Invalid builds a failing result carrying message.
func Invalid(message string) Result {
	return Result{invalid: true, message: message}
}

// OK reports whether every rule passed.
func (r Result) OK() bool {
	return !r.invalid
}

// Message is the first failing rule's message, empty when valid.
func (r Result) Message() string {
	return r.message
}

// Err converts the result into an error value, nil when valid.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Message: r.message}
}

// Error is a client-side validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// UserMessage exposes the message shown next to the form.
func (e *Error) UserMessage() string {
	return e.Message
}

// Evaluate runs rules in order and stops at the first failure.
func Evaluate(rules ...Rule) Result {
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if !rule.Check() {
			return Invalid(rule.Message)
		}
	}
	return Valid()
}

// Chain concatenates rule lists so multi-step forms can reuse earlier steps.
func Chain(groups ...[]Rule) []Rule {
	size := 0
	for _, group := range groups {
		size += len(group)
	}
	rules := make([]Rule, 0, size)
	for _, group := range groups {
		rules = append(rules, group...)
	}
	return rules
}
