// Package validation is a small rule engine for request bodies: an ordered
// list of per-field checks, evaluated eagerly so a response can report
// every violation at once.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule is one field check. Check returns false when the rule is violated;
// a non-nil error aborts evaluation (e.g. the store was unreachable).
type Rule struct {
	Field   string
	Message string
	Check   func(ctx context.Context) (bool, error)
}

// Run evaluates every rule in order and returns the messages of all
// violated rules. It never short-circuits on a failed rule.
func Run(ctx context.Context, rules []Rule) ([]string, error) {
	var msgs []string
	for _, rule := range rules {
		ok, err := rule.Check(ctx)
		if err != nil {
			return nil, fmt.Errorf("validating %q: %w", rule.Field, err)
		}
		if !ok {
			msgs = append(msgs, rule.Message)
		}
	}
	return msgs, nil
}

// Required fails on an empty or whitespace-only value.
func Required(field, value string) Rule {
	return Rule{
		Field:   field,
		Message: fmt.Sprintf("Please provide a value for %q", field),
		Check: func(context.Context) (bool, error) {
			return strings.TrimSpace(value) != "", nil
		},
	}
}

// Email fails when the value is not a syntactically valid email address.
// An empty value passes; pair with Required so each problem gets its own
// message.
func Email(field, value string) Rule {
	return Rule{
		Field:   field,
		Message: fmt.Sprintf("Please provide a valid email address for %q", field),
		Check: func(context.Context) (bool, error) {
			if value == "" {
				return true, nil
			}
			return validate.Var(value, "email") == nil, nil
		},
	}
}

// Custom wraps an arbitrary predicate, typically one that queries the
// store (e.g. email uniqueness).
func Custom(field, message string, check func(ctx context.Context) (bool, error)) Rule {
	return Rule{Field: field, Message: message, Check: check}
}
