package press

import "fmt"

// ValidationError reports a rejected field value. It is returned by
// constructors and setters before any database access happens; storage
// failures surface as the driver's own errors instead.
type ValidationError struct {
	Field  string // e.g. "Author.name"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("press: %s %s", e.Field, e.Reason)
}

func errNonEmpty(field string) error {
	return &ValidationError{Field: field, Reason: "must be a non-empty string"}
}

func errRequired(field, want string) error {
	return &ValidationError{Field: field, Reason: "must be " + want}
}
