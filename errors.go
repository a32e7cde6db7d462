package formskema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaType indicates the schema handed to New is not object-shaped
// (for example a bare field rule passed directly).
var ErrSchemaType = errors.New("formskema: schema must be object-shaped")

// ErrMissingNameAttribute indicates an event-like trigger whose target
// carries no name, so the field cannot be resolved.
var ErrMissingNameAttribute = errors.New("formskema: event target has no name")

// ErrUnsupportedTrigger indicates a trigger that is neither a field name nor
// an event-like value.
var ErrUnsupportedTrigger = errors.New("formskema: unsupported trigger")

// Violation is a single constraint failure reported by the schema source.
// Message is carried verbatim; Path is the dotted location of the failing
// value ("" for the whole document, "items.2.price" for nested entries).
type Violation struct {
	Path    string
	Message string
}

// Violations is an ordered collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vs[i]
		if v.Path == "" {
			b.WriteString(v.Message)
			continue
		}
		fmt.Fprintf(b, "%s at %s", v.Message, v.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// violationsOf never returns an empty slice for a non-nil error: schema
// sources that do not speak Violations degrade to a single pathless entry.
func violationsOf(err error) Violations {
	if vs, ok := AsViolations(err); ok && len(vs) > 0 {
		return vs
	}
	return Violations{{Message: err.Error()}}
}
