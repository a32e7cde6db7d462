package formskema

import "context"

// Rule checks a single field's value. A nil error means the value passed.
// Errors should unwrap to Violations (see AsViolations) so the schema
// source's messages survive verbatim; anything else degrades to err.Error().
type Rule interface {
	Validate(ctx context.Context, v any) error
}

// ObjectSchema is the engine's view of an object-shaped schema: a per-field
// rule table plus a whole-object parse that returns the coerced values.
//
// Parse must report failures through an error unwrapping to Violations and
// must never return partial data alongside one.
type ObjectSchema interface {
	Shape() map[string]Rule
	Parse(ctx context.Context, values map[string]any) (map[string]any, error)
}

// adaptSchema checks object-shapedness and snapshots the rule table once.
// Field-name validity is decided by map membership from here on, never by
// probing the schema value.
func adaptSchema(schema any) (ObjectSchema, map[string]Rule, error) {
	os, ok := schema.(ObjectSchema)
	if !ok {
		return nil, nil, ErrSchemaType
	}
	src := os.Shape()
	shape := make(map[string]Rule, len(src))
	for name, rule := range src {
		shape[name] = rule
	}
	return os, shape, nil
}
