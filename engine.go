package formskema

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/reoring/formskema/reactive"
)

// Mode selects when fields are validated automatically.
type Mode int

const (
	// OnBlur leaves validation to explicit HandleFieldTrigger calls.
	OnBlur Mode = iota
	// OnChange additionally installs a subscription on the values cell that
	// re-validates changed fields.
	OnChange
)

// Option configures an Engine at construction time.
type Option func(*options)

type options struct {
	mode   Mode
	policy *bluemonday.Policy
}

// WithMode sets the validation mode. Default is OnBlur.
func WithMode(m Mode) Option { return func(o *options) { o.mode = m } }

// WithInputPolicy scrubs string values through p before any validation or
// parse. Use bluemonday.StrictPolicy() to strip all markup from form input.
func WithInputPolicy(p *bluemonday.Policy) Option { return func(o *options) { o.policy = p } }

// Result is the outcome of a whole-form Validate call.
type Result struct {
	Valid     bool
	Sanitized Values
}

// Engine tracks per-field error state for a values cell against an object
// schema. An Engine owns its errors map exclusively; it must not be mutated
// concurrently from outside the engine's own operations.
type Engine struct {
	values reactive.Cell[Values]
	schema ObjectSchema
	shape  map[string]Rule
	errors *reactive.State[Errors]
	policy *bluemonday.Policy
	cancel func()
}

// New builds an Engine over the given values cell and schema. The schema
// must implement ObjectSchema or construction fails with ErrSchemaType.
func New(values reactive.Cell[Values], schema any, opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	os, shape, err := adaptSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("formskema: new engine: %w", err)
	}
	e := &Engine{
		values: values,
		schema: os,
		shape:  shape,
		errors: reactive.NewState(Errors{}),
		policy: o.policy,
	}
	if o.mode == OnChange {
		// TODO: single-field edits are skipped by the <2 threshold below;
		// revisit whether the common one-field case should auto-validate.
		e.cancel = values.Subscribe(func(next, prev Values) {
			changed := changedKeys(prev, next)
			if len(changed) < 2 {
				return
			}
			for _, name := range changed {
				e.validateField(context.Background(), name, next[name])
			}
		})
	}
	return e, nil
}

// Close cancels the OnChange subscription, if any.
func (e *Engine) Close() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Errors exposes the per-field error map. Every read returns a copy; the
// engine's own map is only ever mutated through its operations, so caller
// writes to the returned map have no effect on engine state.
func (e *Engine) Errors() reactive.Readable[Errors] {
	return reactive.Derive(func() Errors {
		cur := e.errors.Get()
		out := make(Errors, len(cur))
		for k, v := range cur {
			out[k] = v
		}
		return out
	})
}

// IsValid derives aggregate validity from the errors map on every read.
func (e *Engine) IsValid() reactive.Readable[bool] {
	return reactive.Derive(func() bool { return e.errors.Get().Valid() })
}

// HandleFieldTrigger validates one field. The trigger is either a field name
// or an Event; see resolveTrigger for the value-selection rules. Names not
// present in the schema shape are skipped silently.
func (e *Engine) HandleFieldTrigger(ctx context.Context, trigger any) error {
	name, value, err := resolveTrigger(trigger, e.values.Get())
	if err != nil {
		return err
	}
	e.validateField(ctx, name, value)
	return nil
}

// OverrideFieldError sets the error state for name unconditionally, schema
// membership ignored. Intended for server-side or cross-field errors the
// schema cannot express.
func (e *Engine) OverrideFieldError(name string, state ErrorState) {
	e.setError(name, state)
}

// Validate parses the whole values map against the schema. The errors map is
// replaced wholesale: emptied on success, keyed by each violation's dotted
// path on failure. Sanitized carries the coerced output on success and stays
// empty on failure; both come from the same single parse call.
func (e *Engine) Validate(ctx context.Context) Result {
	data, err := e.schema.Parse(ctx, e.scrub(e.values.Get()))
	if err != nil {
		next := Errors{}
		for _, v := range violationsOf(err) {
			next[v.Path] = Fail(v.Message)
		}
		e.errors.Set(next)
		return Result{Valid: next.Valid(), Sanitized: Values{}}
	}
	e.errors.Set(Errors{})
	return Result{Valid: true, Sanitized: Values(data)}
}

// SanitizedValues runs the whole-object parse and returns the coerced values,
// or an empty map when the current values do not satisfy the schema. It never
// returns partial data and never touches the errors map.
func (e *Engine) SanitizedValues(ctx context.Context) Values {
	data, err := e.schema.Parse(ctx, e.scrub(e.values.Get()))
	if err != nil {
		return Values{}
	}
	return Values(data)
}

// Clear resets the errors map to empty.
func (e *Engine) Clear() { e.errors.Set(Errors{}) }

func (e *Engine) validateField(ctx context.Context, name string, value any) {
	rule, ok := e.shape[name]
	if !ok {
		return
	}
	if s, isStr := value.(string); isStr && e.policy != nil {
		value = e.policy.Sanitize(s)
	}
	if err := rule.Validate(ctx, value); err != nil {
		e.setError(name, Fail(violationsOf(err)[0].Message))
		return
	}
	e.setError(name, ErrorState{})
}

func (e *Engine) setError(name string, state ErrorState) {
	cur := e.errors.Get()
	next := make(Errors, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[name] = state
	e.errors.Set(next)
}

func (e *Engine) scrub(values Values) Values {
	if e.policy == nil {
		return values
	}
	out := make(Values, len(values))
	for k, v := range values {
		if s, ok := v.(string); ok {
			out[k] = e.policy.Sanitize(s)
			continue
		}
		out[k] = v
	}
	return out
}
