// Package skema wires goskema in as the engine's schema source. Object()
// mirrors the goskema DSL builder and produces a formskema.ObjectSchema whose
// per-field rules and whole-object parse both run through goskema, so issue
// messages reach the errors map verbatim.
package skema

import (
	"context"
	"strings"

	goskema "github.com/reoring/goskema"
	"github.com/reoring/goskema/dsl"

	formskema "github.com/reoring/formskema"
)

// Builder assembles an object schema field by field.
type Builder struct {
	fields   map[string]dsl.AnyAdapter
	required map[string]struct{}
}

// Object creates an empty builder. Unknown keys are stripped on parse, so
// extra entries in the values map never fail whole-form validation.
func Object() *Builder {
	return &Builder{
		fields:   map[string]dsl.AnyAdapter{},
		required: map[string]struct{}{},
	}
}

// Field registers a field with its adapter and returns the builder.
func (b *Builder) Field(name string, ad dsl.AnyAdapter) *Builder {
	b.fields[name] = ad
	return b
}

// Require marks one or more fields as required for whole-form parsing.
// Single-field validation always sees the field's current value, so
// required-ness only matters when a key is missing from the values map.
func (b *Builder) Require(names ...string) *Builder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// Build produces the ObjectSchema. Each field also gets a dedicated
// single-field goskema object so per-field rules see the whole adapter
// chain, Min/Max wrappers included.
func (b *Builder) Build() (formskema.ObjectSchema, error) {
	ob := dsl.Object()
	for name, ad := range b.fields {
		ob.Field(name, ad)
	}
	for name := range b.required {
		ob.Require(name)
	}
	ob.UnknownStrip()
	whole, err := ob.Build()
	if err != nil {
		return nil, err
	}

	shape := make(map[string]formskema.Rule, len(b.fields))
	for name, ad := range b.fields {
		one, err := dsl.Object().Field(name, ad).UnknownStrip().Build()
		if err != nil {
			return nil, err
		}
		shape[name] = fieldRule{name: name, schema: one}
	}
	return &objectSchema{shape: shape, whole: whole}, nil
}

// MustBuild builds the schema or panics. Reserve it for statically known
// shapes such as tests and package-level declarations.
func (b *Builder) MustBuild() formskema.ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchema struct {
	shape map[string]formskema.Rule
	whole goskema.Schema[map[string]any]
}

func (s *objectSchema) Shape() map[string]formskema.Rule { return s.shape }

func (s *objectSchema) Parse(ctx context.Context, values map[string]any) (map[string]any, error) {
	out, err := s.whole.Parse(ctx, values)
	if err != nil {
		return nil, toViolations(err)
	}
	return out, nil
}

// fieldRule validates one field by parsing {name: value} through a
// single-field object schema.
type fieldRule struct {
	name   string
	schema goskema.Schema[map[string]any]
}

func (r fieldRule) Validate(ctx context.Context, v any) error {
	if _, err := r.schema.Parse(ctx, map[string]any{r.name: v}); err != nil {
		return toViolations(err)
	}
	return nil
}

// toViolations converts goskema Issues into the engine's violation model,
// keeping message order and text untouched.
func toViolations(err error) formskema.Violations {
	if iss, ok := goskema.AsIssues(err); ok && len(iss) > 0 {
		out := make(formskema.Violations, 0, len(iss))
		for _, is := range iss {
			out = append(out, formskema.Violation{Path: dottedPath(is.Path), Message: is.Message})
		}
		return out
	}
	return formskema.Violations{{Message: err.Error()}}
}

// dottedPath renders a JSON Pointer as a dotted path: "/items/2/price"
// becomes "items.2.price", the root pointer becomes "".
func dottedPath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~1", "/")
		segs[i] = strings.ReplaceAll(s, "~0", "~")
	}
	return strings.Join(segs, ".")
}
