package formskema

// Package formskema provides:
//
// - A reactive form-validation engine over a mutable Values cell (errors map,
//   derived validity, trigger-driven field validation, whole-form validation)
// - A stable violation model (dotted path, verbatim message) mirroring the
//   goskema Issues shape
// - Schema-coerced sanitized extraction of the current values
//
// Design policy:
// - Keep only public APIs in the root package; the goskema-backed schema
//   source lives under skema/ and the cell primitives under reactive/.
// - Domain validation outcomes are values in the errors map, never Go errors;
//   only structural misuse (bad schema shape, malformed trigger) errors.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	values := reactive.NewState(formskema.Values{"name": "Jo"})
//	schema := skema.Object().
//		Field("name", g.SchemaOf[string](skema.String().MinLen(5))).
//		Require("name").
//		MustBuild()
//	eng, err := formskema.New(values, schema)
//	_ = eng.HandleFieldTrigger(ctx, "name")
//	eng.Errors().Get()  // {"name": {Invalid: true, Message: "too short"}}
