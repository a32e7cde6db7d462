package skema

import (
	"context"
	"regexp"
	"unicode/utf8"

	goskema "github.com/reoring/goskema"
	"github.com/reoring/goskema/dsl"
	"github.com/reoring/goskema/i18n"
	js "github.com/reoring/goskema/jsonschema"
)

// String returns a string schema with optional length and pattern
// constraints, which the goskema DSL does not ship for strings yet. Lengths
// count runes.
func String() *StringSchema {
	return &StringSchema{inner: dsl.String(), minLen: -1, maxLen: -1}
}

// StringSchema implements goskema.Schema[string] over the DSL string schema.
type StringSchema struct {
	inner   goskema.Schema[string]
	minLen  int
	maxLen  int
	pattern *regexp.Regexp
}

// MinLen sets the minimum allowed length.
func (s *StringSchema) MinLen(n int) *StringSchema { s.minLen = n; return s }

// MaxLen sets the maximum allowed length.
func (s *StringSchema) MaxLen(n int) *StringSchema { s.maxLen = n; return s }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema { s.pattern = re; return s }

func (s *StringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, err := s.inner.Parse(ctx, v)
	if err != nil {
		return "", err
	}
	if err := s.check(str); err != nil {
		return "", err
	}
	return str, nil
}

func (s *StringSchema) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[string], error) {
	str, err := s.Parse(ctx, v)
	return goskema.Decoded[string]{Value: str, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (s *StringSchema) TypeCheck(ctx context.Context, v any) error {
	return s.inner.TypeCheck(ctx, v)
}

func (s *StringSchema) RuleCheck(ctx context.Context, v any) error {
	if str, ok := v.(string); ok {
		return s.check(str)
	}
	return nil
}

func (s *StringSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *StringSchema) ValidateValue(ctx context.Context, v string) error {
	if err := s.inner.ValidateValue(ctx, v); err != nil {
		return err
	}
	return s.check(v)
}

func (s *StringSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string"}, nil
}

func (s *StringSchema) check(str string) error {
	n := utf8.RuneCountInString(str)
	if s.minLen >= 0 && n < s.minLen {
		return goskema.Issues{goskema.Issue{Path: "/", Code: goskema.CodeTooShort, Message: i18n.T(goskema.CodeTooShort, nil), Hint: "string is shorter than min"}}
	}
	if s.maxLen >= 0 && n > s.maxLen {
		return goskema.Issues{goskema.Issue{Path: "/", Code: goskema.CodeTooLong, Message: i18n.T(goskema.CodeTooLong, nil), Hint: "string is longer than max"}}
	}
	if s.pattern != nil && !s.pattern.MatchString(str) {
		return goskema.Issues{goskema.Issue{Path: "/", Code: goskema.CodePattern, Message: i18n.T(goskema.CodePattern, nil), Hint: s.pattern.String()}}
	}
	return nil
}
