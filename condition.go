package cankit

import (
	"context"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Options is the open attribute map passed through from a query to condition
// functions. It defaults to an empty map when the caller omits it.
type Options map[string]any

// ConditionFunc is the canonical condition shape every declared condition is
// normalized into. It reports whether the rule applies to this performer,
// target and options. A non-nil error fails the enclosing query; it is never
// treated as "false".
//
// Conditions may block (e.g. on I/O); the engine runs the conditions of all
// matching rules concurrently and waits for every one of them to settle.
type ConditionFunc func(ctx context.Context, performer, target any, options Options) (bool, error)

// AttributeGetter lets opaque targets expose attributes to attribute-map
// conditions through a uniform accessor instead of struct fields or map keys.
type AttributeGetter interface {
	GetAttribute(key string) any
}

// normalizeCondition converts the accepted condition forms into a single
// canonical ConditionFunc. A nil condition yields a nil ConditionFunc,
// meaning the rule always passes once the match filters pass.
//
// Accepted forms:
//   - nil
//   - ConditionFunc (or an untyped func with the same signature)
//   - func(performer, target any) bool
//   - func(performer, target any, options Options) bool
//   - Options / map[string]any attribute map, desugared into a conjunction
//     of equality checks over the target's attributes
func normalizeCondition(condition any) (ConditionFunc, error) {
	switch c := condition.(type) {
	case nil:
		return nil, nil
	case ConditionFunc:
		return c, nil
	case func(context.Context, any, any, Options) (bool, error):
		return c, nil
	case func(performer, target any) bool:
		return func(_ context.Context, performer, target any, _ Options) (bool, error) {
			return c(performer, target), nil
		}, nil
	case func(performer, target any, options Options) bool:
		return func(_ context.Context, performer, target any, options Options) (bool, error) {
			return c(performer, target, options), nil
		}, nil
	case Options:
		return attributeCondition(c), nil
	case map[string]any:
		return attributeCondition(c), nil
	default:
		return nil, newInvalidConditionError(condition)
	}
}

// attributeCondition desugars an attribute map into a predicate over the
// target's attributes only: the performer and options are ignored, and the
// rule passes iff every declared key equals the target's corresponding
// attribute.
func attributeCondition(attrs map[string]any) ConditionFunc {
	// Snapshot so later mutation of the caller's map cannot change the rule.
	want := make(map[string]any, len(attrs))
	for key, value := range attrs {
		want[key] = value
	}

	return func(_ context.Context, _, target any, _ Options) (bool, error) {
		for key, expected := range want {
			if !reflect.DeepEqual(ReadAttribute(target, key), expected) {
				return false, nil
			}
		}
		return true, nil
	}
}

// ReadAttribute reads a named attribute from a target. An AttributeGetter
// accessor takes precedence; otherwise map keys are looked up directly, and
// structs fall back to reflection over their exported fields (the key is
// matched as-is first, then with its first rune upper-cased). Returns nil
// when the attribute does not exist.
func ReadAttribute(target any, key string) any {
	if target == nil {
		return nil
	}

	if getter, ok := target.(AttributeGetter); ok {
		return getter.GetAttribute(key)
	}

	switch m := target.(type) {
	case Options:
		return m[key]
	case map[string]any:
		return m[key]
	}

	value := reflect.ValueOf(target)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	field := value.FieldByName(key)
	if !field.IsValid() {
		field = value.FieldByName(exportedName(key))
	}
	if !field.IsValid() || !field.CanInterface() {
		return nil
	}
	return field.Interface()
}

// exportedName upper-cases the first rune of key so "published" can match
// the exported struct field "Published".
func exportedName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
