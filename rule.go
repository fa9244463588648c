package cankit

import (
	"fmt"
	"reflect"
)

// Sentinel action and target values.
const (
	// ActionManage matches every action for rules sharing its model/target.
	ActionManage = "manage"

	// TargetAll matches every target value and target type for rules
	// sharing its model/action.
	TargetAll = "all"
)

// Rule is a single declared ability entry. Rules are immutable once created:
// Declare is the only way to produce them and there is no update or delete.
// Revocation requires constructing a new Ability.
type Rule struct {
	model     any
	action    string
	target    any
	condition ConditionFunc
}

// Model returns the actor-type descriptor this rule applies to.
func (r Rule) Model() any {
	return r.model
}

// Action returns the action this rule grants, possibly ActionManage.
func (r Rule) Action() string {
	return r.action
}

// Target returns the target descriptor this rule grants access to,
// possibly TargetAll.
func (r Rule) Target() any {
	return r.target
}

// HasCondition reports whether the rule carries a condition.
func (r Rule) HasCondition() bool {
	return r.condition != nil
}

func (r Rule) matchesModel(performer any, instanceOf InstanceOfFunc) bool {
	return instanceOf(performer, r.model)
}

func (r Rule) matchesTarget(target any, instanceOf InstanceOfFunc) bool {
	if s, ok := r.target.(string); ok && s == TargetAll {
		return true
	}
	// Exact value match enables "this exact instance" rules; the
	// instance-of fallback enables "any instance of this type" rules.
	if equalValues(target, r.target) {
		return true
	}
	return instanceOf(target, r.target)
}

func (r Rule) matchesAction(action string) bool {
	return r.action == ActionManage || r.action == action
}

// equalValues is == on interface values, guarded so uncomparable dynamic
// types (maps, slices, funcs) report false instead of panicking.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// normalizeActions turns a bare action string or a sequence of action
// strings into a slice. Order is preserved and duplicates are kept.
func normalizeActions(actions any) ([]string, error) {
	switch a := actions.(type) {
	case string:
		return []string{a}, nil
	case []string:
		return append([]string(nil), a...), nil
	case []any:
		out := make([]string, 0, len(a))
		for _, v := range a {
			s, ok := v.(string)
			if !ok {
				return nil, NewError(ErrInvalidAction, fmt.Sprintf("unsupported action type %T", v))
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, NewError(ErrInvalidAction, fmt.Sprintf("unsupported actions type %T", actions))
	}
}

// normalizeTargets turns a bare target descriptor or a sequence of target
// descriptors into a slice. Order is preserved and duplicates are kept.
func normalizeTargets(targets any) []any {
	switch t := targets.(type) {
	case nil:
		return []any{nil}
	case []any:
		return append([]any(nil), t...)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		rv := reflect.ValueOf(targets)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := make([]any, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				out[i] = rv.Index(i).Interface()
			}
			return out
		}
		return []any{targets}
	}
}
