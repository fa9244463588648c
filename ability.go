package cankit

import (
	"sync"
)

// Ability holds the declared rules and answers authorization queries.
// Rules can only be appended; queries never mutate the rule list, so any
// number of queries may run concurrently with each other and with Declare.
//
// Configuration is per instance: two Abilities never share state.
type Ability struct {
	mu          sync.RWMutex
	rules       []Rule
	instanceOf  InstanceOfFunc
	createError CreateErrorFunc
}

// CreateErrorFunc builds the error Authorize returns on denial. It receives
// exactly the arguments the caller passed to Authorize.
type CreateErrorFunc func(performer any, action string, target any, options Options) error

// Option configures an Ability.
type Option func(*Ability)

// WithInstanceOf overrides the type-membership predicate used for model and
// target matching. The default is DefaultInstanceOf.
//
// Example:
//
//	ability := cankit.New(cankit.WithInstanceOf(func(instance, model any) bool {
//	    w, ok := instance.(Wrapped)
//	    if !ok {
//	        return cankit.DefaultInstanceOf(instance, model)
//	    }
//	    return cankit.DefaultInstanceOf(w.Inner, model)
//	}))
func WithInstanceOf(fn InstanceOfFunc) Option {
	return func(a *Ability) {
		a.instanceOf = fn
	}
}

// WithCreateError overrides the error Authorize produces on denial.
//
// Example:
//
//	ability := cankit.New(cankit.WithCreateError(func(performer any, action string, target any, options cankit.Options) error {
//	    return fmt.Errorf("%s on %T denied", action, target)
//	}))
func WithCreateError(fn CreateErrorFunc) Option {
	return func(a *Ability) {
		a.createError = fn
	}
}

// New creates a new Ability with an empty rule list.
func New(opts ...Option) *Ability {
	a := &Ability{
		instanceOf:  DefaultInstanceOf,
		createError: defaultCreateError,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func defaultCreateError(performer any, action string, target any, _ Options) error {
	return NewError(ErrUnauthorized, "not allowed to perform this action").
		WithPerformer(performer).
		WithAction(action).
		WithTarget(target)
}

// Declare appends rules granting actions on targets to performers matching
// model.
//
// actions is a single action string or a sequence of action strings; targets
// is a single target descriptor or a sequence of them. Every (action, target)
// pair in the cartesian product of the two normalized lists becomes one
// independent rule, all sharing the same condition. Duplicates are kept.
//
// The optional condition is either a condition function (see ConditionFunc
// and the convenience shapes normalizeCondition accepts) or an attribute map
// checked against the target. Any other value fails with ErrInvalidCondition
// before any rule is appended, leaving the rule list unchanged.
//
// Example:
//
//	ability.Declare(User{}, "read", Product{})
//	ability.Declare(User{}, []string{"read", "create"}, Product{})
//	ability.Declare(User{}, "read", Product{}, cankit.Options{"published": true})
//	ability.Declare(Admin{}, cankit.ActionManage, cankit.TargetAll)
func (a *Ability) Declare(model, actions, targets any, condition ...any) error {
	var raw any
	if len(condition) > 0 {
		raw = condition[0]
	}

	// Validation happens before any append so a failed Declare never
	// inserts a partial cartesian product.
	fn, err := normalizeCondition(raw)
	if err != nil {
		return err
	}

	actionList, err := normalizeActions(actions)
	if err != nil {
		return err
	}
	targetList := normalizeTargets(targets)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, action := range actionList {
		for _, target := range targetList {
			a.rules = append(a.rules, Rule{
				model:     model,
				action:    action,
				target:    target,
				condition: fn,
			})
		}
	}
	return nil
}

// Rules returns a snapshot of the declared rules in insertion order.
func (a *Ability) Rules() []Rule {
	return a.snapshot()
}

// RuleCount returns the number of declared rules.
func (a *Ability) RuleCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.rules)
}

func (a *Ability) snapshot() []Rule {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Rule(nil), a.rules...)
}
