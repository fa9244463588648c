package cankit

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Can reports whether performer may perform action on target.
//
// The decision is existential over the declared rules: it is true iff at
// least one rule matches the performer's model, the target and the action,
// and its condition (if any) passes. Conditions of all matching rules are
// evaluated concurrently; Can waits for every one of them to settle.
//
// A condition returning a non-nil error fails the whole query: the error is
// returned and never coerced into a deny.
func (a *Ability) Can(ctx context.Context, performer any, action string, target any, options ...Options) (bool, error) {
	opts := Options{}
	if len(options) > 0 && options[0] != nil {
		opts = options[0]
	}

	matching := lo.Filter(a.snapshot(), func(r Rule, _ int) bool {
		return r.matchesModel(performer, a.instanceOf) &&
			r.matchesTarget(target, a.instanceOf) &&
			r.matchesAction(action)
	})

	// An unconditional matching rule decides the query on its own.
	if lo.SomeBy(matching, func(r Rule) bool { return !r.HasCondition() }) {
		return true, nil
	}

	conditional := lo.Filter(matching, func(r Rule, _ int) bool { return r.HasCondition() })
	if len(conditional) == 0 {
		return false, nil
	}

	results := make([]bool, len(conditional))
	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range conditional {
		i, rule := i, rule
		g.Go(func() error {
			ok, err := rule.condition(gctx, performer, target, opts)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	return lo.SomeBy(results, func(ok bool) bool { return ok }), nil
}

// Cannot is the boolean complement of Can with identical inputs and
// identical error propagation.
func (a *Ability) Cannot(ctx context.Context, performer any, action string, target any, options ...Options) (bool, error) {
	ok, err := a.Can(ctx, performer, action, target, options...)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Authorize returns nil when performer may perform action on target, and the
// configured denial error otherwise. The error factory (see WithCreateError)
// receives exactly the arguments passed here; the default produces
// ErrUnauthorized wrapped with the query context.
//
// A condition failure is returned as-is, not replaced by the denial error.
func (a *Ability) Authorize(ctx context.Context, performer any, action string, target any, options ...Options) error {
	ok, err := a.Can(ctx, performer, action, target, options...)
	if err != nil {
		return err
	}
	if !ok {
		opts := Options{}
		if len(options) > 0 && options[0] != nil {
			opts = options[0]
		}
		return a.createError(performer, action, target, opts)
	}
	return nil
}
