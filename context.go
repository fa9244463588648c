package cankit

import (
	"context"
)

// Context keys for CanKit values.
type contextKey string

const (
	contextKeyPerformer contextKey = "cankit:performer"
	contextKeyAbility   contextKey = "cankit:ability"
)

// WithPerformer adds the performer to the context.
// This is the actor authorization queries are answered for.
func WithPerformer(ctx context.Context, performer any) context.Context {
	return context.WithValue(ctx, contextKeyPerformer, performer)
}

// PerformerFromContext retrieves the performer from context.
// Returns nil if not set.
func PerformerFromContext(ctx context.Context) any {
	return ctx.Value(contextKeyPerformer)
}

// MustPerformerFromContext retrieves the performer from context.
// Panics if not set.
func MustPerformerFromContext(ctx context.Context) any {
	performer := PerformerFromContext(ctx)
	if performer == nil {
		panic("cankit: performer not in context")
	}
	return performer
}

// WithAbility adds an Ability to the context, typically done by middleware
// so handlers can issue further queries.
func WithAbility(ctx context.Context, ability *Ability) context.Context {
	return context.WithValue(ctx, contextKeyAbility, ability)
}

// AbilityFromContext retrieves the Ability from context.
// Returns nil if not set.
func AbilityFromContext(ctx context.Context) *Ability {
	if v := ctx.Value(contextKeyAbility); v != nil {
		if a, ok := v.(*Ability); ok {
			return a
		}
	}
	return nil
}

// MustAbilityFromContext retrieves the Ability from context.
// Panics if not set.
func MustAbilityFromContext(ctx context.Context) *Ability {
	ability := AbilityFromContext(ctx)
	if ability == nil {
		panic("cankit: ability not in context")
	}
	return ability
}
