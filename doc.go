// Package cankit provides an embeddable, type-agnostic authorization engine.
//
// CanKit answers one question: may this performer perform this action on
// this target? Rules ("abilities") are declared in code against model types,
// and queries are resolved purely in memory. There is no persistence, no
// policy language and no built-in identity system; the engine is a decision
// procedure you embed wherever authorization decisions are made.
//
// # Core Concepts
//
// Model: the actor-type descriptor a rule applies to, usually a zero value
// of the performer's type (e.g. User{}). Membership is decided by an
// injectable predicate, so foreign object systems can be adapted.
//
// Action: a string like "read" or "destroy". The sentinel ActionManage
// ("manage") matches every action.
//
// Target: what the action is performed on — a type descriptor (Product{}),
// a specific instance (&product), or the sentinel TargetAll ("all") which
// matches everything.
//
// Condition: an optional predicate attached to a rule. It is either a
// function receiving (performer, target, options), possibly blocking and
// evaluated concurrently across rules, or an attribute map matched against
// the target's attributes.
//
// # Basic Usage
//
//	// 1. Declare abilities (at application startup)
//	ability := cankit.New()
//
//	ability.Declare(User{}, []string{"read", "create"}, Product{})
//	ability.Declare(User{}, "update", Product{}, cankit.Options{"published": true})
//	ability.Declare(User{}, "destroy", Product{},
//	    func(performer, target any) bool {
//	        return target.(*Product).OwnerID == performer.(*User).ID
//	    })
//	ability.Declare(Admin{}, cankit.ActionManage, cankit.TargetAll)
//
//	// 2. Query
//	ok, err := ability.Can(ctx, user, "read", product)
//
//	// 3. Or enforce
//	if err := ability.Authorize(ctx, user, "destroy", product); err != nil {
//	    // denied (or a condition failed)
//	}
//
// # Rules and Matching
//
// Each Declare call appends one rule per (action, target) pair in the
// cartesian product of its action and target lists. A query matches a rule
// when the performer is an instance of the rule's model, the target equals
// the rule's target or is an instance of it (or the rule targets
// TargetAll), and the action equals the rule's action (or the rule grants
// ActionManage). The decision is true as soon as any matching rule passes
// its condition — rules combine with OR, there is no deny or priority
// mechanism.
//
// Conditions of all matching rules run concurrently and the query waits for
// every one of them. A condition returning an error fails the whole query
// rather than counting as a deny.
//
// # Attribute-Map Conditions
//
// A condition declared as an attribute map passes when every key equals the
// target's corresponding attribute:
//
//	ability.Declare(User{}, "read", Product{}, cankit.Options{"published": true})
//
// Attributes are read through the AttributeGetter interface when the target
// implements it, with map lookup and exported struct fields as fallbacks.
//
// # Configuration
//
// Both extension points are per instance:
//
//	ability := cankit.New(
//	    cankit.WithInstanceOf(customMembership),
//	    cankit.WithCreateError(func(performer any, action string, target any, options cankit.Options) error {
//	        return &AccessDenied{Action: action}
//	    }),
//	)
//
// # Middleware Usage
//
//	mw := cankit.NewMiddleware(ability,
//	    cankit.WithPerformerExtractor(userFromSession),
//	)
//
//	router.With(mw.RequireCan("update", cankit.TargetFromContext(productKey))).
//	    Put("/products/{productID}", updateProductHandler)
//
// Handlers behind the middleware can retrieve the ability again with
// AbilityFromContext for finer-grained checks.
package cankit
