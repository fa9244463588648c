package cankit

import (
	"errors"
	"net/http"
)

// Middleware provides HTTP middleware for ability checking.
type Middleware struct {
	ability      *Ability
	getPerformer func(*http.Request) any
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := cankit.NewMiddleware(ability,
//	    cankit.WithPerformerExtractor(func(r *http.Request) any {
//	        return userFromSession(r)
//	    }),
//	)
func NewMiddleware(ability *Ability, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		ability:      ability,
		getPerformer: defaultGetPerformer,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithPerformerExtractor sets a custom function to extract the performer
// from a request.
func WithPerformerExtractor(fn func(*http.Request) any) MiddlewareOption {
	return func(m *Middleware) {
		m.getPerformer = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetPerformer(r *http.Request) any {
	return PerformerFromContext(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsUnauthorized(err) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, ErrNoPerformer) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// TargetExtractor extracts the query target from an HTTP request.
type TargetExtractor func(*http.Request) (any, error)

// StaticTarget creates a TargetExtractor that always returns the same
// target. Useful for global resources or type-level checks.
//
// Example:
//
//	mw.RequireCan("read", cankit.StaticTarget(Dashboard{}))
func StaticTarget(target any) TargetExtractor {
	return func(*http.Request) (any, error) {
		return target, nil
	}
}

// TargetFromContext creates a TargetExtractor that reads the target from a
// context value, set by an earlier middleware that loaded the resource.
func TargetFromContext(contextKey any) TargetExtractor {
	return func(r *http.Request) (any, error) {
		return r.Context().Value(contextKey), nil
	}
}

// RequireCan creates middleware that requires the performer to be allowed
// to perform action on the extracted target.
//
// Example:
//
//	router.With(mw.RequireCan("update", cankit.TargetFromContext(productKey))).
//	    Put("/products/{productID}", updateProductHandler)
func (m *Middleware) RequireCan(action string, extractor TargetExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			performer := m.getPerformer(r)
			if performer == nil {
				m.errorHandler(w, r, ErrNoPerformer)
				return
			}

			target, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if err := m.ability.Authorize(ctx, performer, action, target); err != nil {
				m.errorHandler(w, r, err)
				return
			}

			// Add the ability to context for use in handlers.
			r = r.WithContext(WithAbility(ctx, m.ability))
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCanAny creates middleware that requires the performer to be allowed
// to perform at least one of the actions on the extracted target.
func (m *Middleware) RequireCanAny(actions []string, extractor TargetExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			performer := m.getPerformer(r)
			if performer == nil {
				m.errorHandler(w, r, ErrNoPerformer)
				return
			}

			target, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			allowed := false
			for _, action := range actions {
				ok, err := m.ability.Can(ctx, performer, action, target)
				if err != nil {
					m.errorHandler(w, r, err)
					return
				}
				if ok {
					allowed = true
					break
				}
			}
			if !allowed {
				m.errorHandler(w, r, NewError(ErrUnauthorized, "no allowed action").
					WithPerformer(performer).
					WithTarget(target))
				return
			}

			r = r.WithContext(WithAbility(ctx, m.ability))
			next.ServeHTTP(w, r)
		})
	}
}
