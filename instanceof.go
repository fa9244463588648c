package cankit

import (
	"reflect"
)

// InstanceOfFunc decides whether instance is considered an instance of model.
// The model is an opaque descriptor; see DefaultInstanceOf for the forms the
// default predicate understands.
//
// Override the default with WithInstanceOf to adapt foreign object systems,
// for example wrapper objects that carry their real model separately.
type InstanceOfFunc func(instance, model any) bool

// DefaultInstanceOf is the type-membership predicate used when no override
// is configured.
//
// A model acts as a type descriptor when it is a reflect.Type or a zero
// value of the type (pointer indirection tolerated), e.g. User{}, &User{},
// or reflect.TypeOf((*Reader)(nil)).Elem(). A non-zero value is a specific
// instance, not a descriptor, and never grants membership here — exact
// instance matching is handled separately by the target filter.
//
// An instance matches a type descriptor when:
//   - its dynamic type equals the descriptor's type (pointer indirection on
//     either side is tolerated),
//   - the descriptor is an interface type the instance implements, or
//   - the instance's struct type embeds the descriptor's struct type (the
//     Go analog of an ancestor type).
func DefaultInstanceOf(instance, model any) bool {
	if instance == nil || model == nil {
		return false
	}

	modelType, ok := model.(reflect.Type)
	if !ok {
		value := reflect.ValueOf(model)
		for value.Kind() == reflect.Pointer {
			if value.IsNil() {
				return false
			}
			value = value.Elem()
		}
		if !value.IsZero() {
			// A populated value is an instance, not a type descriptor.
			return false
		}
		modelType = value.Type()
	}
	return typeMatches(reflect.TypeOf(instance), modelType)
}

func typeMatches(instanceType, modelType reflect.Type) bool {
	if instanceType == nil || modelType == nil {
		return false
	}

	for instanceType.Kind() == reflect.Pointer {
		instanceType = instanceType.Elem()
	}
	for modelType.Kind() == reflect.Pointer {
		modelType = modelType.Elem()
	}

	if instanceType == modelType {
		return true
	}

	if modelType.Kind() == reflect.Interface {
		return instanceType.Implements(modelType) ||
			reflect.PointerTo(instanceType).Implements(modelType)
	}

	// Embedded struct fields count as ancestors.
	if instanceType.Kind() == reflect.Struct && modelType.Kind() == reflect.Struct {
		for i := 0; i < instanceType.NumField(); i++ {
			field := instanceType.Field(i)
			if field.Anonymous && typeMatches(field.Type, modelType) {
				return true
			}
		}
	}

	return false
}
