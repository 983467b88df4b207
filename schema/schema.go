package schema

import (
	"fmt"
	"reflect"
	"time"

	"github.com/viant/tagly/format"
)

// typeTagOf returns the parameter type tag for a Go type.
func typeTagOf(t reflect.Type) TypeTag {
	if t == reflect.TypeOf(time.Time{}) {
		return TypeString
	}
	if t.Kind() == reflect.Ptr {
		return typeTagOf(t.Elem())
	}
	switch t.Kind() {
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.String:
		return TypeString
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Map, reflect.Struct, reflect.Interface:
		return TypeObject
	}
	return TypeString
}

// structToParameters converts exported struct fields into parameter descriptors.
// A field is required unless it is a pointer or tagged omitempty.
func structToParameters(t reflect.Type) []ParameterDescriptor {
	var result []ParameterDescriptor
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _ := format.Parse(field.Tag, "json", "format")
		if tag == nil {
			tag = &format.Tag{}
		}
		if tag.Ignore {
			continue
		}
		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		result = append(result, ParameterDescriptor{
			Name:        name,
			Type:        typeTagOf(field.Type),
			Required:    field.Type.Kind() != reflect.Ptr && !tag.Omitempty,
			Description: field.Tag.Get("description"),
		})
	}
	return result
}

// ParametersOf derives parameter descriptors from a struct (or struct pointer) value.
func ParametersOf(v any) ([]ParameterDescriptor, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("expected a struct type, got nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct type, got %s", t.Kind())
	}
	return structToParameters(t), nil
}
