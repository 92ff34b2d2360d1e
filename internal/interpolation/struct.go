package interpolation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Struct expands string fields tagged `env_interpolation:"yes"` in place.
// Nested structs and struct pointers are walked regardless of their own tag.
func (e *Expander) Struct(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("expected non-nil pointer to struct, got %T", v)
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("expected pointer to struct, got %T", v)
	}
	return e.walk(val)
}

func (e *Expander) walk(val reflect.Value) error {
	typ := val.Type()
	var errs []error

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if !strings.EqualFold(fieldType.Tag.Get("env_interpolation"), "yes") || field.String() == "" {
				continue
			}
			expanded, err := e.Expand(field.String())
			if err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
				continue
			}
			field.SetString(expanded)

		case reflect.Struct:
			if err := e.walk(field); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
			}

		case reflect.Ptr:
			if field.IsNil() || field.Elem().Kind() != reflect.Struct {
				continue
			}
			if err := e.walk(field.Elem()); err != nil {
				errs = append(errs, fmt.Errorf("field %s: %w", fieldType.Name, err))
			}
		}
	}

	return errors.Join(errs...)
}
