// FILE: lixenwraith/deephash/register.go
package deephash

import (
	"fmt"
	"reflect"
	"strings"
)

// FromStruct builds a Map from a struct holding default values.
// Field keys come from the `toml` tag, falling back to the field name; a tag
// of "-" skips the field. Nested structs and non-nil struct pointers become
// nested maps. Unexported fields are ignored.
func FromStruct(structWithDefaults any) (*Map, error) {
	v := reflect.ValueOf(structWithDefaults)

	// Handle pointer or direct struct value
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("FromStruct requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("FromStruct requires a struct or struct pointer, got %T", structWithDefaults)
	}

	m := New()
	var errs []string
	collectFields(m, v, nil, &errs)

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to convert %d field(s): %s", len(errs), strings.Join(errs, "; "))
	}
	return m, nil
}

// collectFields stores each exported field of v under its path.
func collectFields(m *Map, v reflect.Value, prefix []any, errs *[]string) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}

		key := field.Name
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			key = name
		}
		path := append(append([]any(nil), prefix...), key)

		isStruct := fieldValue.Kind() == reflect.Struct
		isPtrToStruct := fieldValue.Kind() == reflect.Ptr && fieldValue.Type().Elem().Kind() == reflect.Struct

		if isStruct || isPtrToStruct {
			nested := fieldValue
			if isPtrToStruct {
				if fieldValue.IsNil() {
					continue
				}
				nested = fieldValue.Elem()
			}
			if !isOpaqueStruct(nested.Type()) {
				collectFields(m, nested, path, errs)
				continue
			}
		}

		if err := m.DeepSet(append(path, fieldValue.Interface())...); err != nil {
			*errs = append(*errs, fmt.Sprintf("field %s (path %s): %v", field.Name, pathString(path), err))
		}
	}
}

// isOpaqueStruct reports struct types stored as leaf values rather than
// expanded into maps. Structs with unexported state, such as time.Time, are opaque.
func isOpaqueStruct(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func pathString(path []any) string {
	ss := make([]string, len(path))
	for i, p := range path {
		ss[i] = fmt.Sprint(p)
	}
	return strings.Join(ss, ".")
}
