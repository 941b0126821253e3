package binder

import (
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// bindStruct copies values into the fields of the struct v points to,
// matching the given tag. Fields without the tag are left alone.
func bindStruct(v any, tag string, lookup func(name string) []string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotApplicable
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		name, ok := tagName(sf, tag)
		if !ok {
			continue
		}
		values := lookup(name)
		if len(values) == 0 {
			continue
		}
		if err := setField(field, values); err != nil {
			return fmt.Errorf("%w: %s: %v", bindErr, name, err)
		}
	}
	return nil
}

func tagName(sf reflect.StructField, tag string) (string, bool) {
	t, ok := sf.Tag.Lookup(tag)
	if !ok || t == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(t, ",")
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	return name, true
}

func setField(field reflect.Value, values []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), values)
	case reflect.Slice:
		out := reflect.MakeSlice(field.Type(), 0, len(values))
		for _, v := range values {
			for part := range strings.SplitSeq(v, ",") {
				elem := reflect.New(field.Type().Elem()).Elem()
				if err := setField(elem, []string{strings.TrimSpace(part)}); err != nil {
					return err
				}
				out = reflect.Append(out, elem)
			}
		}
		field.Set(out)
		return nil
	}

	value := strings.TrimSpace(values[0])
	switch field.Kind() {
	case reflect.String:
		field.SetString(values[0])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)
	case reflect.Bool:
		switch strings.ToLower(value) {
		case "1", "t", "true", "on", "yes":
			field.SetBool(true)
		case "", "0", "f", "false", "off", "no":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", value)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}

func mediaType(r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", ErrMissingContentType
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
	}
	return mt, nil
}
