package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var ErrInvalidTarget = errors.New("sanitizer: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		"trim":        Trim,
		"text":        Text,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"no_control":  RemoveControlChars,
		"strip_html":  StripHTML,
		"safe_html":   SafeHTML,
		"email":       NormalizeEmail,
		"phone":       NormalizePhone,
	}
)

// RegisterSanitizer adds a named sanitizer usable in tags.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct applies `sanitize` tags to string fields of v, recursing into
// nested structs.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return sanitizeStruct(rv.Elem())
}

func sanitizeStruct(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			s, err := apply(field.String(), tag)
			if err != nil {
				return fmt.Errorf("field %s: %w", rt.Field(i).Name, err)
			}
			field.SetString(s)
		case reflect.Struct:
			if err := sanitizeStruct(field); err != nil {
				return err
			}
		case reflect.Pointer:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				if err := sanitizeStruct(field.Elem()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func apply(value, tag string) (string, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if n, ok := strings.CutPrefix(name, "max:"); ok {
			limit, err := strconv.Atoi(n)
			if err != nil {
				return "", fmt.Errorf("invalid max length %q", n)
			}
			value = MaxLength(value, limit)
			continue
		}
		fn, ok := registry[name]
		if !ok {
			return "", fmt.Errorf("unknown sanitizer %q", name)
		}
		value = fn(value)
	}
	return value, nil
}
