package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotSet is returned by GetValue for a known key with no value in the
// loaded files.
var ErrNotSet = errors.New("not set")

// Keys returns every settable dot-notation key, sorted.
func Keys() []string {
	var out []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for name, ft := range yamlFields(t) {
			if ft.Kind() == reflect.Struct {
				walk(ft, prefix+name+".")
				continue
			}
			out = append(out, prefix+name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	slices.Sort(out)
	return out
}

// GetValue retrieves a value from a Config by dot-notation key path. A
// section key yields the map of its set values.
func GetValue(cfg *Config, keyPath string) (any, error) {
	if _, err := resolveKey(keyPath); err != nil {
		return nil, err
	}
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var current any = m
	for _, part := range strings.Split(keyPath, ".") {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key %q: %w", keyPath, ErrNotSet)
		}
		if current, ok = cm[part]; !ok {
			return nil, fmt.Errorf("key %q: %w", keyPath, ErrNotSet)
		}
	}
	return current, nil
}

// SetValue parses rawValue as the key's field type and stores it in a raw
// YAML map, creating section maps as needed.
func SetValue(data map[string]any, keyPath string, rawValue string) error {
	if err := ValidateKeyPath(keyPath); err != nil {
		return err
	}
	ft, _ := resolveKey(keyPath)
	v, err := parseValue(ft, rawValue)
	if err != nil {
		return fmt.Errorf("key %q: %w", keyPath, err)
	}

	parts := strings.Split(keyPath, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		child, ok := current[part]
		if !ok {
			next := make(map[string]any)
			current[part] = next
			current = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not a map in the file", part)
		}
		current = next
	}
	current[parts[len(parts)-1]] = v
	return nil
}

// FlattenMap recursively flattens a nested map to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			for sk, sv := range FlattenMap(sub, key) {
				result[sk] = sv
			}
		} else {
			result[key] = v
		}
	}
	return result
}

// ValidateKeyPath checks that keyPath names a single setting rather than a
// section.
func ValidateKeyPath(keyPath string) error {
	ft, err := resolveKey(keyPath)
	if err != nil {
		return err
	}
	if ft.Kind() == reflect.Struct {
		return fmt.Errorf("key %q is a section; use one of: %s", keyPath, sortedKeys(yamlFields(ft)))
	}
	return nil
}

// resolveKey walks the yaml tags of Config and returns the type keyPath
// points at.
func resolveKey(keyPath string) (reflect.Type, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("empty key path")
	}
	parts := strings.Split(keyPath, ".")

	t := reflect.TypeOf(Config{})
	for i, part := range parts {
		fields := yamlFields(t)
		ft, ok := fields[part]
		if !ok {
			where := "top-level"
			if i > 0 {
				where = strings.Join(parts[:i], ".")
			}
			return nil, fmt.Errorf("unknown key %q; valid %s keys: %s", part, where, sortedKeys(fields))
		}
		if ft.Kind() != reflect.Struct && i < len(parts)-1 {
			return nil, fmt.Errorf("key %q is a scalar; cannot use sub-keys", strings.Join(parts[:i+1], "."))
		}
		t = ft
	}
	return t, nil
}

// parseValue converts raw to the Go kind of a config field.
func parseValue(t reflect.Type, raw string) (any, error) {
	switch t.Kind() {
	case reflect.Int:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("want an integer, got %q", raw)
		}
		return n, nil
	case reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("want a number, got %q", raw)
		}
		return f, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("want true or false, got %q", raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// yamlFields maps yaml tag names to field types for a struct type.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	fields := make(map[string]reflect.Type)
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = f.Type
		}
	}
	return fields
}

// sortedKeys returns a comma-separated sorted list of map keys.
func sortedKeys(m map[string]reflect.Type) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
