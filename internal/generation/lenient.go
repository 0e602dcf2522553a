package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"rai-review-backend/internal/shared/telemetry"
)

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// decodeLenient decodes raw into v and keeps every part that matches the
// target shape. A struct field, slice element or map entry that fails to
// decode is dropped on its own and logged with its path. Slices also accept
// a single bare element, and strings accept bare numbers and booleans.
// It reports whether anything was stored in v.
func decodeLenient(raw []byte, v reflect.Value, path string) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	if v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(unmarshalerType) {
		return decodeStrict(raw, v, path)
	}

	switch v.Kind() {
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		if !decodeLenient(raw, elem.Elem(), path) {
			return false
		}
		v.Set(elem)
		return true

	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			dropped(path, err)
			return false
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			if fr, ok := lookupField(fields, name); ok {
				decodeLenient(fr, v.Field(i), join(path, name))
			}
		}
		return true

	case reflect.Slice:
		out := reflect.MakeSlice(v.Type(), 0, 1)
		if raw[0] != '[' {
			elem := reflect.New(v.Type().Elem()).Elem()
			if !decodeLenient(raw, elem, path) {
				return false
			}
			v.Set(reflect.Append(out, elem))
			return true
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			dropped(path, err)
			return false
		}
		for i, item := range items {
			elem := reflect.New(v.Type().Elem()).Elem()
			if decodeLenient(item, elem, fmt.Sprintf("%s[%d]", path, i)) {
				out = reflect.Append(out, elem)
			}
		}
		v.Set(out)
		return true

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return decodeStrict(raw, v, path)
		}
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			dropped(path, err)
			return false
		}
		out := reflect.MakeMapWithSize(v.Type(), len(entries))
		for key, item := range entries {
			elem := reflect.New(v.Type().Elem()).Elem()
			if decodeLenient(item, elem, join(path, key)) {
				out.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), elem)
			}
		}
		v.Set(out)
		return true

	case reflect.String:
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			v.SetString(s)
			return true
		}
		if raw[0] != '{' && raw[0] != '[' {
			v.SetString(string(raw))
			return true
		}
		dropped(path, fmt.Errorf("want text, got %s", kindOf(raw)))
		return false

	default:
		return decodeStrict(raw, v, path)
	}
}

func decodeStrict(raw []byte, v reflect.Value, path string) bool {
	target := reflect.New(v.Type())
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		dropped(path, err)
		return false
	}
	v.Set(target.Elem())
	return true
}

func dropped(path string, err error) {
	telemetry.Warn("generation.field_dropped", map[string]any{"field": path, "error": err.Error()})
}

// lookupField matches name exactly, then case-insensitively like encoding/json.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}
	for k, raw := range fields {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func kindOf(raw []byte) string {
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "scalar"
	}
}
