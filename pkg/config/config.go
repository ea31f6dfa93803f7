package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration field names as persisted by the data-list editor.
const (
	FieldDataSource = "dataSource"
	FieldListEditor = "listEditor"
)

// ErrMalformed marks configuration payloads that cannot be decoded into the
// typed Configuration shape.
var ErrMalformed = errors.New("config: malformed configuration")

// Entry is one configured editor: the key of a registered data source or
// list editor plus its own configuration payload.
type Entry struct {
	Key   string         `json:"key" yaml:"key"`
	Value map[string]any `json:"value,omitempty" yaml:"value,omitempty"`
}

// Configuration is the typed form of a data-list property configuration.
// Both collections are ordered; only the first element is active.
type Configuration struct {
	DataSource []Entry `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
	ListEditor []Entry `json:"listEditor,omitempty" yaml:"listEditor,omitempty"`
}

// Decode parses a JSON or YAML configuration document. An empty document
// yields an empty configuration.
func Decode(raw []byte) (*Configuration, error) {
	cfg := &Configuration{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		if errors.Is(err, ErrMalformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cfg, nil
}

// FromMap converts a generic dictionary (for example a JSON-decoded data type
// configuration) into a Configuration. Unknown fields are ignored.
func FromMap(raw map[string]any) (*Configuration, error) {
	cfg := &Configuration{}
	if len(raw) == 0 {
		return cfg, nil
	}
	var err error
	if cfg.DataSource, err = entriesFrom(raw[FieldDataSource], FieldDataSource); err != nil {
		return nil, err
	}
	if cfg.ListEditor, err = entriesFrom(raw[FieldListEditor], FieldListEditor); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UnmarshalYAML validates entry shapes while decoding so malformed payloads
// surface at load time.
func (c *Configuration) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	parsed, err := FromMap(raw)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// ActiveDataSource returns the active data source entry.
func (c *Configuration) ActiveDataSource() (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	return active(c.DataSource)
}

// ActiveListEditor returns the active list editor entry.
func (c *Configuration) ActiveListEditor() (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	return active(c.ListEditor)
}

func active(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	entry := entries[0]
	if strings.TrimSpace(entry.Key) == "" {
		return Entry{}, false
	}
	return entry, true
}

func entriesFrom(value any, field string) ([]Entry, error) {
	if value == nil {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list", ErrMalformed, field)
	}
	entries := make([]Entry, 0, len(items))
	for idx, item := range items {
		obj, ok := asObject(item)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object", ErrMalformed, field, idx)
		}
		key, ok := obj["key"].(string)
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %s[%d].key is required", ErrMalformed, field, idx)
		}
		entry := Entry{Key: strings.TrimSpace(key)}
		if rawValue, exists := obj["value"]; exists && rawValue != nil {
			payload, ok := asObject(rawValue)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d].value must be an object", ErrMalformed, field, idx)
			}
			entry.Value = payload
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func asObject(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	default:
		return nil, false
	}
}

// String returns the named configuration value as a string.
func (e Entry) String(name string) string {
	return String(e.Value, name)
}

// Int returns the named configuration value as an int, or fallback.
func (e Entry) Int(name string, fallback int) int {
	return Int(e.Value, name, fallback)
}

// Bool returns the named configuration value as a bool.
func (e Entry) Bool(name string) bool {
	return Bool(e.Value, name)
}

// String reads a string value from an editor payload.
func String(values map[string]any, name string) string {
	switch v := values[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int reads an integer value from an editor payload. Numeric strings are
// accepted since editors persist them either way. Fractional or out of range
// numbers yield fallback.
func Int(values map[string]any, name string, fallback int) int {
	switch v := values[name].(type) {
	case int:
		return v
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return fallback
		}
		return int(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt || v >= -math.MinInt {
			return fallback
		}
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// Float reads a floating point value from an editor payload.
func Float(values map[string]any, name string, fallback float64) float64 {
	switch v := values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return n
		}
	}
	return fallback
}

// Bool reads a boolean value from an editor payload. Non-zero numbers, "1"
// and "true" are treated as true.
func Bool(values map[string]any, name string) bool {
	switch v := values[name].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}
