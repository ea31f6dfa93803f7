package datalist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-datalist/pkg/coerce"
	"github.com/goliatone/go-datalist/pkg/datasource"
	"github.com/goliatone/go-datalist/pkg/listeditor"
	"github.com/goliatone/go-datalist/pkg/property"
)

// EditorAlias is the property editor alias handled by default.
const EditorAlias = "Umbraco.Community.Contentment.DataList"

// Registry resolves configuration editor keys. *editors.Registry satisfies
// it.
type Registry interface {
	DataSource(key string) (datasource.DataSource, bool)
	ListEditor(key string) (listeditor.ListEditor, bool)
}

// Option customises a Converter.
type Option func(*Converter)

// WithLogger sets the logger used to report configuration fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEditorAlias overrides the property editor alias the converter claims.
func WithEditorAlias(alias string) Option {
	return func(c *Converter) {
		if trimmed := strings.TrimSpace(alias); trimmed != "" {
			c.editorAlias = trimmed
		}
	}
}

// Converter is the data-list property value converter for both the rendering
// pipeline and the delivery API.
type Converter struct {
	property.Base

	registry    Registry
	logger      *slog.Logger
	editorAlias string
	defaultType reflect.Type
}

var _ property.DeliveryValueConverter = (*Converter)(nil)

// New creates a Converter resolving keys against registry.
func New(registry Registry, opts ...Option) *Converter {
	c := &Converter{
		registry:    registry,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		editorAlias: EditorAlias,
		defaultType: datasource.StringType(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.registry == nil {
		c.registry = emptyRegistry{}
	}
	return c
}

// IsConverter matches the configured editor alias, ignoring case.
func (c *Converter) IsConverter(t property.Type) bool {
	return strings.EqualFold(strings.TrimSpace(t.EditorAlias), c.editorAlias)
}

// ValueType is []T for multi-valued properties and T otherwise.
func (c *Converter) ValueType(t property.Type) reflect.Type {
	return outputType(c.Resolve(context.Background(), t, false))
}

// DeliveryValueType is ValueType for the delivery API output.
func (c *Converter) DeliveryValueType(t property.Type) reflect.Type {
	return outputType(c.Resolve(context.Background(), t, true))
}

func (c *Converter) CacheLevel(property.Type) property.CacheLevel {
	return property.CacheSnapshot
}

func (c *Converter) DeliveryCacheLevel(property.Type) property.CacheLevel {
	return property.CacheSnapshot
}

func outputType(r Resolved) reflect.Type {
	if r.Multiple {
		return reflect.SliceOf(r.ValueType)
	}
	return r.ValueType
}

// SourceToIntermediate keeps plain strings and decodes JSON strings into a
// []string. Other sources fall back to the base behaviour.
func (c *Converter) SourceToIntermediate(ctx context.Context, t property.Type, source any, preview bool) any {
	switch value := source.(type) {
	case string:
		return c.decodeString(ctx, t, value)
	case []byte:
		return c.decodeString(ctx, t, string(value))
	}
	return c.Base.SourceToIntermediate(ctx, t, source, preview)
}

func (c *Converter) decodeString(ctx context.Context, t property.Type, value string) any {
	if !isJSON(value) {
		return value
	}
	items, err := decodeStrings([]byte(value))
	if err != nil {
		c.logger.DebugContext(ctx, "datalist: stored value is not a JSON string list",
			slog.String("property", t.Alias),
			slog.Any("error", err),
		)
		return []string{}
	}
	return items
}

// IntermediateToObject converts for the rendering pipeline.
func (c *Converter) IntermediateToObject(ctx context.Context, t property.Type, level property.CacheLevel, inter any, preview bool) any {
	return c.toObject(ctx, t, level, inter, preview, false)
}

// IntermediateToDeliveryObject converts for the delivery API.
func (c *Converter) IntermediateToDeliveryObject(ctx context.Context, t property.Type, level property.CacheLevel, inter any, preview, _ bool) any {
	return c.toObject(ctx, t, level, inter, preview, true)
}

func (c *Converter) toObject(ctx context.Context, t property.Type, level property.CacheLevel, inter any, preview, delivery bool) any {
	resolved := c.Resolve(ctx, t, delivery)

	if value, ok := inter.(string); ok {
		// Values saved while the property was single-valued stay bare strings
		// until the content is saved again.
		if !resolved.Multiple {
			return resolved.convert(ctx, value)
		}
		inter = []string{value}
	}

	// Intermediate values that skipped SourceToIntermediate arrive as raw
	// JSON arrays.
	switch raw := inter.(type) {
	case []any:
		inter = stringsFrom(raw)
	case json.RawMessage:
		items, err := decodeStrings(raw)
		if err != nil {
			items = []string{}
		}
		inter = items
	}

	items, ok := inter.([]string)
	if !ok {
		return c.Base.IntermediateToObject(ctx, t, level, inter, preview)
	}

	if resolved.Multiple {
		return c.collect(ctx, t, resolved, items)
	}
	if len(items) > 0 {
		return resolved.convert(ctx, items[0])
	}
	// Only reached with an empty list, so the result is always "".
	return strings.Join(items, ",")
}

func (c *Converter) collect(ctx context.Context, t property.Type, resolved Resolved, items []string) any {
	out := reflect.MakeSlice(reflect.SliceOf(resolved.ValueType), 0, len(items))
	for _, item := range items {
		obj := resolved.convert(ctx, item)
		if isNil(obj) {
			continue
		}
		if coerced, ok := coerce.To(obj, resolved.ValueType); ok {
			out = reflect.Append(out, reflect.ValueOf(coerced))
			continue
		}
		// Interface value types cannot be coerced; keep objects that
		// implement them.
		if reflect.TypeOf(obj).AssignableTo(resolved.ValueType) {
			out = reflect.Append(out, reflect.ValueOf(obj))
			continue
		}
		c.logger.DebugContext(ctx, "datalist: dropping value not assignable to value type",
			slog.String("property", t.Alias),
			slog.String("value_type", resolved.ValueType.String()),
			slog.String("object_type", fmt.Sprintf("%T", obj)),
		)
	}
	return out.Interface()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isJSON reports whether value looks like a JSON object or array.
func isJSON(value string) bool {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	return (first == '[' && last == ']') || (first == '{' && last == '}')
}

func decodeStrings(raw []byte) ([]string, error) {
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return stringsFrom(values), nil
}

// stringsFrom renders scalar items as strings and skips nulls. Nested values
// are kept as their JSON text.
func stringsFrom(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			out = append(out, v)
		case bool:
			out = append(out, strconv.FormatBool(v))
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case json.Number:
			out = append(out, v.String())
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				continue
			}
			out = append(out, string(encoded))
		}
	}
	return out
}

type emptyRegistry struct{}

func (emptyRegistry) DataSource(string) (datasource.DataSource, bool) { return nil, false }
func (emptyRegistry) ListEditor(string) (listeditor.ListEditor, bool) { return nil, false }
