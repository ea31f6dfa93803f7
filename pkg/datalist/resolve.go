package datalist

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/goliatone/go-datalist/pkg/datasource"
	"github.com/goliatone/go-datalist/pkg/property"
)

// ConvertFunc converts one stored value into an output value of declared
// type t. A nil result means the value is dropped.
type ConvertFunc func(ctx context.Context, t reflect.Type, value string) any

// Resolved is the per-call view of a property configuration.
type Resolved struct {
	Multiple  bool
	ValueType reflect.Type
	Convert   ConvertFunc
}

func (r Resolved) convert(ctx context.Context, value string) any {
	if r.Convert == nil {
		return value
	}
	return r.Convert(ctx, r.ValueType, value)
}

// Resolve derives multiplicity, value type and conversion function from the
// property configuration. Missing entries or unknown keys degrade to a single
// string value without conversion. The result is never cached.
func (c *Converter) Resolve(ctx context.Context, t property.Type, delivery bool) Resolved {
	resolved := Resolved{ValueType: c.defaultType}

	cfg := t.Configuration
	sourceEntry, hasSource := cfg.ActiveDataSource()
	editorEntry, hasEditor := cfg.ActiveListEditor()
	if !hasSource || !hasEditor {
		c.logger.DebugContext(ctx, "datalist: incomplete configuration, using defaults",
			slog.String("property", t.Alias),
			slog.Bool("data_source", hasSource),
			slog.Bool("list_editor", hasEditor),
		)
		return resolved
	}

	if source, ok := c.registry.DataSource(sourceEntry.Key); ok {
		valueType, convert := sourceAccessors(source, sourceEntry.Value, delivery)
		if valueType == nil {
			valueType = c.defaultType
		}
		resolved.ValueType = valueType
		resolved.Convert = convert
	} else {
		c.logger.DebugContext(ctx, "datalist: data source not registered",
			slog.String("property", t.Alias),
			slog.String("key", sourceEntry.Key),
		)
	}

	if editor, ok := c.registry.ListEditor(editorEntry.Key); ok {
		resolved.Multiple = editor.HasMultipleValues(editorEntry.Value)
	} else {
		c.logger.DebugContext(ctx, "datalist: list editor not registered",
			slog.String("property", t.Alias),
			slog.String("key", editorEntry.Key),
		)
	}

	return resolved
}

func sourceAccessors(source datasource.DataSource, cfg map[string]any, delivery bool) (reflect.Type, ConvertFunc) {
	if delivery {
		if ds, ok := source.(datasource.DeliveryDataSource); ok {
			return ds.DeliveryValueType(cfg), ds.ConvertDeliveryValue
		}
	}
	return source.ValueType(cfg), source.ConvertValue
}
