package property

import (
	"context"
	"reflect"

	"github.com/goliatone/go-datalist/pkg/config"
)

// Type describes a property as the converter pipeline sees it.
type Type struct {
	Alias         string                `json:"alias" yaml:"alias"`
	EditorAlias   string                `json:"editorAlias" yaml:"editorAlias"`
	Configuration *config.Configuration `json:"configuration,omitempty" yaml:"configuration,omitempty"`
}

// CacheLevel tells the host how long a converted value may be reused.
type CacheLevel int

const (
	CacheUnknown CacheLevel = iota
	CacheElement
	CacheElements
	CacheSnapshot
	CacheNone
)

func (l CacheLevel) String() string {
	switch l {
	case CacheElement:
		return "element"
	case CacheElements:
		return "elements"
	case CacheSnapshot:
		return "snapshot"
	case CacheNone:
		return "none"
	default:
		return "unknown"
	}
}

// ValueConverter converts stored property values in two steps: source to
// intermediate (cacheable) and intermediate to the final object.
type ValueConverter interface {
	IsConverter(t Type) bool
	ValueType(t Type) reflect.Type
	CacheLevel(t Type) CacheLevel
	SourceToIntermediate(ctx context.Context, t Type, source any, preview bool) any
	IntermediateToObject(ctx context.Context, t Type, level CacheLevel, inter any, preview bool) any
}

// DeliveryValueConverter is a ValueConverter with a dedicated delivery API
// output.
type DeliveryValueConverter interface {
	ValueConverter
	DeliveryValueType(t Type) reflect.Type
	DeliveryCacheLevel(t Type) CacheLevel
	IntermediateToDeliveryObject(ctx context.Context, t Type, level CacheLevel, inter any, preview, expanding bool) any
}

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// Base provides the default converter behaviour. Embed it and override what
// differs.
type Base struct{}

func (Base) IsConverter(Type) bool { return false }

func (Base) ValueType(Type) reflect.Type { return anyType }

func (Base) CacheLevel(Type) CacheLevel { return CacheElement }

// SourceToIntermediate returns source unchanged.
func (Base) SourceToIntermediate(_ context.Context, _ Type, source any, _ bool) any {
	return source
}

// IntermediateToObject returns inter unchanged.
func (Base) IntermediateToObject(_ context.Context, _ Type, _ CacheLevel, inter any, _ bool) any {
	return inter
}

// Convert runs both conversion steps for a stored source value.
func Convert(ctx context.Context, conv ValueConverter, t Type, source any, preview bool) any {
	if conv == nil {
		return source
	}
	inter := conv.SourceToIntermediate(ctx, t, source, preview)
	return conv.IntermediateToObject(ctx, t, conv.CacheLevel(t), inter, preview)
}

// ConvertDelivery runs both conversion steps using the delivery API output.
func ConvertDelivery(ctx context.Context, conv DeliveryValueConverter, t Type, source any, preview, expanding bool) any {
	if conv == nil {
		return source
	}
	inter := conv.SourceToIntermediate(ctx, t, source, preview)
	return conv.IntermediateToDeliveryObject(ctx, t, conv.DeliveryCacheLevel(t), inter, preview, expanding)
}
