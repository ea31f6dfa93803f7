package datalist

import (
	"context"
	"reflect"

	"github.com/goliatone/go-datalist/pkg/property"
)

// Standard is the data-list converter without delivery API support. Hosts
// that register it get the rendering output on both paths; Register swaps it
// for the delivery-aware Converter.
type Standard struct {
	inner *Converter
}

var _ property.ValueConverter = (*Standard)(nil)

// NewStandard creates a Standard converter.
func NewStandard(registry Registry, opts ...Option) *Standard {
	return &Standard{inner: New(registry, opts...)}
}

func (s *Standard) IsConverter(t property.Type) bool { return s.inner.IsConverter(t) }

func (s *Standard) ValueType(t property.Type) reflect.Type { return s.inner.ValueType(t) }

func (s *Standard) CacheLevel(t property.Type) property.CacheLevel { return s.inner.CacheLevel(t) }

func (s *Standard) SourceToIntermediate(ctx context.Context, t property.Type, source any, preview bool) any {
	return s.inner.SourceToIntermediate(ctx, t, source, preview)
}

func (s *Standard) IntermediateToObject(ctx context.Context, t property.Type, level property.CacheLevel, inter any, preview bool) any {
	return s.inner.IntermediateToObject(ctx, t, level, inter, preview)
}

// Register replaces a Standard converter in the collection with conv, keeping
// its position.
func Register(converters *property.Collection, conv *Converter) *property.Collection {
	return property.Replace[*Standard](converters, conv)
}
