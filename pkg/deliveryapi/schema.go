// Package deliveryapi describes converted delivery API values as OpenAPI
// schemas so the shape of data-list properties can be published alongside
// the content delivery API.
package deliveryapi

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/property"
)

// Schema names registered under components.
const (
	APIContentSchemaName = "IApiContentModel"
	PropertiesSchemaName = "PropertiesModel"
)

var (
	uuidType       = reflect.TypeOf(uuid.UUID{})
	apiContentType = reflect.TypeOf(content.APIContent{})
)

// SchemaFor returns the OpenAPI schema describing values of type t. APIContent
// values reference the shared component schema. A type that refers back to
// itself is described as a plain object where the cycle closes.
func SchemaFor(t reflect.Type) *openapi3.SchemaRef {
	return schemaFor(t, make(map[reflect.Type]bool))
}

func schemaFor(t reflect.Type, visiting map[reflect.Type]bool) *openapi3.SchemaRef {
	if t == nil {
		return openapi3.NewStringSchema().NewRef()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		if visiting[t] {
			return openapi3.NewObjectSchema().NewRef()
		}
		visiting[t] = true
		defer delete(visiting, t)
	}
	if t.Kind() == reflect.Pointer {
		ref := schemaFor(t.Elem(), visiting)
		if ref.Ref != "" {
			return ref
		}
		return ref.Value.WithNullable().NewRef()
	}
	switch t {
	case apiContentType:
		return openapi3.NewSchemaRef("#/components/schemas/"+APIContentSchemaName, APIContentSchema())
	case uuidType:
		return openapi3.NewUUIDSchema().NewRef()
	}

	switch t.Kind() {
	case reflect.String:
		return openapi3.NewStringSchema().NewRef()
	case reflect.Bool:
		return openapi3.NewBoolSchema().NewRef()
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		return openapi3.NewInt64Schema().NewRef()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return openapi3.NewInt32Schema().NewRef()
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema().WithFormat("double").NewRef()
	case reflect.Slice, reflect.Array:
		schema := openapi3.NewArraySchema()
		schema.Items = schemaFor(t.Elem(), visiting)
		return schema.NewRef()
	case reflect.Map:
		schema := openapi3.NewObjectSchema()
		schema.AdditionalProperties = openapi3.AdditionalProperties{Schema: schemaFor(t.Elem(), visiting)}
		return schema.NewRef()
	case reflect.Struct:
		return structSchema(t, visiting).NewRef()
	}
	return openapi3.NewSchema().NewRef()
}

// APIContentSchema describes content.APIContent.
func APIContentSchema() *openapi3.Schema {
	route := openapi3.NewObjectSchema().
		WithProperty("path", openapi3.NewStringSchema())
	route.Required = []string{"path"}

	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("contentType", openapi3.NewStringSchema()).
		WithProperty("route", route)
	schema.Required = []string{"id", "contentType", "route"}
	return schema
}

func structSchema(t reflect.Type, visiting map[reflect.Type]bool) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		schema.WithPropertyRef(name, schemaFor(field.Type, visiting))
	}
	return schema
}

// PropertySchema describes the delivery output of t through conv.
func PropertySchema(conv property.DeliveryValueConverter, t property.Type) *openapi3.SchemaRef {
	if conv == nil {
		return SchemaFor(nil)
	}
	return SchemaFor(conv.DeliveryValueType(t))
}

// Document builds and validates an OpenAPI document whose PropertiesModel
// component lists every property handled by a converter in the collection.
// Properties no converter accepts are skipped.
func Document(ctx context.Context, title string, converters *property.Collection, types ...property.Type) (*openapi3.T, error) {
	if converters == nil {
		return nil, fmt.Errorf("deliveryapi: converter collection is required")
	}
	properties := openapi3.NewObjectSchema()
	aliases := make([]string, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		alias := strings.TrimSpace(t.Alias)
		if alias == "" {
			return nil, fmt.Errorf("deliveryapi: property alias is required")
		}
		if _, dup := seen[alias]; dup {
			return nil, fmt.Errorf("deliveryapi: property %q declared twice", alias)
		}
		seen[alias] = struct{}{}

		found, ok := converters.Find(t)
		if !ok {
			continue
		}
		conv, ok := found.(property.DeliveryValueConverter)
		if !ok {
			continue
		}
		properties.WithPropertyRef(alias, PropertySchema(conv, t))
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	if strings.TrimSpace(title) == "" {
		title = "Delivery API"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				APIContentSchemaName: APIContentSchema().NewRef(),
				PropertiesSchemaName: properties.NewRef(),
			},
		},
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("deliveryapi: validate document (%s): %w", strings.Join(aliases, ", "), err)
	}
	return doc, nil
}
