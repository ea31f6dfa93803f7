package deliveryapi

import (
	"context"
	"reflect"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-datalist/pkg/config"
	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/datalist"
	"github.com/goliatone/go-datalist/pkg/editors"
	"github.com/goliatone/go-datalist/pkg/property"
)

func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return ""
	}
	values := ref.Value.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func TestSchemaFor_Scalars(t *testing.T) {
	cases := []struct {
		name   string
		t      reflect.Type
		typ    string
		format string
	}{
		{name: "nil", t: nil, typ: openapi3.TypeString},
		{name: "string", t: reflect.TypeOf(""), typ: openapi3.TypeString},
		{name: "int", t: reflect.TypeOf(0), typ: openapi3.TypeInteger, format: "int64"},
		{name: "int16", t: reflect.TypeOf(int16(0)), typ: openapi3.TypeInteger, format: "int32"},
		{name: "float", t: reflect.TypeOf(0.0), typ: openapi3.TypeNumber, format: "double"},
		{name: "bool", t: reflect.TypeOf(true), typ: openapi3.TypeBoolean},
		{name: "uuid", t: reflect.TypeOf(uuid.UUID{}), typ: openapi3.TypeString, format: "uuid"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ref := SchemaFor(tc.t)
			if got := schemaType(ref); got != tc.typ {
				t.Fatalf("type: want %q, got %q", tc.typ, got)
			}
			if ref.Value.Format != tc.format {
				t.Fatalf("format: want %q, got %q", tc.format, ref.Value.Format)
			}
		})
	}
}

func TestSchemaFor_APIContentList(t *testing.T) {
	ref := SchemaFor(reflect.TypeOf([]*content.APIContent{}))
	if schemaType(ref) != openapi3.TypeArray {
		t.Fatalf("want array schema, got %q", schemaType(ref))
	}
	items := ref.Value.Items
	if items == nil || items.Ref != "#/components/schemas/"+APIContentSchemaName {
		t.Fatalf("items should reference the api content component, got %+v", items)
	}
	var props []string
	for name := range items.Value.Properties {
		props = append(props, name)
	}
	want := map[string]bool{"id": true, "name": true, "contentType": true, "route": true}
	if len(props) != len(want) {
		t.Fatalf("unexpected api content properties %v", props)
	}
	for _, name := range props {
		if !want[name] {
			t.Fatalf("unexpected property %q", name)
		}
	}
}

func TestSchemaFor_Struct(t *testing.T) {
	type sample struct {
		Label  string `json:"label"`
		Count  int
		Hidden string `json:"-"`
		secret string
	}

	ref := SchemaFor(reflect.TypeOf(sample{}))
	var names []string
	for name := range ref.Value.Properties {
		names = append(names, name)
	}
	if len(names) != 2 || ref.Value.Properties["label"] == nil || ref.Value.Properties["Count"] == nil {
		t.Fatalf("unexpected struct properties %v", names)
	}
}

type treeNode struct {
	Name     string      `json:"name"`
	Children []*treeNode `json:"children"`
	Parent   *treeNode   `json:"parent"`
}

type nestedList []nestedList

func TestSchemaFor_RecursiveTypes(t *testing.T) {
	ref := SchemaFor(reflect.TypeOf(treeNode{}))
	children := ref.Value.Properties["children"]
	if schemaType(children) != openapi3.TypeArray {
		t.Fatalf("children: want array schema, got %q", schemaType(children))
	}
	inner := children.Value.Items
	if schemaType(inner) != openapi3.TypeObject || len(inner.Value.Properties) != 0 {
		t.Fatalf("cycle should close with a plain object, got %+v", inner.Value)
	}
	if schemaType(ref.Value.Properties["parent"]) != openapi3.TypeObject {
		t.Fatalf("parent: want object schema")
	}
	if err := ref.Value.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}

	list := SchemaFor(reflect.TypeOf(nestedList{}))
	if schemaType(list) != openapi3.TypeArray || schemaType(list.Value.Items) != openapi3.TypeObject {
		t.Fatalf("self-referencing slice should close with an object item")
	}
}

func TestDocument(t *testing.T) {
	conv := datalist.New(editors.NewDefault(content.NewMemoryStore(), nil))
	converters := property.NewCollection(conv)

	types := []property.Type{
		{
			Alias:       "related",
			EditorAlias: datalist.EditorAlias,
			Configuration: &config.Configuration{
				DataSource: []config.Entry{{Key: "content"}},
				ListEditor: []config.Entry{{Key: "checkboxList"}},
			},
		},
		{
			Alias:       "size",
			EditorAlias: datalist.EditorAlias,
			Configuration: &config.Configuration{
				DataSource: []config.Entry{{Key: "numbers"}},
				ListEditor: []config.Entry{{Key: "radioButtonList"}},
			},
		},
		{Alias: "title", EditorAlias: "Umbraco.TextBox"},
	}

	doc, err := Document(context.Background(), "", converters, types...)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	props := doc.Components.Schemas[PropertiesSchemaName].Value.Properties

	got := map[string]string{}
	for name, ref := range props {
		got[name] = schemaType(ref)
	}
	want := map[string]string{
		"related": openapi3.TypeArray,
		"size":    openapi3.TypeInteger,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if doc.Info.Title != "Delivery API" {
		t.Fatalf("unexpected default title %q", doc.Info.Title)
	}

	if _, err := Document(context.Background(), "x", converters, types[0], types[0]); err == nil {
		t.Fatalf("expected duplicate alias error")
	}
	if _, err := Document(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected error for missing collection")
	}
}
