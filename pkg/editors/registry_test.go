package editors

import (
	"context"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/goliatone/go-datalist/pkg/datasource"
	"github.com/goliatone/go-datalist/pkg/listeditor"
)

type stubSource struct{ key string }

func (s stubSource) Key() string { return s.key }

func (stubSource) ValueType(map[string]any) reflect.Type { return nil }

func (stubSource) ConvertValue(context.Context, reflect.Type, string) any { return nil }

type keyOnly struct{}

func (keyOnly) Key() string { return "nothing" }

func TestNewDefault_RegistersBuiltins(t *testing.T) {
	reg := NewDefault(content.NewMemoryStore(), nil)

	wantSources := []string{"content", "contenttypes", "numbers", "userdefined"}
	if diff := cmp.Diff(wantSources, reg.DataSourceKeys()); diff != "" {
		t.Fatalf("data source keys mismatch (-want +got):\n%s", diff)
	}
	wantEditors := []string{"buttons", "checkboxlist", "dropdownlist", "itempicker", "radiobuttonlist", "tags"}
	if diff := cmp.Diff(wantEditors, reg.ListEditorKeys()); diff != "" {
		t.Fatalf("list editor keys mismatch (-want +got):\n%s", diff)
	}

	if _, ok := reg.DataSource("ContentTypes"); !ok {
		t.Fatalf("lookup should be case-insensitive")
	}
	if _, ok := reg.ListEditor(listeditor.KeyTags); !ok {
		t.Fatalf("tags list editor should resolve")
	}
	if _, ok := reg.DataSource(listeditor.KeyTags); ok {
		t.Fatalf("list editor key should not resolve a data source")
	}
}

func TestRegister_Errors(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected error for nil editor")
	}
	if err := reg.Register(stubSource{key: " "}); err == nil {
		t.Fatalf("expected error for blank key")
	}
	if err := reg.Register(keyOnly{}); err == nil {
		t.Fatalf("expected error for unsupported editor")
	}
	if err := reg.Register(stubSource{key: "custom"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubSource{key: "CUSTOM"}); err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if !reg.Has("custom") || reg.Has("other") {
		t.Fatalf("Has reported wrong membership")
	}
}

func TestMustRegister_Panics(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(datasource.UserDefined{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	reg.MustRegister(datasource.UserDefined{})
}

func TestNilRegistry_Lookups(t *testing.T) {
	var reg *Registry
	if _, ok := reg.DataSource("content"); ok {
		t.Fatalf("nil registry should not resolve")
	}
	if _, ok := reg.ListEditor("tags"); ok {
		t.Fatalf("nil registry should not resolve")
	}
}
