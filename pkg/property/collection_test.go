package property

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type aliasConverter struct {
	Base
	alias string
}

func (c aliasConverter) IsConverter(t Type) bool {
	return strings.EqualFold(t.EditorAlias, c.alias)
}

type legacyConverter struct{ aliasConverter }
type customConverter struct{ aliasConverter }
type otherConverter struct{ aliasConverter }
type upperConverter struct{ aliasConverter }

func (upperConverter) IntermediateToObject(_ context.Context, _ Type, _ CacheLevel, inter any, _ bool) any {
	if s, ok := inter.(string); ok {
		return strings.ToUpper(s)
	}
	return inter
}

func names(types []reflect.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name()
	}
	return out
}

func TestReplace_KeepsPosition(t *testing.T) {
	c := NewCollection(
		otherConverter{aliasConverter{alias: "a"}},
		legacyConverter{aliasConverter{alias: "list"}},
		upperConverter{aliasConverter{alias: "b"}},
	)

	Replace[legacyConverter](c, customConverter{aliasConverter{alias: "list"}})

	want := []string{"otherConverter", "customConverter", "upperConverter"}
	if diff := cmp.Diff(want, names(c.Types())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	conv, ok := c.Find(Type{EditorAlias: "LIST"})
	if !ok {
		t.Fatalf("expected converter for list alias")
	}
	if _, isCustom := conv.(customConverter); !isCustom {
		t.Fatalf("want customConverter, got %T", conv)
	}
}

func TestReplace_MissingAnchorAppends(t *testing.T) {
	c := NewCollection(otherConverter{})
	Replace[legacyConverter](c, customConverter{})

	want := []string{"otherConverter", "customConverter"}
	if diff := cmp.Diff(want, names(c.Types())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace_SameTypeSwapsInPlace(t *testing.T) {
	c := NewCollection(
		customConverter{aliasConverter{alias: "old"}},
		otherConverter{},
	)
	Replace[customConverter](c, customConverter{aliasConverter{alias: "new"}})

	convs := c.Converters()
	if len(convs) != 2 {
		t.Fatalf("want 2 converters, got %d", len(convs))
	}
	if got := convs[0].(customConverter).alias; got != "new" {
		t.Fatalf("want swapped converter first, got alias %q", got)
	}
}

func TestCollection_AppendMovesDuplicates(t *testing.T) {
	c := NewCollection(otherConverter{}, upperConverter{})
	c.Append(otherConverter{})

	want := []string{"upperConverter", "otherConverter"}
	if diff := cmp.Diff(want, names(c.Types())); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	c.Remove(TypeOf[legacyConverter]())
	if len(c.Types()) != 2 {
		t.Fatalf("removing an absent type should be a no-op")
	}
}

func TestCollection_FirstMatchWins(t *testing.T) {
	c := NewCollection(
		upperConverter{aliasConverter{alias: "text"}},
		otherConverter{aliasConverter{alias: "text"}},
	)
	conv, ok := c.Find(Type{EditorAlias: "text"})
	if !ok {
		t.Fatalf("expected a converter")
	}
	if got := Convert(context.Background(), conv, Type{}, "abc", false); got != "ABC" {
		t.Fatalf("want ABC, got %v", got)
	}
	if _, ok := c.Find(Type{EditorAlias: "missing"}); ok {
		t.Fatalf("unexpected converter for unknown alias")
	}
}

func TestBase_Defaults(t *testing.T) {
	var b Base
	if b.IsConverter(Type{}) {
		t.Fatalf("base should not claim properties")
	}
	if b.CacheLevel(Type{}) != CacheElement {
		t.Fatalf("base cache level should be element")
	}
	if got := Convert(context.Background(), b, Type{}, 5, false); got != 5 {
		t.Fatalf("base conversion should pass values through, got %v", got)
	}
	if CacheSnapshot.String() != "snapshot" {
		t.Fatalf("unexpected cache level name %q", CacheSnapshot.String())
	}
}
