package content

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

var (
	pageType = Type{TypeKey: uuid.MustParse("7c1b8b2e-4d3a-4b8e-9f2a-0a1b2c3d4e5f"), TypeAlias: "page", TypeName: "Page"}
	homeKey  = uuid.MustParse("1f3e6c20-8a71-4a76-a7f6-0c7d2a9c0b11")
	aboutKey = uuid.MustParse("5b9d7e1a-2c34-4f0e-8d6b-3a2f1e0c9d88")
)

func seededStore() *MemoryStore {
	store := NewMemoryStore()
	store.PutContentType(pageType)
	store.PutContentType(Type{TypeKey: uuid.New(), TypeAlias: "article", TypeName: "Article"})
	store.PutContent(&Node{NodeKey: homeKey, NodeName: "Home", Type: pageType})
	store.PutContent(&Node{NodeKey: aboutKey, NodeName: "About", Parent: homeKey, Type: pageType, Segments: []string{"about"}})
	return store
}

func TestParseReference(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  Reference
		valid bool
	}{
		{name: "document udi", raw: "umb://document/1f3e6c208a714a76a7f60c7d2a9c0b11", want: Reference{Entity: EntityDocument, Key: homeKey}, valid: true},
		{name: "upper case scheme", raw: "UMB://Document/1f3e6c208a714a76a7f60c7d2a9c0b11", want: Reference{Entity: EntityDocument, Key: homeKey}, valid: true},
		{name: "bare uuid", raw: homeKey.String(), want: Reference{Key: homeKey}, valid: true},
		{name: "empty", raw: "  "},
		{name: "missing id", raw: "umb://document/"},
		{name: "garbage", raw: "not-a-key"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseReference(tc.raw)
			if !tc.valid {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("parse %q: want %+v, got %+v", tc.raw, tc.want, got)
			}
		})
	}
}

func TestReference_StringRoundTrip(t *testing.T) {
	ref := Reference{Entity: EntityDocument, Key: aboutKey}
	parsed, err := ParseReference(ref.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != ref {
		t.Fatalf("round trip: want %+v, got %+v", ref, parsed)
	}
	if !parsed.Matches(EntityDocument) || parsed.Matches(EntityDocumentType) {
		t.Fatalf("entity matching is wrong for %+v", parsed)
	}
}

func TestMemoryStore_Lookups(t *testing.T) {
	ctx := context.Background()
	store := seededStore()

	item, err := store.ContentByKey(ctx, aboutKey)
	if err != nil {
		t.Fatalf("content by key: %v", err)
	}
	if item.Name() != "About" {
		t.Fatalf("unexpected item %q", item.Name())
	}

	if _, err := store.ContentByKey(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	children, err := store.Children(ctx, homeKey)
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 1 || children[0].Key() != aboutKey {
		t.Fatalf("unexpected children %v", children)
	}

	ct, err := store.ContentTypeByAlias(ctx, "PAGE")
	if err != nil || ct.Key() != pageType.TypeKey {
		t.Fatalf("content type by alias: %v (%v)", ct, err)
	}

	types, err := store.ContentTypes(ctx)
	if err != nil {
		t.Fatalf("content types: %v", err)
	}
	var aliases []string
	for _, ct := range types {
		aliases = append(aliases, ct.Alias())
	}
	if diff := cmp.Diff([]string{"article", "page"}, aliases); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := seededStore().ContentByKey(ctx, homeKey); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultBuilder(t *testing.T) {
	store := seededStore()
	item, _ := store.ContentByKey(context.Background(), aboutKey)

	got := DefaultBuilder{}.Build(item)
	want := &APIContent{
		ID:          aboutKey,
		Name:        "About",
		ContentType: "page",
		Route:       APIRoute{Path: "/about/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("api content mismatch (-want +got):\n%s", diff)
	}

	if (DefaultBuilder{}).Build(nil) != nil {
		t.Fatalf("nil item should build nil summary")
	}

	root, _ := store.ContentByKey(context.Background(), homeKey)
	if path := (DefaultBuilder{}).Build(root).Route.Path; path != "/" {
		t.Fatalf("root route: want /, got %q", path)
	}
}
