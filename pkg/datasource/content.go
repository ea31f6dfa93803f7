package datasource

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-datalist/pkg/config"
	"github.com/goliatone/go-datalist/pkg/content"
	"github.com/google/uuid"
)

var (
	contentType    = reflect.TypeOf((*content.Content)(nil)).Elem()
	apiContentType = reflect.TypeOf((*content.APIContent)(nil))
)

// Content offers published content items, by default the children of the
// node referenced by "parentNode". Stored values are content references.
// Through the delivery API values are projected into APIContent summaries.
type Content struct {
	store   content.Store
	builder content.APIContentBuilder
}

var (
	_ DeliveryDataSource = (*Content)(nil)
	_ Lister             = (*Content)(nil)
)

// NewContent creates a content data source. A nil builder defaults to
// content.DefaultBuilder.
func NewContent(store content.Store, builder content.APIContentBuilder) *Content {
	if builder == nil {
		builder = content.DefaultBuilder{}
	}
	return &Content{store: store, builder: builder}
}

func (s *Content) Key() string { return KeyContent }

func (s *Content) ValueType(map[string]any) reflect.Type { return contentType }

// ConvertValue resolves the referenced content item, or returns nil.
func (s *Content) ConvertValue(ctx context.Context, _ reflect.Type, value string) any {
	if s == nil || s.store == nil {
		return nil
	}
	ref, err := content.ParseReference(value)
	if err != nil || !ref.Matches(content.EntityDocument) {
		return nil
	}
	item, err := s.store.ContentByKey(ctx, ref.Key)
	if err != nil || item == nil {
		return nil
	}
	return item
}

func (s *Content) DeliveryValueType(map[string]any) reflect.Type { return apiContentType }

// ConvertDeliveryValue builds an APIContent summary when the reference
// resolves to a content item.
func (s *Content) ConvertDeliveryValue(ctx context.Context, t reflect.Type, value string) any {
	item, ok := s.ConvertValue(ctx, t, value).(content.Content)
	if !ok {
		return nil
	}
	summary := s.builder.Build(item)
	if summary == nil {
		return nil
	}
	return summary
}

// Items lists the children of "parentNode".
func (s *Content) Items(ctx context.Context, cfg map[string]any) ([]Item, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("datasource: content store is not configured")
	}
	var parent uuid.UUID
	if raw := strings.TrimSpace(config.String(cfg, "parentNode")); raw != "" {
		ref, err := content.ParseReference(raw)
		if err != nil {
			return nil, fmt.Errorf("datasource: parent node: %w", err)
		}
		parent = ref.Key
	}
	children, err := s.store.Children(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("datasource: list content: %w", err)
	}
	items := make([]Item, 0, len(children))
	for _, child := range children {
		ref := content.Reference{Entity: content.EntityDocument, Key: child.Key()}
		item := Item{Name: child.Name(), Value: ref.String()}
		if ct := child.ContentType(); ct != nil {
			item.Description = ct.Alias()
		}
		items = append(items, item)
	}
	return items, nil
}
