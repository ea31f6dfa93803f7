package datasource

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-datalist/pkg/content"
)

var contentTypeType = reflect.TypeOf((*content.ContentType)(nil)).Elem()

// ContentTypes offers the content types known to the store. Stored values are
// document-type references; the delivery API returns the alias.
type ContentTypes struct {
	store content.Store
}

var (
	_ DeliveryDataSource = (*ContentTypes)(nil)
	_ Lister             = (*ContentTypes)(nil)
)

// NewContentTypes creates a content type data source.
func NewContentTypes(store content.Store) *ContentTypes {
	return &ContentTypes{store: store}
}

func (s *ContentTypes) Key() string { return KeyContentTypes }

func (s *ContentTypes) ValueType(map[string]any) reflect.Type { return contentTypeType }

// ConvertValue resolves a reference to its content type. Values that are not
// references are tried as aliases.
func (s *ContentTypes) ConvertValue(ctx context.Context, _ reflect.Type, value string) any {
	if s == nil || s.store == nil || strings.TrimSpace(value) == "" {
		return nil
	}
	var (
		ct  content.ContentType
		err error
	)
	if ref, perr := content.ParseReference(value); perr == nil {
		if !ref.Matches(content.EntityDocumentType) {
			return nil
		}
		ct, err = s.store.ContentTypeByKey(ctx, ref.Key)
	} else {
		ct, err = s.store.ContentTypeByAlias(ctx, value)
	}
	if err != nil || ct == nil {
		return nil
	}
	return ct
}

func (s *ContentTypes) DeliveryValueType(map[string]any) reflect.Type { return stringType }

// ConvertDeliveryValue projects the resolved content type onto its alias.
func (s *ContentTypes) ConvertDeliveryValue(ctx context.Context, t reflect.Type, value string) any {
	ct, ok := s.ConvertValue(ctx, t, value).(content.ContentType)
	if !ok {
		return nil
	}
	return ct.Alias()
}

func (s *ContentTypes) Items(ctx context.Context, _ map[string]any) ([]Item, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("datasource: content store is not configured")
	}
	types, err := s.store.ContentTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("datasource: list content types: %w", err)
	}
	items := make([]Item, 0, len(types))
	for _, ct := range types {
		ref := content.Reference{Entity: content.EntityDocumentType, Key: ct.Key()}
		items = append(items, Item{Name: ct.Name(), Value: ref.String(), Description: ct.Alias()})
	}
	return items, nil
}
