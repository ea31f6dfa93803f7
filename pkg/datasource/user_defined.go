package datasource

import (
	"context"
	"reflect"
	"strings"

	"github.com/goliatone/go-datalist/pkg/config"
)

// UserDefined lists items entered by the editor in the data type
// configuration under "items".
type UserDefined struct{}

var (
	_ DataSource = UserDefined{}
	_ Lister     = UserDefined{}
)

func (UserDefined) Key() string { return KeyUserDefined }

func (UserDefined) ValueType(map[string]any) reflect.Type { return stringType }

func (UserDefined) ConvertValue(_ context.Context, _ reflect.Type, value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// Items returns the configured items, skipping entries without a value.
func (UserDefined) Items(_ context.Context, cfg map[string]any) ([]Item, error) {
	raw, _ := cfg["items"].([]any)
	items := make([]Item, 0, len(raw))
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		value := strings.TrimSpace(config.String(obj, "value"))
		if value == "" {
			continue
		}
		name := strings.TrimSpace(config.String(obj, "name"))
		if name == "" {
			name = value
		}
		items = append(items, Item{
			Name:        name,
			Value:       value,
			Description: config.String(obj, "description"),
			Disabled:    config.Bool(obj, "disabled"),
		})
	}
	return items, nil
}
