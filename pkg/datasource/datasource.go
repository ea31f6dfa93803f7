package datasource

import (
	"context"
	"reflect"
)

// Built-in data source keys.
const (
	KeyUserDefined  = "userDefined"
	KeyNumbers      = "numbers"
	KeyContent      = "content"
	KeyContentTypes = "contentTypes"
)

// DataSource provides selectable values for a data-list property and
// converts stored values into typed objects.
type DataSource interface {
	Key() string
	// ValueType returns the type of a single converted value. A nil type
	// means the caller should assume string.
	ValueType(cfg map[string]any) reflect.Type
	// ConvertValue converts one stored value. Returning nil drops the value.
	ConvertValue(ctx context.Context, t reflect.Type, value string) any
}

// DeliveryDataSource is implemented by data sources that expose a different
// value shape through the delivery API.
type DeliveryDataSource interface {
	DataSource
	DeliveryValueType(cfg map[string]any) reflect.Type
	ConvertDeliveryValue(ctx context.Context, t reflect.Type, value string) any
}

// Item is one selectable option offered by a data source.
type Item struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Disabled    bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Lister is implemented by data sources that can enumerate their options.
type Lister interface {
	Items(ctx context.Context, cfg map[string]any) ([]Item, error)
}

var stringType = reflect.TypeOf("")

// StringType is the fallback value type.
func StringType() reflect.Type { return stringType }
