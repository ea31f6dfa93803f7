package datalist

import (
	"context"
	"testing"

	"github.com/goliatone/go-datalist/pkg/property"
)

type textBox struct{ property.Base }

func (textBox) IsConverter(t property.Type) bool { return t.EditorAlias == "Umbraco.TextBox" }

func TestRegister_ReplacesStandard(t *testing.T) {
	conv := newConverter(t)
	standard := NewStandard(nil)
	converters := property.NewCollection(textBox{}, standard, property.Base{})

	Register(converters, conv)

	types := converters.Types()
	if len(types) != 3 {
		t.Fatalf("want 3 converters, got %d", len(types))
	}
	if types[1] != property.TypeOf[*Converter]() {
		t.Fatalf("converter should take the standard position, got %v", types)
	}

	found, ok := converters.Find(single("shouted"))
	if !ok {
		t.Fatalf("expected a converter for the data list alias")
	}
	delivery, ok := found.(property.DeliveryValueConverter)
	if !ok {
		t.Fatalf("registered converter should support the delivery API, got %T", found)
	}
	if got := property.ConvertDelivery(context.Background(), delivery, single("shouted"), "hi", false, false); got != "HI" {
		t.Fatalf("want HI, got %#v", got)
	}
}

func TestStandard_UsesRenderingOutput(t *testing.T) {
	reg := newConverter(t).registry
	standard := NewStandard(reg)
	pt := multi("numbers")

	if got := standard.ValueType(pt).String(); got != "[]int" {
		t.Fatalf("want []int, got %s", got)
	}
	if standard.CacheLevel(pt) != property.CacheSnapshot {
		t.Fatalf("want snapshot cache level")
	}
	got := property.Convert(context.Background(), standard, pt, `["1","2"]`, false)
	if ints, ok := got.([]int); !ok || len(ints) != 2 {
		t.Fatalf("unexpected output %#v", got)
	}
}
