package datasource

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-datalist/pkg/config"
)

const maxNumberItems = 10000

// Numbers offers a numeric range. Values are ints unless "decimals" is
// positive, in which case they are float64.
type Numbers struct{}

var (
	_ DataSource = Numbers{}
	_ Lister     = Numbers{}
)

func (Numbers) Key() string { return KeyNumbers }

func (Numbers) ValueType(cfg map[string]any) reflect.Type {
	if config.Int(cfg, "decimals", 0) > 0 {
		return reflect.TypeOf(float64(0))
	}
	return reflect.TypeOf(0)
}

func (Numbers) ConvertValue(_ context.Context, t reflect.Type, value string) any {
	trimmed := strings.TrimSpace(value)
	if t != nil && t.Kind() == reflect.Float64 {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return f
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil
	}
	return n
}

// Items enumerates start..end by increment. A non-positive increment, a
// non-finite bound or an oversized range results in an error.
func (Numbers) Items(_ context.Context, cfg map[string]any) ([]Item, error) {
	start := config.Float(cfg, "start", 0)
	end := config.Float(cfg, "end", 10)
	step := config.Float(cfg, "increment", 1)
	decimals := config.Int(cfg, "decimals", 0)
	for name, v := range map[string]float64{"start": start, "end": end, "increment": step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("datasource: numbers %s must be finite", name)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("datasource: numbers increment must be positive")
	}
	if (end-start)/step > maxNumberItems {
		return nil, fmt.Errorf("datasource: numbers range exceeds %d items", maxNumberItems)
	}

	var items []Item
	for i := 0; ; i++ {
		current := start + float64(i)*step
		if current > end {
			break
		}
		label := strconv.FormatFloat(current, 'f', decimals, 64)
		items = append(items, Item{Name: label, Value: label})
	}
	return items, nil
}
