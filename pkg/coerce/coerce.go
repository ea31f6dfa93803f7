// Package coerce converts loosely typed values into a requested concrete
// reflect.Type: identity, strings to and from scalar kinds, numeric
// conversions with range checks, and UUIDs parsed from strings. Interface
// targets are not handled; callers check assignability themselves.
package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// Float bounds of the 64-bit integer ranges. math.MaxInt64 and
// math.MaxUint64 round up to these when converted to float64, so the
// comparisons against them must be exclusive.
var (
	int64Limit  = math.Ldexp(1, 63)
	uint64Limit = math.Ldexp(1, 64)
)

// To attempts to convert value into an instance of target. The boolean is
// false when no conversion applies; To never panics.
func To(value any, target reflect.Type) (any, bool) {
	if target == nil {
		return nil, false
	}
	if value == nil || target.Kind() == reflect.Interface {
		return nil, false
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(target) {
		return value, true
	}
	if target == uuidType {
		return toUUID(value)
	}

	switch target.Kind() {
	case reflect.String:
		return toString(value, target)
	case reflect.Bool:
		return toBool(src, target)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toInt(src, target)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return toUint(src, target)
	case reflect.Float32, reflect.Float64:
		return toFloat(src, target)
	case reflect.Pointer:
		inner, ok := To(value, target.Elem())
		if !ok {
			return nil, false
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(reflect.ValueOf(inner))
		return ptr.Interface(), true
	}

	if src.Type().ConvertibleTo(target) {
		if !sliceFits(src, target) {
			return nil, false
		}
		return src.Convert(target).Interface(), true
	}
	return nil, false
}

// sliceFits reports whether a slice is long enough for a conversion to an
// array or array pointer. reflect panics on short slices.
func sliceFits(src reflect.Value, target reflect.Type) bool {
	if src.Kind() != reflect.Slice {
		return true
	}
	switch {
	case target.Kind() == reflect.Array:
		return src.Len() >= target.Len()
	case target.Kind() == reflect.Pointer && target.Elem().Kind() == reflect.Array:
		return src.Len() >= target.Elem().Len()
	}
	return true
}

func fitsInt64(f float64) bool {
	return f == math.Trunc(f) && f < int64Limit && f >= -int64Limit
}

func toString(value any, target reflect.Type) (any, bool) {
	var out string
	switch v := value.(type) {
	case string:
		out = v
	case fmt.Stringer:
		out = v.String()
	case []byte:
		out = string(v)
	case bool:
		out = strconv.FormatBool(v)
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out = strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out = strconv.FormatUint(rv.Uint(), 10)
		case reflect.Float32, reflect.Float64:
			out = strconv.FormatFloat(rv.Float(), 'f', -1, 64)
		case reflect.String:
			out = rv.String()
		default:
			return nil, false
		}
	}
	return reflect.ValueOf(out).Convert(target).Interface(), true
}

func toBool(src reflect.Value, target reflect.Type) (any, bool) {
	var out bool
	switch src.Kind() {
	case reflect.Bool:
		out = src.Bool()
	case reflect.String:
		switch strings.ToLower(strings.TrimSpace(src.String())) {
		case "1", "true", "yes", "on":
			out = true
		case "0", "false", "no", "off", "":
			out = false
		default:
			return nil, false
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out = src.Int() != 0
	default:
		return nil, false
	}
	return reflect.ValueOf(out).Convert(target).Interface(), true
}

func toInt(src reflect.Value, target reflect.Type) (any, bool) {
	var n int64
	switch src.Kind() {
	case reflect.String:
		parsed, err := strconv.ParseInt(strings.TrimSpace(src.String()), 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(src.String()), 64)
			if ferr != nil || !fitsInt64(f) {
				return nil, false
			}
			parsed = int64(f)
		}
		n = parsed
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = src.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if src.Uint() > math.MaxInt64 {
			return nil, false
		}
		n = int64(src.Uint())
	case reflect.Float32, reflect.Float64:
		f := src.Float()
		if !fitsInt64(f) {
			return nil, false
		}
		n = int64(f)
	case reflect.Bool:
		if src.Bool() {
			n = 1
		}
	default:
		return nil, false
	}
	out := reflect.New(target).Elem()
	if out.OverflowInt(n) {
		return nil, false
	}
	out.SetInt(n)
	return out.Interface(), true
}

func toUint(src reflect.Value, target reflect.Type) (any, bool) {
	var n uint64
	switch src.Kind() {
	case reflect.String:
		parsed, err := strconv.ParseUint(strings.TrimSpace(src.String()), 10, 64)
		if err != nil {
			return nil, false
		}
		n = parsed
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if src.Int() < 0 {
			return nil, false
		}
		n = uint64(src.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n = src.Uint()
	case reflect.Float32, reflect.Float64:
		f := src.Float()
		if f < 0 || f != math.Trunc(f) || f >= uint64Limit {
			return nil, false
		}
		n = uint64(f)
	default:
		return nil, false
	}
	out := reflect.New(target).Elem()
	if out.OverflowUint(n) {
		return nil, false
	}
	out.SetUint(n)
	return out.Interface(), true
}

func toFloat(src reflect.Value, target reflect.Type) (any, bool) {
	var f float64
	switch src.Kind() {
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(src.String()), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(src.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(src.Uint())
	case reflect.Float32, reflect.Float64:
		f = src.Float()
	default:
		return nil, false
	}
	out := reflect.New(target).Elem()
	if out.OverflowFloat(f) {
		return nil, false
	}
	out.SetFloat(f)
	return out.Interface(), true
}

func toUUID(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		key, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		return key, true
	case []byte:
		key, err := uuid.ParseBytes(v)
		if err != nil {
			return nil, false
		}
		return key, true
	}
	return nil, false
}
