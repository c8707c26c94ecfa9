package pojo

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"reflect"
	"time"

	"github.com/gnames/gnfmt"
)

// Conv converts a value of unknown type to T.
type Conv[T any] func(v any) (T, error)

// As returns a converter to T. Values already of type T or a pointer to T
// pass through, JSON shapes (float64 and json.Number numbers, base64 strings, nested
// records) are converted, and other strings are offered to decoders.
func As[T any](decoders ...func(string) (T, error)) Conv[T] {
	return func(v any) (T, error) {
		var zero T
		if p, ok := v.(*T); ok && p != nil {
			v = *p
		}
		if res, ok := convert[T](v); ok {
			return res, nil
		}
		if s, ok := v.(string); ok && len(decoders) > 0 {
			var err error
			for _, d := range decoders {
				var res T
				if res, err = d(s); err == nil {
					return res, nil
				}
			}
			return zero, err
		}
		return zero, ValueTypeError(v, typeName[T]())
	}
}

// Check returns a converter that also validates converted values. A nil
// validator accepts everything.
func (c Conv[T]) Check(validate func(T) error) Conv[T] {
	if validate == nil {
		return c
	}
	return func(v any) (T, error) {
		res, err := c(v)
		if err != nil {
			return res, err
		}
		if err = validate(res); err != nil {
			var zero T
			return zero, err
		}
		return res, nil
	}
}

// Widen turns a converter into one returning any.
func Widen[T any](c Conv[T]) Conv[any] {
	return func(v any) (any, error) {
		return c(v)
	}
}

// Either returns the result of the first converter that succeeds.
func Either(cs ...Conv[any]) Conv[any] {
	return func(v any) (any, error) {
		var err error
		for _, c := range cs {
			var res any
			if res, err = c(v); err == nil {
				return res, nil
			}
		}
		if err == nil {
			err = ValueTypeError(v, "any")
		}
		return nil, err
	}
}

// AnyOf returns a validator that passes when one of vs passes. Without
// validators it returns nil.
func AnyOf[T any](vs ...func(T) error) func(T) error {
	if len(vs) == 0 {
		return nil
	}
	return func(v T) error {
		var err error
		for _, f := range vs {
			if err = f(v); err == nil {
				return nil
			}
		}
		return err
	}
}

// Deser converts a single value.
func Deser[T any](v any, c Conv[T]) (T, error) {
	return c(v)
}

// Opt converts an optional value. Nil gives the zero value.
func Opt[T any](v any, c Conv[T]) (T, error) {
	if isNil(v) {
		var zero T
		return zero, nil
	}
	return c(v)
}

// Ptr converts an optional value. Nil and nil pointers give nil.
func Ptr[T any](v any, c Conv[T]) (*T, error) {
	if isNil(v) {
		return nil, nil
	}
	res, err := c(v)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Flatten converts values into a slice. Nested slices are flattened and
// nil values are skipped.
func Flatten[T, V any](values []V, c Conv[T]) ([]T, error) {
	res := make([]T, 0, len(values))
	var walk func(v any) error
	walk = func(v any) error {
		if isNil(v) {
			return nil
		}
		if l, ok := v.([]any); ok {
			for _, w := range l {
				if err := walk(w); err != nil {
					return err
				}
			}
			return nil
		}
		item, err := c(v)
		if err != nil {
			return err
		}
		res = append(res, item)
		return nil
	}
	for _, v := range values {
		if err := walk(v); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Remove returns list without values.
func Remove[T any](list []T, values ...T) []T {
	res := make([]T, 0, len(list))
	for _, v := range list {
		var found bool
		for _, w := range values {
			if reflect.DeepEqual(v, w) {
				found = true
				break
			}
		}
		if !found {
			res = append(res, v)
		}
	}
	return res
}

// Put stores the plain form of v in rec. Nil values and empty slices are
// left out.
func Put(rec Record, key string, v any) {
	res := Encode(v)
	if res == nil {
		return
	}
	if l, ok := res.([]any); ok && len(l) == 0 {
		return
	}
	rec[key] = res
}

// Encode returns the plain form of a value: objects become records,
// pointers are dereferenced and slices become []any.
func Encode(v any) any {
	if isNil(v) {
		return nil
	}
	switch t := v.(type) {
	case Object:
		return t.ToRecord()
	case json.RawMessage:
		var res any
		if err := (gnfmt.GNjson{}).Decode(t, &res); err != nil {
			return string(t)
		}
		return res
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return Encode(rv.Elem().Interface())
	case reflect.Slice:
		res := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			if e := Encode(rv.Index(i).Interface()); e != nil {
				res = append(res, e)
			}
		}
		return res
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		return rv.IsNil()
	}
	return false
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

var (
	rawType  = reflect.TypeFor[json.RawMessage]()
	byteType = reflect.TypeFor[[]byte]()
)

// convert handles values of type T and the shapes JSON decoding produces
// for them.
func convert[T any](v any) (T, bool) {
	var zero T
	if res, ok := v.(T); ok {
		return res, true
	}
	if v == nil {
		return zero, false
	}
	target := reflect.TypeFor[T]()
	if target == rawType {
		data, err := gnfmt.GNjson{}.Encode(v)
		if err != nil {
			return zero, false
		}
		return any(json.RawMessage(data)).(T), true
	}
	switch rec := v.(type) {
	case map[string]any:
		return fromRecord[T](Record(rec))
	case Record:
		return fromRecord[T](rec)
	}

	rv := reflect.ValueOf(v)
	switch {
	case target == byteType && rv.Kind() == reflect.String:
		data, err := base64.StdEncoding.DecodeString(rv.String())
		if err != nil {
			return zero, false
		}
		return any(data).(T), true
	case isInt(target.Kind()) && isFloat(rv.Kind()):
		return floatToInt[T](rv.Float(), target)
	case isInt(target.Kind()) && isInt(rv.Kind()):
		return intToInt[T](rv.Int(), target)
	case isFloat(target.Kind()) && (isInt(rv.Kind()) || isFloat(rv.Kind())):
		return rv.Convert(target).Interface().(T), true
	}
	if n, ok := v.(json.Number); ok {
		if isInt(target.Kind()) {
			if i, err := n.Int64(); err == nil {
				return intToInt[T](i, target)
			}
			if f, err := n.Float64(); err == nil {
				return floatToInt[T](f, target)
			}
		}
		if isFloat(target.Kind()) {
			if f, err := n.Float64(); err == nil {
				return reflect.ValueOf(f).Convert(target).Interface().(T), true
			}
		}
	}
	return zero, false
}

// 2^63 is exact in float64, int64 values lie in [-2^63, 2^63).
const twoPow63 = float64(1 << 63)

func floatToInt[T any](f float64, target reflect.Type) (T, bool) {
	var zero T
	if f != math.Trunc(f) || f < -twoPow63 || f >= twoPow63 {
		return zero, false
	}
	return intToInt[T](int64(f), target)
}

func intToInt[T any](i int64, target reflect.Type) (T, bool) {
	var zero T
	if reflect.New(target).Elem().OverflowInt(i) {
		return zero, false
	}
	return reflect.ValueOf(i).Convert(target).Interface().(T), true
}

func fromRecord[T any](rec Record) (T, bool) {
	var zero T
	o, err := Decode(rec)
	if err != nil {
		return zero, false
	}
	res, ok := o.(T)
	return res, ok
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
