package shape

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Dynamic value model
///////////////////////////////////////////////////////////////////////////////

// indirect dereferences pointers and interfaces until it reaches a concrete
// value. The boolean is false when value is absent (nil or a nil pointer).
func indirect(value any) (reflect.Value, bool) {
	if value == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

// isAbsent reports whether value is nil or a nil pointer.
func isAbsent(value any) bool {
	_, ok := indirect(value)
	return !ok
}

// toNumber converts any Go numeric kind to float64.
func toNumber(value any) (float64, bool) {
	rv, ok := indirect(value)
	if !ok {
		return 0, false
	}
	return numberOf(rv)
}

func numberOf(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// isIntegral reports whether value is a number with no fractional part.
// Integer kinds always are; floats must be finite and whole.
func isIntegral(value any) bool {
	rv, ok := indirect(value)
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
	default:
		return false
	}
}

// isAtomic reports whether x is a string, boolean or number held directly,
// i.e. something Lift turns into a Literal.
func isAtomic(x any) bool {
	if x == nil {
		return false
	}
	switch reflect.TypeOf(x).Kind() {
	case reflect.String, reflect.Bool:
		return true
	}
	_, ok := numberOf(reflect.ValueOf(x))
	return ok
}

// kindName names the dynamic kind of value as used in error messages.
func kindName(value any) string {
	rv, ok := indirect(value)
	if !ok {
		return "nil"
	}
	if _, ok := numberOf(rv); ok {
		return NumberName
	}
	switch rv.Kind() {
	case reflect.String:
		return StringName
	case reflect.Bool:
		return BooleanName
	case reflect.Func:
		return CallableName
	case reflect.Chan:
		return ChannelName
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return TableName
	default:
		return rv.Kind().String()
	}
}

// formatNumber renders a number the shortest way that round-trips.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, -1):
		return NegInfinity
	case math.IsInf(f, 1):
		return PosInfinity
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// formatLiteral renders a literal for "<x> expected" messages.
func formatLiteral(x any) string {
	rv, ok := indirect(x)
	if !ok {
		return "nil"
	}
	if rv.Kind() == reflect.String {
		return strconv.Quote(rv.String())
	}
	if f, ok := numberOf(rv); ok {
		return formatNumber(f)
	}
	return fmt.Sprintf("%v", rv.Interface())
}

// literalEqual compares a candidate to a literal. Numbers compare by value
// across Go kinds; everything else falls back to reflect.DeepEqual.
func literalEqual(literal, candidate any) bool {
	lv, lok := indirect(literal)
	cv, cok := indirect(candidate)
	if !lok || !cok {
		return !lok && !cok
	}
	if lf, ok := numberOf(lv); ok {
		cf, ok := numberOf(cv)
		return ok && lf == cf
	}
	if lv.Kind() == reflect.String {
		return cv.Kind() == reflect.String && lv.String() == cv.String()
	}
	if lv.Kind() == reflect.Bool {
		return cv.Kind() == reflect.Bool && lv.Bool() == cv.Bool()
	}
	return reflect.DeepEqual(lv.Interface(), cv.Interface())
}

///////////////////////////////////////////////////////////////////////////////
// Aggregates
///////////////////////////////////////////////////////////////////////////////

// entry is one key/value pair of an aggregate.
type entry struct {
	key   any
	value any
}

// aggregate is a read-only view over the Go values treated as tables:
// maps, slices, arrays and structs.
type aggregate struct {
	rv reflect.Value
}

// asAggregate returns the aggregate view of value, if it has one.
func asAggregate(value any) (aggregate, bool) {
	rv, ok := indirect(value)
	if !ok {
		return aggregate{}, false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return aggregate{rv: rv}, true
	default:
		return aggregate{}, false
	}
}

// entries lists every key/value pair in a deterministic order: index order
// for sequences, declaration order for structs and sorted keys for maps.
func (a aggregate) entries() []entry {
	switch a.rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]entry, a.rv.Len())
		for i := range out {
			out[i] = entry{key: i, value: a.rv.Index(i).Interface()}
		}
		return out

	case reflect.Struct:
		fields := structFields(a.rv.Type())
		out := make([]entry, 0, len(fields))
		for _, f := range fields {
			out = append(out, entry{key: f.name, value: a.rv.Field(f.index).Interface()})
		}
		return out

	case reflect.Map:
		// MapRange reaches entries MapIndex cannot, such as NaN keys.
		out := make([]entry, 0, a.rv.Len())
		for it := a.rv.MapRange(); it.Next(); {
			out = append(out, entry{key: it.Key().Interface(), value: it.Value().Interface()})
		}
		slices.SortFunc(out, func(x, y entry) int {
			if c := compareKeys(x.key, y.key); c != 0 {
				return c
			}
			// 1 and 1.0 can coexist in a map[any]any
			return strings.Compare(fmt.Sprintf("%T", x.key), fmt.Sprintf("%T", y.key))
		})
		return out
	}
	return nil
}

// lookup returns the value stored under a string key.
func (a aggregate) lookup(key string) (any, bool) {
	switch a.rv.Kind() {
	case reflect.Struct:
		for _, f := range structFields(a.rv.Type()) {
			if f.name == key {
				return a.rv.Field(f.index).Interface(), true
			}
		}
		return nil, false

	case reflect.Map:
		kt := a.rv.Type().Key()
		k := reflect.ValueOf(key)
		if !k.Type().AssignableTo(kt) {
			if kt.Kind() != reflect.String {
				return nil, false
			}
			k = k.Convert(kt)
		}
		v := a.rv.MapIndex(k)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	}
	return nil, false
}

// sequenceLength is the count of consecutive integer keys starting at 1.
// Slices and arrays are sequences by construction, so their length is len.
func (a aggregate) sequenceLength() int {
	switch a.rv.Kind() {
	case reflect.Slice, reflect.Array:
		return a.rv.Len()
	case reflect.Map:
		present := make(map[int64]struct{}, a.rv.Len())
		for it := a.rv.MapRange(); it.Next(); {
			k := it.Key()
			f, ok := numberOf(k)
			if !ok {
				if k.Kind() != reflect.Interface || k.IsNil() {
					continue
				}
				if f, ok = numberOf(k.Elem()); !ok {
					continue
				}
			}
			if f == math.Trunc(f) && f >= 1 && f <= math.MaxInt32 {
				present[int64(f)] = struct{}{}
			}
		}
		n := 0
		for {
			if _, ok := present[int64(n+1)]; !ok {
				return n
			}
			n++
		}
	}
	return 0
}

// keyRank orders keys of different kinds: numbers, strings, booleans, rest.
func keyRank(k any) int {
	rv, ok := indirect(k)
	if !ok {
		return 4
	}
	if _, ok := numberOf(rv); ok {
		return 0
	}
	switch rv.Kind() {
	case reflect.String:
		return 1
	case reflect.Bool:
		return 2
	default:
		return 3
	}
}

func compareKeys(a, b any) int {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		fa, _ := toNumber(a)
		fb, _ := toNumber(b)
		return cmp.Compare(fa, fb)
	case 1:
		va, _ := indirect(a)
		vb, _ := indirect(b)
		return strings.Compare(va.String(), vb.String())
	case 2:
		va, _ := indirect(a)
		vb, _ := indirect(b)
		switch {
		case va.Bool() == vb.Bool():
			return 0
		case !va.Bool():
			return -1
		default:
			return 1
		}
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

///////////////////////////////////////////////////////////////////////////////
// Struct fields
///////////////////////////////////////////////////////////////////////////////

// structField is an exported field viewed as an aggregate key.
type structField struct {
	index int
	name  string
	field reflect.StructField
}

// structFields lists the exported fields of t, keyed by their json name
// when they carry a json tag. Fields tagged json:"-" are skipped.
func structFields(t reflect.Type) []structField {
	out := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(JSONTagKey); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out = append(out, structField{index: i, name: name, field: f})
	}
	return out
}
