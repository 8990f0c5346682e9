package normalize

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

var anyMapType = reflect.TypeFor[map[string]any]()

// value converts a single field value into its JSON-safe form. The boolean
// is false when the value must be dropped (funcs, channels, depth overflow).
func (n *Normalizer) value(v any, t trail) (any, bool) {
	if t.depth > maxDepth {
		return nil, false
	}
	switch t := v.(type) {
	case nil:
		return nil, true
	case string, bool:
		return t, true
	case time.Time:
		return t.Format(time.RFC3339Nano), true
	case *time.Time:
		if t == nil {
			return nil, true
		}
		return t.Format(time.RFC3339Nano), true
	case json.Number:
		return t, true
	case json.RawMessage:
		if json.Valid(t) {
			return t, true
		}
		return string(t), true
	case []byte:
		return string(t), true
	}

	rv := reflect.ValueOf(v)
	if isNil(rv) {
		return nil, true
	}
	if hasCapability(v) {
		return n.objectValue(v, t)
	}
	if out, ok := n.marshaled(v); ok {
		return out, true
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32, reflect.Float64:
		return floatValue(rv), true
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128), true
	case reflect.String:
		return rv.String(), true
	case reflect.Pointer, reflect.Interface:
		if ev := indirect(rv); ev.IsValid() && ev.Kind() == reflect.Struct {
			return n.objectValue(v, t)
		}
		return n.value(rv.Elem().Interface(), t.next())
	case reflect.Struct:
		return n.objectValue(v, t)
	case reflect.Map:
		return n.mapValue(rv, t), true
	case reflect.Slice, reflect.Array:
		items := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			ev := rv.Index(i)
			if !ev.CanInterface() {
				continue
			}
			if item, ok := n.value(ev.Interface(), t.next()); ok {
				items = append(items, item)
			}
		}
		return items, true
	}
	// func, chan, unsafe pointer
	return nil, false
}

// objectValue extracts a nested object. A value that refers back to one of
// its ancestors is dropped.
func (n *Normalizer) objectValue(v any, t trail) (any, bool) {
	rec := n.object(v, t)
	if rec == nil {
		return nil, false
	}
	return rec, true
}

// field reads one struct field. Nil values and, for omitempty fields, empty
// values are reported as absent.
func (n *Normalizer) field(fv reflect.Value, omitEmpty bool, t trail) (any, bool) {
	if !fv.IsValid() || !fv.CanInterface() || isNil(fv) {
		return nil, false
	}
	if omitEmpty && isEmpty(fv) {
		return nil, false
	}
	return n.value(fv.Interface(), t.next())
}

// mapValue copies a map into a Record with stringified, sorted keys.
// Denylisted and underscore-prefixed keys are dropped.
func (n *Normalizer) mapValue(rv reflect.Value, t trail) Record {
	out := make(Record, rv.Len())
	byName := make(map[string]reflect.Value, rv.Len())
	for _, k := range rv.MapKeys() {
		name := keyString(k)
		if _, dup := byName[name]; !dup {
			byName[name] = k
		}
	}
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		if n.excluded(name) {
			continue
		}
		ev := rv.MapIndex(byName[name])
		if !ev.CanInterface() {
			continue
		}
		if v, ok := n.value(ev.Interface(), t.next()); ok {
			out[name] = v
		}
	}
	return out
}

// marshaled renders values that define their own JSON or text form.
func (n *Normalizer) marshaled(v any) (out any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = nil, false
		}
	}()
	switch m := v.(type) {
	case json.Marshaler:
		raw, err := m.MarshalJSON()
		if err != nil {
			return nil, false
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, false
		}
		if rec, isMap := out.(map[string]any); isMap {
			for k := range rec {
				if n.excluded(k) {
					delete(rec, k)
				}
			}
		}
		return out, true
	case encoding.TextMarshaler:
		raw, err := m.MarshalText()
		if err != nil {
			return nil, false
		}
		return string(raw), true
	}
	return nil, false
}

func floatValue(rv reflect.Value) any {
	bits := 64
	if rv.Kind() == reflect.Float32 {
		bits = 32
	}
	f := rv.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	if bits == 32 {
		// Re-parse so float32 values keep their short decimal form.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'g', -1, 32), 64)
	}
	return f
}

// capability reports whether obj, or a pointer to a copy of it, implements T.
func capability[T any](obj any) (T, bool) {
	if c, ok := obj.(T); ok {
		return c, true
	}
	rv := reflect.ValueOf(obj)
	if rv.IsValid() && rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		if c, ok := p.Interface().(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func hasCapability(obj any) bool {
	if _, ok := capability[Mapper](obj); ok {
		return true
	}
	_, ok := capability[AttributeMapper](obj)
	return ok
}

// asStringMap returns the underlying map[string]any without copying.
func asStringMap(rv reflect.Value) (map[string]any, bool) {
	if !rv.Type().ConvertibleTo(anyMapType) {
		return nil, false
	}
	if rv.IsNil() {
		return Record{}, true
	}
	m, ok := rv.Convert(anyMapType).Interface().(map[string]any)
	return m, ok
}

func structOf(obj any) (reflect.Value, bool) {
	rv := indirect(reflect.ValueOf(obj))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return rv, true
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isEmpty follows encoding/json omitempty rules.
func isEmpty(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

type tagInfo struct {
	name      string
	named     bool
	omitEmpty bool
	skip      bool
}

func parseTag(sf reflect.StructField) tagInfo {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return tagInfo{skip: true}
	}
	name, opts, _ := strings.Cut(tag, ",")
	info := tagInfo{name: name, named: name != ""}
	if !info.named {
		info.name = sf.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			info.omitEmpty = true
		}
	}
	return info
}

// lookupField finds an exported field, promoted ones included, by Go name or
// json name, then by a case and underscore insensitive match. Fields tagged
// json:"-" are still found.
func lookupField(sv reflect.Value, name string) (reflect.Value, bool) {
	want := squash(name)
	var index []int
	for _, sf := range reflect.VisibleFields(sv.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		tag := parseTag(sf)
		if sf.Name == name || tag.name == name {
			index = sf.Index
			break
		}
		if index == nil && (squash(sf.Name) == want || squash(tag.name) == want) {
			index = sf.Index
		}
	}
	if index == nil {
		return reflect.Value{}, false
	}
	fv, err := sv.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	return fv, true
}

// accessorNames lists Get<Name> spellings for a snake_case identifier,
// e.g. page_id -> GetPageId, GetPageID.
func accessorNames(name string) []string {
	parts := strings.Split(name, "_")
	var title, upper strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		t := strings.ToUpper(p[:1]) + p[1:]
		title.WriteString(t)
		if i == len(parts)-1 {
			upper.WriteString(strings.ToUpper(p))
		} else {
			upper.WriteString(t)
		}
	}
	names := []string{"Get" + title.String()}
	if u := "Get" + upper.String(); u != names[0] {
		names = append(names, u)
	}
	return names
}

func squash(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if raw, err := tm.MarshalText(); err == nil {
				return string(raw)
			}
		}
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

func typeName(obj any) string {
	if obj == nil {
		return "nil"
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
