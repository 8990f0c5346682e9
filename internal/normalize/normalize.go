// Package normalize turns arbitrary API response values into JSON-safe records.
//
// A Normalizer tries a fixed ladder of extraction strategies on each value:
// a declared ToMap conversion, a declared attribute map, the struct's own
// fields, and finally every promoted field reachable through embedding.
// Failures inside a strategy are logged and skipped. When nothing can be
// extracted the result is a sentinel record that callers can detect with
// IsExtractionFailed.
package normalize

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// Record is a JSON-safe mapping produced by the Normalizer.
type Record = map[string]any

// Sentinel keys set on records that could not be extracted.
const (
	KeyRawObjectType    = "_raw_object_type"
	KeyExtractionFailed = "_extraction_failed"
)

// DefaultDenylist holds metadata keys that model libraries attach to their
// objects. They never describe the monitored resource.
var DefaultDenylist = []string{
	"model_config",
	"model_fields",
	"model_fields_set",
	"model_computed_fields",
	"model_extra",
	"openapi_types",
	"attribute_map",
	"discriminator_value_class_map",
	"additional_properties_type",
	"fields_set",
	"json_schema",
	"validators",
}

// DefaultIdentifierFields are tried in order when a record has no
// identifier-like key after extraction.
var DefaultIdentifierFields = []string{
	"id",
	"page_id",
	"organization_id",
	"check_id",
	"component_id",
	"uuid",
	"pk",
}

// maxDepth bounds recursion through deeply nested values.
const maxDepth = 32

// Mapper is implemented by values that know their own wire representation.
type Mapper interface {
	ToMap() (map[string]any, error)
}

// AttributeMapper is implemented by values that declare how their Go field
// names map to wire names.
type AttributeMapper interface {
	AttributeMap() map[string]string
}

// Options configure a Normalizer. Nil slices select the defaults.
type Options struct {
	Denylist         []string
	IdentifierFields []string
	Logger           *slog.Logger
}

// Normalizer converts response values into Records. It holds no mutable
// state and is safe for concurrent use.
type Normalizer struct {
	deny     map[string]struct{}
	idFields []string
	log      *slog.Logger
}

// New builds a Normalizer from opts.
func New(opts Options) *Normalizer {
	deny := opts.Denylist
	if deny == nil {
		deny = DefaultDenylist
	}
	ids := opts.IdentifierFields
	if ids == nil {
		ids = DefaultIdentifierFields
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	n := &Normalizer{
		deny:     make(map[string]struct{}, len(deny)),
		idFields: append([]string(nil), ids...),
		log:      log,
	}
	for _, k := range deny {
		n.deny[k] = struct{}{}
	}
	return n
}

// Normalize converts obj into a Record, or into a []any of Records when obj
// is a sequence. Maps of type map[string]any are returned as is.
func (n *Normalizer) Normalize(obj any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Warn("normalize: unexpected panic",
				slog.String("type", typeName(obj)), slog.Any("panic", r))
			out = extractionFailed(obj)
		}
	}()

	if obj == nil {
		return Record{}
	}
	if m, ok := obj.(map[string]any); ok {
		return m
	}
	if hasCapability(obj) {
		return n.object(obj, newTrail())
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Record{}
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if m, ok := asStringMap(rv); ok {
			return m
		}
		return n.mapValue(rv, newTrail())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = n.element(rv.Index(i))
		}
		return items
	}
	return n.object(obj, newTrail())
}

// NormalizeObject runs the extraction strategies on a single value.
func (n *Normalizer) NormalizeObject(obj any) Record {
	return n.object(obj, newTrail())
}

func (n *Normalizer) element(v reflect.Value) any {
	if !v.CanInterface() || isNil(v) {
		return Record{}
	}
	switch out := n.Normalize(v.Interface()).(type) {
	case map[string]any:
		return out
	case []any:
		return out
	default:
		return Record{}
	}
}

// object runs the extraction ladder on obj. It returns nil when obj is
// already being extracted further up the trail.
func (n *Normalizer) object(obj any, t trail) Record {
	if obj == nil {
		return Record{}
	}
	if rv := reflect.ValueOf(obj); (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return Record{}
	}
	leave, ok := t.enter(obj)
	if !ok {
		return nil
	}
	defer leave()

	if !hasCapability(obj) {
		if rv := indirect(reflect.ValueOf(obj)); rv.IsValid() && rv.Kind() == reflect.Map {
			if m, ok := asStringMap(rv); ok {
				return m
			}
			return n.mapValue(rv, t)
		}
	}

	rec := n.run("declared", obj, func() (Record, error) { return n.declared(obj, t) })
	if len(rec) == 0 {
		rec = n.run("attribute_map", obj, func() (Record, error) { return n.attributeMap(obj, t) })
	}
	if len(rec) == 0 {
		rec = n.run("fields", obj, func() (Record, error) { return n.fields(obj, t) })
		if rec == nil {
			rec = Record{}
		}
		n.run("introspect", obj, func() (Record, error) { return rec, n.introspect(obj, rec, t) })
	}

	if !hasIdentifier(rec) {
		n.backfillIdentifier(rec, obj, t)
	}
	if len(rec) == 0 {
		return extractionFailed(obj)
	}
	return rec
}

// run executes one strategy, turning errors and panics into an empty result.
func (n *Normalizer) run(strategy string, obj any, fn func() (Record, error)) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Debug("normalize: strategy panicked",
				slog.String("strategy", strategy),
				slog.String("type", typeName(obj)),
				slog.Any("panic", r))
			rec = nil
		}
	}()
	rec, err := fn()
	if err != nil {
		n.log.Debug("normalize: strategy failed",
			slog.String("strategy", strategy),
			slog.String("type", typeName(obj)),
			slog.Any("error", err))
		return nil
	}
	return rec
}

func (n *Normalizer) declared(obj any, t trail) (Record, error) {
	m, ok := capability[Mapper](obj)
	if !ok {
		return nil, nil
	}
	raw, err := m.ToMap()
	if err != nil {
		return nil, fmt.Errorf("to map: %w", err)
	}
	out := make(Record, len(raw))
	for k, v := range raw {
		if n.excluded(k) {
			continue
		}
		if nv, ok := n.value(v, t.next()); ok {
			out[k] = nv
		}
	}
	return out, nil
}

func (n *Normalizer) attributeMap(obj any, t trail) (Record, error) {
	am, ok := capability[AttributeMapper](obj)
	if !ok {
		return nil, nil
	}
	sv, ok := structOf(obj)
	if !ok {
		return nil, fmt.Errorf("attribute map on non-struct %s", typeName(obj))
	}
	attrs := am.AttributeMap()
	out := make(Record, len(attrs)*2)
	for _, internal := range sortedKeys(attrs) {
		fv, ok := lookupField(sv, internal)
		if !ok {
			continue
		}
		v, ok := n.field(fv, false, t)
		if !ok {
			continue
		}
		wire := attrs[internal]
		if wire == "" {
			wire = internal
		}
		if !n.excluded(wire) {
			setIfAbsent(out, wire, v)
		}
		if internal != wire && !n.excluded(internal) {
			setIfAbsent(out, internal, v)
		}
	}
	return out, nil
}

// fields reads the exported fields declared directly on the struct.
func (n *Normalizer) fields(obj any, t trail) (Record, error) {
	sv, ok := structOf(obj)
	if !ok {
		return nil, nil
	}
	st := sv.Type()
	out := make(Record, st.NumField())
	for i := range st.NumField() {
		sf := st.Field(i)
		tag := parseTag(sf)
		if !sf.IsExported() || tag.skip || (sf.Anonymous && !tag.named) {
			continue
		}
		if n.excluded(tag.name) {
			continue
		}
		if v, ok := n.field(sv.Field(i), tag.omitEmpty, t); ok {
			setIfAbsent(out, tag.name, v)
		}
	}
	return out, nil
}

// introspect fills rec with promoted fields of embedded structs, and with
// any direct field the fields strategy left out. Keys already in rec are
// never read again.
func (n *Normalizer) introspect(obj any, rec Record, t trail) error {
	sv, ok := structOf(obj)
	if !ok {
		return nil
	}
	n.walk(sv, rec, t, 0)
	return nil
}

func (n *Normalizer) walk(sv reflect.Value, out Record, t trail, nesting int) {
	if nesting > maxDepth {
		return
	}
	st := sv.Type()
	for i := range st.NumField() {
		sf := st.Field(i)
		tag := parseTag(sf)
		if tag.skip {
			continue
		}
		fv := sv.Field(i)
		if sf.Anonymous && !tag.named {
			if ev := indirect(fv); ev.IsValid() && ev.Kind() == reflect.Struct {
				n.walk(ev, out, t, nesting+1)
			}
			continue
		}
		if !sf.IsExported() || n.excluded(tag.name) {
			continue
		}
		if _, seen := out[tag.name]; seen {
			continue
		}
		if v, ok := n.field(fv, tag.omitEmpty, t); ok {
			out[tag.name] = v
		}
	}
}

func (n *Normalizer) backfillIdentifier(rec Record, obj any, t trail) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Debug("normalize: identifier back-fill panicked",
				slog.String("type", typeName(obj)), slog.Any("panic", r))
		}
	}()
	sv, isStruct := structOf(obj)
	for _, name := range n.idFields {
		if isStruct {
			if fv, ok := lookupField(sv, name); ok && !isNil(fv) && !fv.IsZero() {
				if v, ok := n.field(fv, false, t); ok {
					rec[name] = v
					return
				}
			}
		}
		if v, ok := n.getter(obj, name, t); ok {
			rec[name] = v
			return
		}
	}
}

// getter calls a zero-argument Get<Name> accessor such as GetPageId. Only
// accessors returning a string or integer, or a pointer to one, are called.
func (n *Normalizer) getter(obj any, name string, t trail) (any, bool) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		rv = p
	}
	for _, method := range accessorNames(name) {
		m := rv.MethodByName(method)
		if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 || !scalarResult(m.Type().Out(0)) {
			continue
		}
		res := m.Call(nil)[0]
		if isNil(res) || res.IsZero() {
			continue
		}
		return n.value(res.Interface(), t.next())
	}
	return nil, false
}

func scalarResult(rt reflect.Type) bool {
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	switch rt.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func (n *Normalizer) excluded(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") {
		return true
	}
	_, ok := n.deny[name]
	return ok
}

// IsExtractionFailed reports whether rec is the sentinel for an opaque value.
func IsExtractionFailed(rec Record) bool {
	failed, _ := rec[KeyExtractionFailed].(bool)
	return failed
}

func extractionFailed(obj any) Record {
	return Record{
		KeyRawObjectType:    typeName(obj),
		KeyExtractionFailed: true,
	}
}

func hasIdentifier(rec Record) bool {
	for k := range rec {
		if strings.Contains(strings.ToLower(k), "id") {
			return true
		}
	}
	return false
}

func setIfAbsent(rec Record, key string, v any) {
	if _, ok := rec[key]; !ok {
		rec[key] = v
	}
}

// trail carries the recursion depth and the pointers being extracted on
// the path from the root value. It is created per call.
type trail struct {
	depth  int
	active map[visit]struct{}
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

func newTrail() trail {
	return trail{active: map[visit]struct{}{}}
}

func (t trail) next() trail {
	return trail{depth: t.depth + 1, active: t.active}
}

// enter marks obj as in progress. It reports false when obj is a pointer
// that is already on the trail.
func (t trail) enter(obj any) (leave func(), ok bool) {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return func() {}, true
	}
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if _, seen := t.active[key]; seen {
		return nil, false
	}
	t.active[key] = struct{}{}
	return func() { delete(t.active, key) }, true
}
