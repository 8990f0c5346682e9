package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"reflect"
	"testing"
	"time"
)

func newTestNormalizer() *Normalizer {
	return New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

type service struct {
	Name          string         `json:"name"`
	InternalCache map[string]any `json:"_internal_cache"`
	Status        string         `json:"status"`
}

type declaredPage struct {
	id      string
	created time.Time
}

func (p declaredPage) ToMap() (map[string]any, error) {
	return map[string]any{
		"id":               p.id,
		"created_at":       p.created,
		"model_fields_set": []string{"id"},
		"_secret":          "x",
	}, nil
}

type opaqueModel struct {
	handle uintptr
}

func (opaqueModel) ToMap() (map[string]any, error) { return nil, errors.New("boom") }

func (opaqueModel) AttributeMap() map[string]string { panic("attribute map unavailable") }

type incident struct {
	ID       string
	PageID   string
	Title    string
	internal string
}

func (incident) AttributeMap() map[string]string {
	return map[string]string{
		"ID":     "id",
		"PageID": "page_id",
		"Title":  "title",
	}
}

type audit struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
}

type component struct {
	audit
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Group  *audit `json:"group,omitempty"`
}

type withGetter struct {
	Label  string `json:"label"`
	pageID string
}

func (w *withGetter) GetPageId() string { return w.pageID }

type hiddenID struct {
	ID    string `json:"-"`
	Title string `json:"title"`
}

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next"`
}

type sideEffects struct {
	Label string `json:"label"`
	calls int
}

func (s *sideEffects) GetId() map[string]any {
	s.calls++
	return map[string]any{"id": "x"}
}

func TestNormalize_MappingPassthrough(t *testing.T) {
	n := newTestNormalizer()
	in := map[string]any{"name": "Test Page", "id": "123"}

	out, ok := n.Normalize(in).(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", out)
	}
	if reflect.ValueOf(out).Pointer() != reflect.ValueOf(in).Pointer() {
		t.Error("expected the same map to be returned")
	}
	if !reflect.DeepEqual(out, map[string]any{"name": "Test Page", "id": "123"}) {
		t.Errorf("map changed: %v", out)
	}
}

func TestNormalize_InstanceFieldsSkipInternal(t *testing.T) {
	n := newTestNormalizer()
	out := n.Normalize(service{
		Name:          "API Server",
		InternalCache: map[string]any{"hits": 3},
		Status:        "operational",
	})
	want := Record{"name": "API Server", "status": "operational"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestNormalize_AllStrategiesFail(t *testing.T) {
	n := newTestNormalizer()
	out, ok := n.Normalize(opaqueModel{handle: 1}).(map[string]any)
	if !ok {
		t.Fatalf("expected record, got %T", out)
	}
	if !IsExtractionFailed(out) {
		t.Fatalf("expected sentinel, got %v", out)
	}
	if out[KeyRawObjectType] != "opaqueModel" {
		t.Errorf("type = %v, want opaqueModel", out[KeyRawObjectType])
	}
	if len(out) != 2 {
		t.Errorf("sentinel has extra keys: %v", out)
	}
}

func TestNormalize_HeterogeneousSequence(t *testing.T) {
	n := newTestNormalizer()
	in := []any{
		service{Name: "a", Status: "up"},
		map[string]any{"id": "2"},
		opaqueModel{},
	}
	out, ok := n.Normalize(in).([]any)
	if !ok {
		t.Fatalf("expected []any, got %T", out)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if first := out[0].(map[string]any); first["name"] != "a" {
		t.Errorf("first = %v", first)
	}
	if second := out[1].(map[string]any); second["id"] != "2" {
		t.Errorf("second = %v", second)
	}
	if third := out[2].(map[string]any); !IsExtractionFailed(third) {
		t.Errorf("third = %v, want sentinel", third)
	}
}

func TestNormalize_Nil(t *testing.T) {
	n := newTestNormalizer()
	var nilPtr *service

	tests := []struct {
		name string
		in   any
	}{
		{"untyped nil", nil},
		{"typed nil pointer", nilPtr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := n.Normalize(tt.in).(map[string]any)
			if !ok || len(out) != 0 {
				t.Errorf("got %#v, want empty record", out)
			}
		})
	}

	items := n.Normalize([]*service{nil, {Name: "x"}}).([]any)
	if rec := items[0].(map[string]any); len(rec) != 0 {
		t.Errorf("nil element = %v, want empty record", rec)
	}
}

func TestNormalize_DeclaredConversion(t *testing.T) {
	n := newTestNormalizer()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	out := n.NormalizeObject(declaredPage{id: "p1", created: created})
	want := Record{"id": "p1", "created_at": "2025-03-01T12:00:00Z"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestNormalize_AttributeMapStoresBothNames(t *testing.T) {
	n := newTestNormalizer()
	out := n.NormalizeObject(incident{ID: "i1", PageID: "p1", Title: "Outage", internal: "x"})

	want := Record{
		"id": "i1", "ID": "i1",
		"page_id": "p1", "PageID": "p1",
		"title": "Outage", "Title": "Outage",
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestNormalize_PromotedFieldsFillOnly(t *testing.T) {
	n := newTestNormalizer()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	out := n.NormalizeObject(&component{
		audit: audit{CreatedAt: created, Name: "shadowed"},
		Name:  "API",
	})

	if out["name"] != "API" {
		t.Errorf("name = %v, want direct field to win", out["name"])
	}
	if out["created_at"] != "2025-01-02T03:04:05Z" {
		t.Errorf("created_at = %v", out["created_at"])
	}
	if _, ok := out["status"]; ok {
		t.Error("empty omitempty field should be skipped")
	}
	if _, ok := out["group"]; ok {
		t.Error("nil pointer field should be skipped")
	}
}

func TestNormalize_NestedStructs(t *testing.T) {
	n := newTestNormalizer()
	out := n.NormalizeObject(component{Name: "db", Group: &audit{Name: "core"}})

	group, ok := out["group"].(map[string]any)
	if !ok {
		t.Fatalf("group = %T, want record", out["group"])
	}
	if group["name"] != "core" {
		t.Errorf("group name = %v", group["name"])
	}
}

func TestNormalize_IdentifierBackfill(t *testing.T) {
	n := newTestNormalizer()

	t.Run("accessor", func(t *testing.T) {
		out := n.NormalizeObject(withGetter{Label: "home", pageID: "pg-7"})
		if out["page_id"] != "pg-7" {
			t.Errorf("page_id = %v, want pg-7 (record %v)", out["page_id"], out)
		}
	})

	t.Run("hidden field", func(t *testing.T) {
		out := n.NormalizeObject(hiddenID{ID: "h1", Title: "t"})
		if out["id"] != "h1" {
			t.Errorf("id = %v, want h1", out["id"])
		}
	})

	t.Run("zero value is absent", func(t *testing.T) {
		out := n.NormalizeObject(hiddenID{Title: "t"})
		if _, ok := out["id"]; ok {
			t.Errorf("zero id should not be back-filled: %v", out)
		}
	})
}

func TestNormalize_IdentifierPreserved(t *testing.T) {
	n := newTestNormalizer()
	type check struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	out := n.NormalizeObject(check{ID: 42, Name: "ping"})
	if out["id"] != int64(42) {
		t.Errorf("id = %#v, want 42", out["id"])
	}
}

func TestNormalize_ValueRules(t *testing.T) {
	n := newTestNormalizer()
	type status string
	type sample struct {
		Status   status         `json:"status"`
		Ratio    float64        `json:"ratio"`
		Missing  float64        `json:"missing"`
		Callback func()         `json:"callback"`
		Events   chan int       `json:"events"`
		Raw      []byte         `json:"raw"`
		Labels   map[int]string `json:"labels"`
		Uptime   float32        `json:"uptime"`
	}
	out := n.NormalizeObject(sample{
		Status:   "up",
		Ratio:    0.5,
		Missing:  math.NaN(),
		Callback: func() {},
		Events:   make(chan int),
		Raw:      []byte("abc"),
		Labels:   map[int]string{1: "one"},
		Uptime:   99.9,
	})

	if out["status"] != "up" {
		t.Errorf("status = %#v", out["status"])
	}
	if out["missing"] != "NaN" {
		t.Errorf("missing = %#v, want NaN string", out["missing"])
	}
	if _, ok := out["callback"]; ok {
		t.Error("func field should be dropped")
	}
	if _, ok := out["events"]; ok {
		t.Error("chan field should be dropped")
	}
	if out["raw"] != "abc" {
		t.Errorf("raw = %#v", out["raw"])
	}
	if labels := out["labels"].(map[string]any); labels["1"] != "one" {
		t.Errorf("labels = %v", labels)
	}
	if out["uptime"] != 99.9 {
		t.Errorf("uptime = %#v", out["uptime"])
	}
	if _, err := json.Marshal(out); err != nil {
		t.Errorf("result is not JSON-safe: %v", err)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer()
	first := n.Normalize(component{Name: "api", Status: "operational"}).(map[string]any)
	snapshot := make(map[string]any, len(first))
	for k, v := range first {
		snapshot[k] = v
	}

	second := n.Normalize(first)
	if !reflect.DeepEqual(second, snapshot) {
		t.Errorf("second pass changed record: %v vs %v", second, snapshot)
	}
}

func TestNormalize_Totality(t *testing.T) {
	n := newTestNormalizer()
	loop := &node{Name: "a"}
	loop.Next = loop

	inputs := []any{
		nil,
		42,
		"text",
		[]byte("bytes"),
		make(chan int),
		func() {},
		loop,
		[]any{nil, 1, opaqueModel{}},
		map[int]any{1: loop},
		&opaqueModel{},
	}
	for _, in := range inputs {
		out := n.Normalize(in)
		if _, err := json.Marshal(out); err != nil {
			t.Errorf("Normalize(%T) not JSON-safe: %v", in, err)
		}
	}
}

func TestNormalize_DeepChain(t *testing.T) {
	n := newTestNormalizer()
	const depth = 20
	var head *node
	for i := depth; i > 0; i-- {
		head = &node{Name: fmt.Sprintf("n%d", i), Next: head}
	}

	start := time.Now()
	out := n.NormalizeObject(head)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("chain of %d took %v", depth, elapsed)
	}

	levels := 0
	for rec := out; rec != nil; levels++ {
		if rec["name"] != fmt.Sprintf("n%d", levels+1) {
			t.Fatalf("level %d name = %v", levels, rec["name"])
		}
		next, _ := rec["next"].(map[string]any)
		rec = next
	}
	if levels != depth {
		t.Errorf("levels = %d, want %d", levels, depth)
	}
}

func TestNormalize_CycleStopsAtRevisit(t *testing.T) {
	n := newTestNormalizer()

	t.Run("self", func(t *testing.T) {
		loop := &node{Name: "a"}
		loop.Next = loop
		start := time.Now()
		out := n.NormalizeObject(loop)
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Fatalf("self loop took %v", elapsed)
		}
		if out["name"] != "a" {
			t.Errorf("name = %v", out["name"])
		}
		if _, ok := out["next"]; ok {
			t.Errorf("back reference kept: %v", out)
		}
	})

	t.Run("pair", func(t *testing.T) {
		a := &node{Name: "a"}
		b := &node{Name: "b", Next: a}
		a.Next = b
		out := n.NormalizeObject(a)
		next, ok := out["next"].(map[string]any)
		if !ok || next["name"] != "b" {
			t.Fatalf("next = %v", out["next"])
		}
		if _, ok := next["next"]; ok {
			t.Errorf("back reference kept: %v", next)
		}
	})

	t.Run("shared value is not a cycle", func(t *testing.T) {
		leaf := &node{Name: "leaf"}
		type pair struct {
			Left  *node `json:"left"`
			Right *node `json:"right"`
		}
		out := n.NormalizeObject(pair{Left: leaf, Right: leaf})
		for _, k := range []string{"left", "right"} {
			if rec, ok := out[k].(map[string]any); !ok || rec["name"] != "leaf" {
				t.Errorf("%s = %v", k, out[k])
			}
		}
	})
}

func TestNormalize_GetterSkipsNonScalar(t *testing.T) {
	n := newTestNormalizer()
	obj := &sideEffects{Label: "x"}
	out := n.NormalizeObject(obj)
	if obj.calls != 0 {
		t.Errorf("GetId called %d times", obj.calls)
	}
	if _, ok := out["id"]; ok {
		t.Errorf("id back-filled from non-scalar accessor: %v", out)
	}
}

func TestNormalize_NoDenylistLeakage(t *testing.T) {
	n := newTestNormalizer()
	type model struct {
		Name         string         `json:"name"`
		ModelFields  map[string]any `json:"model_fields"`
		OpenAPITypes map[string]any `json:"openapi_types"`
		Extra        map[string]any `json:"extra"`
	}
	out := n.NormalizeObject(model{
		Name:         "x",
		ModelFields:  map[string]any{"a": 1},
		OpenAPITypes: map[string]any{"b": 2},
		Extra:        map[string]any{"attribute_map": 1, "_private": 3, "keep": 2},
	})
	for _, k := range []string{"model_fields", "openapi_types"} {
		if _, ok := out[k]; ok {
			t.Errorf("denylisted key %q leaked", k)
		}
	}
	extra := out["extra"].(map[string]any)
	for _, k := range []string{"attribute_map", "_private"} {
		if _, ok := extra[k]; ok {
			t.Errorf("key %q leaked from nested map", k)
		}
	}
	if extra["keep"] != int64(2) {
		t.Errorf("extra = %v", extra)
	}
}

func TestNormalize_CustomOptions(t *testing.T) {
	n := New(Options{
		Denylist:         []string{"status"},
		IdentifierFields: []string{"label"},
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	out := n.NormalizeObject(service{Name: "db", Status: "down"})
	if _, ok := out["status"]; ok {
		t.Error("custom denylist not applied")
	}
	if out["name"] != "db" {
		t.Errorf("name = %v", out["name"])
	}
}

func TestAccessorNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"id", []string{"GetId", "GetID"}},
		{"page_id", []string{"GetPageId", "GetPageID"}},
		{"uuid", []string{"GetUuid", "GetUUID"}},
	}
	for _, tt := range tests {
		if got := accessorNames(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("accessorNames(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
