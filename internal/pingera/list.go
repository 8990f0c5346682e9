package pingera

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Pagination is the paging metadata of a list response, when present.
type Pagination struct {
	Total    *int `json:"total,omitempty"`
	Page     *int `json:"page,omitempty"`
	PageSize *int `json:"page_size,omitempty"`
}

// List is a decoded collection. Kind names the collection key used when
// the list is rendered, e.g. "pages".
type List[T any] struct {
	Kind  string
	Items []T
	Pagination
}

// ToMap renders the list as {"<kind>": [...], "total": n, ...}.
func (l List[T]) ToMap() (map[string]any, error) {
	items := l.Items
	if items == nil {
		items = []T{}
	}
	kind := l.Kind
	if kind == "" {
		kind = "items"
	}
	m := map[string]any{kind: items}
	if l.Total != nil {
		m["total"] = *l.Total
	}
	if l.Page != nil {
		m["page"] = *l.Page
	}
	if l.PageSize != nil {
		m["page_size"] = *l.PageSize
	}
	return m, nil
}

var listKeys = []string{"data", "items", "results"}

// decodeList accepts the shapes the API uses for collections: a bare array,
// an object keyed by kind, data, items or results, or a single object.
func decodeList[T any](raw json.RawMessage, kind string) (*List[T], error) {
	out := &List[T]{Kind: kind}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out.Items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out.Total = intPtr(len(out.Items))
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	for _, key := range append([]string{kind}, listKeys...) {
		v, ok := obj[key]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		switch {
		case len(v) > 0 && v[0] == '[':
			if err := json.Unmarshal(v, &out.Items); err != nil {
				return nil, fmt.Errorf("decode %s.%s: %w", kind, key, err)
			}
			out.Pagination = readPagination(obj, len(out.Items))
			return out, nil
		case len(v) > 0 && v[0] == '{':
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return nil, fmt.Errorf("decode %s.%s: %w", kind, key, err)
			}
			out.Items = []T{item}
			out.Total = intPtr(1)
			return out, nil
		}
	}

	if _, ok := obj["id"]; ok {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out.Items = []T{item}
		out.Total = intPtr(1)
		return out, nil
	}

	out.Pagination = readPagination(obj, 0)
	return out, nil
}

// readPagination reads paging fields from the top level or from a nested
// "pagination" or "meta" object. Total falls back to count.
func readPagination(obj map[string]json.RawMessage, count int) Pagination {
	sources := []map[string]json.RawMessage{obj}
	for _, key := range []string{"pagination", "meta"} {
		var nested map[string]json.RawMessage
		if v, ok := obj[key]; ok && json.Unmarshal(v, &nested) == nil {
			sources = append(sources, nested)
		}
	}
	var p Pagination
	for _, src := range sources {
		if p.Total == nil {
			p.Total = readInt(src, "total", "total_count", "count")
		}
		if p.Page == nil {
			p.Page = readInt(src, "page", "current_page")
		}
		if p.PageSize == nil {
			p.PageSize = readInt(src, "page_size", "per_page", "limit")
		}
	}
	if p.Total == nil {
		p.Total = intPtr(count)
	}
	return p
}

func readInt(obj map[string]json.RawMessage, keys ...string) *int {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			continue
		}
		if i, err := strconv.Atoi(n.String()); err == nil {
			return &i
		}
	}
	return nil
}

func getList[T any](ctx context.Context, c *Client, kind, route, path string, query url.Values) (*List[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, route, path, query, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw, kind)
}

func intPtr(i int) *int { return &i }

func setInt(v url.Values, key string, n *int) {
	if n != nil {
		v.Set(key, strconv.Itoa(*n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
