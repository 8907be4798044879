package collection

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Item is a single node of the collection tree, either a request or a
// folder. Items share the underlying document, so mutations through an
// Item are visible when the owning Collection is serialized.
type Item struct {
	node   map[string]any
	parent *Item
	path   string
	index  int
}

// Path returns the item's stable tree path, e.g. "/item[0]/item[2]".
func (it *Item) Path() string { return it.path }

// Index returns the item's position among its siblings.
func (it *Item) Index() int { return it.index }

// Parent returns the enclosing folder, or nil for top-level items.
func (it *Item) Parent() *Item { return it.parent }

// Name returns the item's name, or "" when absent.
func (it *Item) Name() string {
	s, _ := it.node["name"].(string)
	return s
}

// SetName replaces the item's name.
func (it *Item) SetName(name string) {
	it.node["name"] = name
}

// IsRequest reports whether the item carries a request.
func (it *Item) IsRequest() bool {
	_, ok := it.node["request"]
	return ok
}

// IsFolder reports whether the item is a folder: no request, but a nested
// item array.
func (it *Item) IsFolder() bool {
	if it.IsRequest() {
		return false
	}
	_, ok := it.node["item"]
	return ok
}

// Children returns the item's nested items in document order. Requests
// have none.
func (it *Item) Children() []*Item {
	raw, _ := it.node["item"].([]any)
	children := make([]*Item, 0, len(raw))
	for i, v := range raw {
		node, ok := v.(map[string]any)
		if !ok {
			continue
		}
		children = append(children, &Item{
			node:   node,
			parent: it,
			path:   fmt.Sprintf("%s/item[%d]", it.path, i),
			index:  i,
		})
	}
	return children
}

// Request returns the request object, or nil for folders.
func (it *Item) Request() map[string]any {
	req, _ := it.node["request"].(map[string]any)
	return req
}

// Method returns the request method, or "" when the item is a folder or
// the method is unset.
func (it *Item) Method() string {
	s, _ := it.Request()["method"].(string)
	return s
}

// RawURL returns the request URL as a string. Postman stores URLs either
// as a plain string or as an object whose "raw" field holds the full URL.
func (it *Item) RawURL() string {
	req := it.Request()
	if req == nil {
		return ""
	}
	switch u := req["url"].(type) {
	case string:
		return u
	case map[string]any:
		s, _ := u["raw"].(string)
		return s
	}
	return ""
}

// SetRawURL rewrites the request URL string, matching whichever shape the
// document already uses. No-op for folders.
func (it *Item) SetRawURL(raw string) {
	req := it.Request()
	if req == nil {
		return
	}
	switch u := req["url"].(type) {
	case map[string]any:
		u["raw"] = raw
	default:
		req["url"] = raw
	}
}

// URLObject returns the request URL as an object, or nil when the URL is
// a plain string or absent.
func (it *Item) URLObject() map[string]any {
	u, _ := it.Request()["url"].(map[string]any)
	return u
}

// QueryParams returns the query parameter objects of the request URL.
func (it *Item) QueryParams() []map[string]any {
	query, _ := it.URLObject()["query"].([]any)
	params := make([]map[string]any, 0, len(query))
	for _, q := range query {
		if param, ok := q.(map[string]any); ok {
			params = append(params, param)
		}
	}
	return params
}

// Description returns the item's description, falling back to the request
// description when the item itself has none.
func (it *Item) Description() string {
	if s := descriptionString(it.node["description"]); s != "" {
		return s
	}
	return descriptionString(it.Request()["description"])
}

// Responses returns the saved response examples of a request.
func (it *Item) Responses() []any {
	resp, _ := it.node["response"].([]any)
	return resp
}

// Events returns the item's event objects as live references, so callers
// can edit scripts in place.
func (it *Item) Events() []map[string]any {
	raw, _ := it.node["event"].([]any)
	events := make([]map[string]any, 0, len(raw))
	for _, v := range raw {
		if ev, ok := v.(map[string]any); ok {
			events = append(events, ev)
		}
	}
	return events
}

// AddEvent appends a new event with the given listen type and script lines.
func (it *Item) AddEvent(listen string, lines []string) {
	exec := make([]any, len(lines))
	for i, line := range lines {
		exec[i] = line
	}
	events, _ := it.node["event"].([]any)
	it.node["event"] = append(events, map[string]any{
		"listen": listen,
		"script": map[string]any{
			"exec": exec,
			"type": "text/javascript",
		},
	})
}

// Scripts returns the item's own scripts for the given listen type, one
// string per event with exec lines joined by newlines.
func (it *Item) Scripts(listen string) []string {
	return eventScripts(it.node, listen)
}

// TestScript returns the item's own test scripts joined into one string,
// or "" when the item has none.
func (it *Item) TestScript() string {
	return strings.Join(it.Scripts("test"), "\n")
}

// PreRequestScript returns the item's own pre-request scripts joined into
// one string.
func (it *Item) PreRequestScript() string {
	return strings.Join(it.Scripts("prerequest"), "\n")
}

// InheritedTestScripts returns the test scripts of the item's enclosing
// folders, outermost first. The item's own scripts are not included.
func (it *Item) InheritedTestScripts() []string {
	return it.inheritedScripts("test")
}

// InheritedPreRequestScripts returns the pre-request scripts of the item's
// enclosing folders, outermost first.
func (it *Item) InheritedPreRequestScripts() []string {
	return it.inheritedScripts("prerequest")
}

func (it *Item) inheritedScripts(listen string) []string {
	var chain []*Item
	for p := it.parent; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	var scripts []string
	for i := len(chain) - 1; i >= 0; i-- {
		scripts = append(scripts, chain[i].Scripts(listen)...)
	}
	return scripts
}

// RequestJSON returns the request object serialized to JSON, or "" for
// folders. Secret scanning runs over this flat form so that headers, URLs,
// bodies and auth blocks are all covered by one pass.
func (it *Item) RequestJSON() string {
	req := it.Request()
	if req == nil {
		return ""
	}
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	return string(data)
}

// ReplaceInRequestStrings replaces old with new in every string value of
// the request subtree and returns the number of occurrences replaced.
func (it *Item) ReplaceInRequestStrings(old, new string) int {
	req := it.Request()
	if req == nil || old == "" {
		return 0
	}
	return replaceInValue(req, old, new)
}

func replaceInValue(v any, old, new string) int {
	count := 0
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if s, ok := child.(string); ok {
				if n := strings.Count(s, old); n > 0 {
					node[k] = strings.ReplaceAll(s, old, new)
					count += n
				}
				continue
			}
			count += replaceInValue(child, old, new)
		}
	case []any:
		for i, child := range node {
			if s, ok := child.(string); ok {
				if n := strings.Count(s, old); n > 0 {
					node[i] = strings.ReplaceAll(s, old, new)
					count += n
				}
				continue
			}
			count += replaceInValue(child, old, new)
		}
	}
	return count
}
