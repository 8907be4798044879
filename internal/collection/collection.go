// Package collection models Postman collection documents as a navigable
// tree while preserving every field of the underlying JSON. Parsing keeps
// the raw document intact so that a collection can be round-tripped
// byte-for-byte (modulo key ordering) after targeted edits.
package collection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a document that is not a usable collection, either
// because the JSON is malformed or because a required section is missing.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing collection: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing collection: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Collection is a parsed collection document. The zero value is not usable;
// obtain one through Parse.
type Collection struct {
	root map[string]any
}

// Parse decodes data into a Collection. The document must be a JSON object
// with an "info" object and an "item" array; anything else yields a
// *ParseError. Fields the linter does not understand are preserved as-is.
func Parse(data []byte) (*Collection, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	if _, ok := root["info"].(map[string]any); !ok {
		return nil, &ParseError{Reason: `missing "info" object`}
	}
	if _, ok := root["item"].([]any); !ok {
		return nil, &ParseError{Reason: `missing "item" array`}
	}
	return &Collection{root: root}, nil
}

// Info returns the collection's info object.
func (c *Collection) Info() map[string]any {
	info, _ := c.root["info"].(map[string]any)
	return info
}

// Name returns info.name, or "" when absent.
func (c *Collection) Name() string {
	s, _ := c.Info()["name"].(string)
	return s
}

// Description returns the collection-level description. Postman exports
// carry it either as a plain string or as an object with a "content" field.
func (c *Collection) Description() string {
	return descriptionString(c.Info()["description"])
}

// Items returns the top-level items in document order.
func (c *Collection) Items() []*Item {
	raw, _ := c.root["item"].([]any)
	items := make([]*Item, 0, len(raw))
	for i, v := range raw {
		node, ok := v.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, &Item{
			node:  node,
			path:  fmt.Sprintf("/item[%d]", i),
			index: i,
		})
	}
	return items
}

// Walk visits every item in the tree in pre-order: each item before its
// children, siblings in document order.
func (c *Collection) Walk(visit func(*Item)) {
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			visit(it)
			walk(it.Children())
		}
	}
	walk(c.Items())
}

// Requests returns every item carrying a request, in pre-order.
func (c *Collection) Requests() []*Item {
	var out []*Item
	c.Walk(func(it *Item) {
		if it.IsRequest() {
			out = append(out, it)
		}
	})
	return out
}

// Folders returns every folder item in pre-order.
func (c *Collection) Folders() []*Item {
	var out []*Item
	c.Walk(func(it *Item) {
		if it.IsFolder() {
			out = append(out, it)
		}
	})
	return out
}

// ItemAt resolves a slash-separated path such as "/item[0]/item[2]" to an
// item. Segments that are not of the form item[N] are skipped, so paths
// pointing below an item ("/item[0]/request/url") resolve to the item that
// contains them. The second return is false when no item[N] segment
// resolves, including for "/" and out-of-range indexes.
func (c *Collection) ItemAt(path string) (*Item, bool) {
	var current *Item
	items := c.Items()
	for _, part := range strings.Split(path, "/") {
		if !strings.HasPrefix(part, "item[") || !strings.HasSuffix(part, "]") {
			continue
		}
		idx, err := strconv.Atoi(part[len("item[") : len(part)-1])
		if err != nil || idx < 0 || idx >= len(items) {
			return nil, false
		}
		current = items[idx]
		items = current.Children()
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// EventScripts returns the collection-level event scripts for the given
// listen type ("test" or "prerequest"), one string per event with the exec
// lines joined by newlines.
func (c *Collection) EventScripts(listen string) []string {
	return eventScripts(c.root, listen)
}

// Clone returns a deep copy of the collection. Edits to the clone never
// touch the original document.
func (c *Collection) Clone() (*Collection, error) {
	data, err := json.Marshal(c.root)
	if err != nil {
		return nil, fmt.Errorf("cloning collection: %w", err)
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("cloning collection: %w", err)
	}
	return &Collection{root: root}, nil
}

// MarshalJSON emits the underlying document. Object keys are sorted, so two
// structurally equal collections always serialize to identical bytes.
func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.root)
}

// descriptionString normalizes the two description shapes Postman emits.
func descriptionString(v any) string {
	switch d := v.(type) {
	case string:
		return d
	case map[string]any:
		s, _ := d["content"].(string)
		return s
	}
	return ""
}

// eventScripts extracts the scripts of every event on node matching listen,
// joining each event's exec lines with newlines.
func eventScripts(node map[string]any, listen string) []string {
	events, _ := node["event"].([]any)
	var scripts []string
	for _, ev := range events {
		event, ok := ev.(map[string]any)
		if !ok || event["listen"] != listen {
			continue
		}
		script, _ := event["script"].(map[string]any)
		exec, _ := script["exec"].([]any)
		lines := make([]string, 0, len(exec))
		for _, line := range exec {
			if s, ok := line.(string); ok {
				lines = append(lines, s)
			}
		}
		scripts = append(scripts, strings.Join(lines, "\n"))
	}
	return scripts
}
