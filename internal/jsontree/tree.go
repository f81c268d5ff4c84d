// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jsontree reads values out of untyped JSON documents. Every lookup
// falls back to an empty node instead of failing, so callers can chain
// lookups through optional objects and apply a default at the end.
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is a position in a decoded JSON document. The zero Node is the
// empty node: it has no value, no keys, and no elements.
type Node struct {
	v       any
	present bool
}

// Parse decodes data into a Node. Numbers are kept in their textual form.
func Parse(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, fmt.Errorf("decoding JSON: %w", err)
	}
	if dec.More() {
		return Node{}, fmt.Errorf("decoding JSON: trailing data after document")
	}
	return Node{v: v, present: true}, nil
}

// Get walks keys through nested objects. A missing key, a null, or a
// non-object along the way yields the empty node.
func (n Node) Get(keys ...string) Node {
	cur := n
	for _, k := range keys {
		obj, ok := cur.v.(map[string]any)
		if !ok {
			return Node{}
		}
		v, ok := obj[k]
		if !ok {
			return Node{}
		}
		cur = Node{v: v, present: true}
	}
	return cur
}

// Array returns the elements of an array node, or nil for anything else.
func (n Node) Array() []Node {
	arr, ok := n.v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(arr))
	for i, v := range arr {
		out[i] = Node{v: v, present: true}
	}
	return out
}

// Index returns element i of an array node, or the empty node when the
// node is not an array or i is out of range.
func (n Node) Index(i int) Node {
	arr, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Node{}
	}
	return Node{v: arr[i], present: true}
}

// String returns the node's string value. Numbers are returned as written
// in the document. Any other node, including null, returns def.
func (n Node) String(def string) string {
	switch v := n.v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return def
	}
}

// IsMissing reports whether the node is absent or JSON null.
func (n Node) IsMissing() bool {
	return !n.present || n.v == nil
}
