// Package pathcodec implements the serialization adapter (C4): PathNode
// round-trips through its canonical textual rendering, and
// PermissionsDocument round-trips through a small JSON structure whose
// path strings are opaque to the datastore schema.
package pathcodec

import (
	"encoding/json"
	"fmt"

	"github.com/gov-dx-sandbox/identity-authz-core/pathlang"
	"github.com/gov-dx-sandbox/identity-authz-core/resourcepath"
)

// EncodePathNode renders n as its canonical textual form.
func EncodePathNode(n *resourcepath.PathNode) string {
	return resourcepath.RenderPathNode(n)
}

// DecodePathNode parses text and requires it to describe exactly one root
// node; anything else (zero or multiple roots, or a parse failure) is an
// error.
func DecodePathNode(text string) (*resourcepath.PathNode, error) {
	ps, err := pathlang.ParseAndCompile(text)
	if err != nil {
		return nil, fmt.Errorf("pathcodec: decoding %q: %w", text, err)
	}
	if len(ps.Roots) != 1 {
		return nil, fmt.Errorf("pathcodec: %q must describe exactly one root, got %d", text, len(ps.Roots))
	}
	for _, root := range ps.Roots {
		return root, nil
	}
	panic("unreachable: non-empty map with no entries")
}

// Statement is one policy statement's persisted shape: an access kind
// discriminator plus a list of canonical path strings.
type Statement struct {
	AccessKind string   `json:"accessKind"`
	Paths      []string `json:"paths"`
}

// Document is a PermissionsDocument's persisted shape.
type Document struct {
	Statements []Statement `json:"statements"`
}

// EncodeDocument marshals doc to its JSON storage form.
func EncodeDocument(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// DecodeDocument unmarshals data into a Document, validating that every
// statement carries a recognized AccessKind.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("pathcodec: decoding document: %w", err)
	}
	for i, stmt := range doc.Statements {
		if _, err := resourcepath.ParseAccessKind(stmt.AccessKind); err != nil {
			return nil, fmt.Errorf("pathcodec: statement %d: %w", i, err)
		}
	}
	return &doc, nil
}
