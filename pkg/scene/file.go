// Package scene loads node trees from TOML scene files and drives them
// through measure, layout and draw.
//
// A scene file has a single [root] table:
//
//	[root]
//	type = "grid"
//	id = "board"
//	attrs = { numColumns = 3, separatorWidth = 2, separatorColor = "#FFFFFFFF" }
//
//	[[root.children]]
//	type = "double"
//	attrs = { drawableLeft = "a.png", drawableRight = "b.png", text = "pair" }
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"viewkit/pkg/attr"
)

// Node kinds accepted in the type field.
const (
	KindGrid   = "grid"
	KindAspect = "aspect"
	KindDouble = "double"
)

// File is a decoded scene file.
type File struct {
	Root NodeSpec `toml:"root"`
}

// NodeSpec describes one node and its children.
type NodeSpec struct {
	Type     string     `toml:"type"`
	ID       string     `toml:"id"`
	Attrs    attr.Bag   `toml:"attrs"`
	Children []NodeSpec `toml:"children"`
}

// Parse decodes a scene file. Unknown fields are rejected so typos in
// structural keys surface early.
func Parse(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if f.Root.Type == "" {
		return nil, errors.New("decoding scene: missing [root] table or root type")
	}
	return &f, nil
}

// ReadFile reads and decodes the scene file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
