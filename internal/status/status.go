// Package status reads and writes soreness status documents: a YAML (or
// JSON) mapping from muscle group to soreness level.
//
//	CHEST: FRESH
//	legs: dead-sore
package status

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/claude/musclemap/internal/plan"
	"github.com/claude/musclemap/internal/soreness"
	"gopkg.in/yaml.v3"
)

// Decode reads a status document into a new insertion-ordered Status.
// An empty document yields an empty Status.
func Decode(r io.Reader) (plan.Status, error) {
	s := plan.NewStatus()
	if err := DecodeInto(r, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeInto inserts the document's bindings into dst in document order.
// A group listed twice fails with kv.ErrDuplicateKey.
func DecodeInto(r io.Reader, dst plan.Status) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing status document: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: status document must be a mapping of muscle group to level", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		// yaml.v3 leaves null scalars at the zero value without calling
		// UnmarshalText, so validity is checked after decoding.
		var group soreness.MuscleGroup
		if err := keyNode.Decode(&group); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
		if !group.Valid() {
			return fmt.Errorf("line %d: %w: %q", keyNode.Line, soreness.ErrUnknownMuscleGroup, keyNode.Value)
		}
		var level soreness.Level
		if err := valNode.Decode(&level); err != nil {
			return fmt.Errorf("line %d: %s: %w", valNode.Line, group, err)
		}
		if !level.Valid() {
			return fmt.Errorf("line %d: %s: %w: %q", valNode.Line, group, soreness.ErrUnknownLevel, valNode.Value)
		}
		if err := dst.Insert(group, level); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
	}
	return nil
}

// Load reads a status document from a file.
func Load(path string) (plan.Status, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening status file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes status as a YAML mapping in traversal order.
func Encode(w io.Writer, s plan.Status) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for group, level := range s.Entries() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: group.String()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: level.String()},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding status document: %w", err)
	}
	return enc.Close()
}
