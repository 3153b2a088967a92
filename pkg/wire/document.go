// Package wire defines the persisted representation of an authored
// workflow and the bidirectional mapping to the in-memory graph model.
// The document shape is the backend contract: field names here are the
// ones the persistence service stores and the runtime consumes.
package wire

import (
	"encoding/json"
)

// Document is the unit of persistence for one workflow.
type Document struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"is_public"`
	Nodes       []Node `json:"nodes" validate:"dive"`
	Edges       []Edge `json:"edges" validate:"dive"`
}

// Node is the wire form of a canvas node. Type is an advisory string:
// unknown kinds are preserved so documents authored against newer
// catalogs survive a round trip through an older build.
type Node struct {
	ID          string         `json:"id" validate:"required,ident"`
	Type        string         `json:"type" validate:"required"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	Position    Position       `json:"position"`
	Enabled     *bool          `json:"enabled,omitempty"`
}

// Position is the wire form of a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is the wire form of a connection. Condition and Transform stay
// nil when unset; they are never coerced to empty strings.
type Edge struct {
	ID           string  `json:"id" validate:"required,ident"`
	Source       string  `json:"source" validate:"required,ident"`
	Target       string  `json:"target" validate:"required,ident"`
	SourceOutput string  `json:"source_output"`
	TargetInput  string  `json:"target_input"`
	Condition    *string `json:"condition,omitempty"`
	Transform    *string `json:"transform,omitempty"`
}

// Encode renders the document as JSON.
func Encode(d *Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Decode parses a JSON document.
func Decode(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
