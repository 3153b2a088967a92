package graph

// Edge connects a source node's output port to a target node's input
// port. Condition and Transform are optional expressions; nil means the
// author never set them, which is preserved through serialization (nil is
// never coerced to an empty string).
type Edge struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceOutput string  `json:"source_output"`
	TargetInput  string  `json:"target_input"`
	Condition    *string `json:"condition,omitempty"`
	Transform    *string `json:"transform,omitempty"`
}

// Clone returns a deep copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Condition != nil {
		c := *e.Condition
		cp.Condition = &c
	}
	if e.Transform != nil {
		t := *e.Transform
		cp.Transform = &t
	}
	return &cp
}

// EdgePatch describes a partial edge update. Nil fields are left
// untouched; ClearCondition/ClearTransform remove the expression.
type EdgePatch struct {
	SourceOutput   *string
	TargetInput    *string
	Condition      *string
	Transform      *string
	ClearCondition bool
	ClearTransform bool
}
