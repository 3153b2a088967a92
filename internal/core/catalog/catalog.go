// Package catalog is the single source of truth for node kinds and the
// ports each kind declares. Every other component (binding resolution,
// scope building, validation, layout) consults this table; none of them
// may carry a divergent copy.
package catalog

// Kind is the fixed category of a processing node.
type Kind string

const (
	KindInput        Kind = "input"
	KindLLM          Kind = "llm"
	KindRAGRetriever Kind = "rag_retriever"
	KindHTTPRequest  Kind = "http_request"
	KindCondition    Kind = "condition"
	KindCodeExecutor Kind = "code_executor"
	KindOutput       Kind = "output"
)

// Shape describes the semantic value shape carried by a port.
type Shape string

const (
	ShapeScalar Shape = "scalar"
	ShapeText   Shape = "text"
	ShapeObject Shape = "object"
	ShapeList   Shape = "list"
)

// Port is a named input or output slot declared for a node kind.
type Port struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
}

// kindPorts holds the ordered input/output declarations for one kind.
type kindPorts struct {
	inputs  []Port
	outputs []Port
}

// ports is the catalog table. Order matters: binding resolution and the
// editor both present ports in declaration order.
var ports = map[Kind]kindPorts{
	KindInput: {
		// Graph source: no inputs.
		outputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "prompt", Shape: ShapeText},
			{Name: "query", Shape: ShapeText},
		},
	},
	KindLLM: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "prompt", Shape: ShapeText},
			{Name: "documents", Shape: ShapeList},
		},
		outputs: []Port{
			{Name: "response", Shape: ShapeText},
			{Name: "usage", Shape: ShapeObject},
		},
	},
	KindRAGRetriever: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "query", Shape: ShapeText},
		},
		outputs: []Port{
			{Name: "documents", Shape: ShapeList},
			{Name: "query", Shape: ShapeText},
		},
	},
	KindHTTPRequest: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "params", Shape: ShapeObject},
		},
		outputs: []Port{
			{Name: "response", Shape: ShapeObject},
			{Name: "status_code", Shape: ShapeScalar},
			{Name: "headers", Shape: ShapeObject},
		},
	},
	KindCondition: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "value", Shape: ShapeScalar},
		},
		// The true/false branch selectors are not listed here: they are
		// virtual, resolved at connect time into a condition expression on
		// the edge. The real passthrough ports are below.
		outputs: []Port{
			{Name: "result", Shape: ShapeObject},
			{Name: "value", Shape: ShapeScalar},
		},
	},
	KindCodeExecutor: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
		},
		outputs: []Port{
			{Name: "result", Shape: ShapeObject},
			{Name: "execution_output", Shape: ShapeText},
		},
	},
	KindOutput: {
		inputs: []Port{
			{Name: "data", Shape: ShapeObject},
			{Name: "result", Shape: ShapeObject},
		},
		// Graph sink: no outputs.
	},
}

// kindOrder fixes the presentation order of kinds.
var kindOrder = []Kind{
	KindInput,
	KindLLM,
	KindRAGRetriever,
	KindHTTPRequest,
	KindCondition,
	KindCodeExecutor,
	KindOutput,
}

// Kinds returns every known node kind in presentation order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// IsKnown reports whether k is a declared node kind.
func IsKnown(k Kind) bool {
	_, ok := ports[k]
	return ok
}

// Inputs returns the ordered input ports declared for k. Unknown kinds
// yield an empty list: legacy documents may carry kinds this build does
// not know.
func Inputs(k Kind) []Port {
	p := ports[k].inputs
	out := make([]Port, len(p))
	copy(out, p)
	return out
}

// Outputs returns the ordered output ports declared for k.
func Outputs(k Kind) []Port {
	p := ports[k].outputs
	out := make([]Port, len(p))
	copy(out, p)
	return out
}

// InputNames returns the ordered input port names for k.
func InputNames(k Kind) []string {
	return portNames(ports[k].inputs)
}

// OutputNames returns the ordered output port names for k.
func OutputNames(k Kind) []string {
	return portNames(ports[k].outputs)
}

// HasInput reports whether k declares an input port named name.
func HasInput(k Kind, name string) bool {
	return hasPort(ports[k].inputs, name)
}

// HasOutput reports whether k declares an output port named name.
func HasOutput(k Kind, name string) bool {
	return hasPort(ports[k].outputs, name)
}

func portNames(p []Port) []string {
	names := make([]string, len(p))
	for i, port := range p {
		names[i] = port.Name
	}
	return names
}

func hasPort(p []Port, name string) bool {
	for _, port := range p {
		if port.Name == name {
			return true
		}
	}
	return false
}
