package validation

import (
	"regexp"
	"strings"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/binding"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/scope"
)

// ConditionTypes enumerates the comparison operators a condition node
// supports. "truthy" tests the field value itself and needs no operand.
var ConditionTypes = map[string]bool{
	"equals":       true,
	"not_equals":   true,
	"contains":     true,
	"greater_than": true,
	"less_than":    true,
	"truthy":       true,
}

// OutputFormats enumerates the output node's rendering formats.
var OutputFormats = map[string]bool{
	"json":     true,
	"text":     true,
	"markdown": true,
	"html":     true,
}

// HTTPMethods enumerates the verbs an http_request node may use.
var HTTPMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
	"HEAD":   true,
}

// Admissible resource ranges for the code executor sandbox.
var codeLimits = []struct {
	key      string
	min, max float64
}{
	{"timeout_seconds", 1, 300},
	{"memory_limit_mb", 16, 512},
	{"max_stdout_bytes", 1, 1 << 20},
	{"max_input_bytes", 1, 1 << 20},
	{"max_result_bytes", 1, 1 << 20},
}

var (
	resultAssignRe = regexp.MustCompile(`(?m)^\s*result\s*=`)
	dunderAttrRe   = regexp.MustCompile(`\.\s*__\w+__`)
	importRe       = regexp.MustCompile(`(?m)^\s*(import\s+\w|from\s+\w+\s+import)`)
)

// ValidateNode applies the kind-keyed rule set to one node's config,
// its resolved bindings, and the reference scope visible at the node.
func ValidateNode(n *graph.Node, bindings map[string]binding.Binding, scopeExprs []string) Result {
	var res Result
	if strings.TrimSpace(n.Name) == "" {
		res.errorf("node name must not be empty")
	}

	switch n.Kind {
	case catalog.KindLLM:
		validateLLM(n, bindings, &res)
	case catalog.KindRAGRetriever:
		validateRetriever(n, &res)
	case catalog.KindCondition:
		validateCondition(n, &res)
	case catalog.KindCodeExecutor:
		validateCodeExecutor(n, &res)
	case catalog.KindOutput:
		validateOutput(n, &res)
	case catalog.KindHTTPRequest:
		validateHTTPRequest(n, &res)
	}

	checkReferences(n.Config, scopeExprs, &res)
	return res
}

func validateLLM(n *graph.Node, bindings map[string]binding.Binding, res *Result) {
	if temp, present, numeric := configNumber(n.Config, "temperature"); present {
		if !numeric {
			res.errorf("temperature must be a number")
		} else if temp < 0 || temp > 2 {
			res.errorf("temperature must be between 0 and 2")
		}
	}
	if mt, present, numeric := configNumber(n.Config, "max_tokens"); present {
		if !numeric || !isWhole(mt) || mt < 1 {
			res.errorf("max_tokens must be an integer >= 1")
		}
	}
	if configString(n.Config, "system_prompt") == "" && len(bindings) == 0 {
		res.warnf("no system prompt and no upstream binding; the prompt may be empty at run time")
	}
}

func validateRetriever(n *graph.Node, res *Result) {
	if configString(n.Config, "knowledge_base") == "" {
		res.errorf("knowledge_base must not be empty")
	}
	if topK, present, numeric := configNumber(n.Config, "top_k"); present {
		if !numeric || !isWhole(topK) || topK < 1 || topK > 50 {
			res.errorf("top_k must be an integer between 1 and 50")
		}
	}
}

func validateCondition(n *graph.Node, res *Result) {
	if configString(n.Config, "field_path") == "" {
		res.errorf("field_path must not be empty")
	}
	condType := configString(n.Config, "condition_type")
	if !ConditionTypes[condType] {
		res.errorf("condition_type %q is not supported", condType)
	}
	if configString(n.Config, "condition_value") == "" && condType != "truthy" && ConditionTypes[condType] {
		res.warnf("condition_value is empty; the comparison will match empty values only")
	}
}

func validateCodeExecutor(n *graph.Node, res *Result) {
	code := configString(n.Config, "code")
	if code == "" {
		res.errorf("code must not be empty")
	} else {
		if !resultAssignRe.MatchString(code) {
			res.warnf("code never assigns to 'result'; the node will produce no output")
		}
		if importRe.MatchString(code) || strings.Contains(code, "__import__") {
			res.warnf("sandbox violation: module imports are not allowed")
		}
		if dunderAttrRe.MatchString(code) {
			res.warnf("sandbox violation: dunder attribute access is not allowed")
		}
	}
	for _, lim := range codeLimits {
		v, present, numeric := configNumber(n.Config, lim.key)
		if !present {
			continue
		}
		if !numeric || v < lim.min || v > lim.max {
			res.errorf("%s must be between %g and %g", lim.key, lim.min, lim.max)
		}
	}
}

func validateOutput(n *graph.Node, res *Result) {
	format := configString(n.Config, "format")
	if !OutputFormats[format] {
		res.errorf("format %q is not supported", format)
	}
	template := configString(n.Config, "template")
	if template == "" {
		res.warnf("template is empty; output falls back to passthrough")
	} else if !strings.Contains(template, "{{") {
		res.warnf("template contains no variable markers; output will be static text")
	}
}

func validateHTTPRequest(n *graph.Node, res *Result) {
	if configString(n.Config, "url") == "" {
		res.errorf("url must not be empty")
	}
	method := configString(n.Config, "method")
	if !HTTPMethods[strings.ToUpper(method)] {
		res.errorf("method %q is not a supported HTTP verb", method)
	}
	if timeout, present, numeric := configNumber(n.Config, "timeout_seconds"); present {
		if !numeric || timeout <= 0 {
			res.errorf("timeout_seconds must be greater than 0")
		}
	}
	for _, key := range []string{"headers", "params"} {
		v, present := n.Config[key]
		if !present || v == nil {
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			res.errorf("%s must be a key-value map", key)
		}
	}
}

// implicitRoots are reference roots resolvable from dynamic run-time
// context even when not statically visible to the editor.
var implicitRoots = map[string]bool{
	"item":   true,
	"env":    true,
	"result": true,
}

var referenceRe = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// checkReferences scans every string-valued config field, including one
// nested override map level, for variable references whose root is not
// in scope. Findings are warnings, never errors: a reference may
// legitimately resolve at run time.
func checkReferences(cfg map[string]any, scopeExprs []string, res *Result) {
	roots := make(map[string]bool, len(scopeExprs))
	for _, expr := range scopeExprs {
		roots[scope.RootOf(expr)] = true
	}
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case string:
			for _, m := range referenceRe.FindAllStringSubmatch(val, -1) {
				root := scope.RootOf(m[1])
				if root == "" || roots[root] || implicitRoots[root] {
					continue
				}
				res.warnf("reference %q is not resolvable at this node", m[1])
			}
		case map[string]any:
			for _, nested := range val {
				walk(nested)
			}
		}
	}
	for _, v := range cfg {
		walk(v)
	}
}
