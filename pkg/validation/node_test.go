package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/binding"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/graph"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/scope"
)

func newNode(kind catalog.Kind, config map[string]any) *graph.Node {
	base := catalog.DefaultConfig(kind)
	for k, v := range config {
		base[k] = v
	}
	return &graph.Node{
		ID:      "n1",
		Kind:    kind,
		Name:    string(kind),
		Config:  base,
		Enabled: true,
	}
}

func noBindings() map[string]binding.Binding { return map[string]binding.Binding{} }

func TestValidateNode_EmptyName(t *testing.T) {
	n := newNode(catalog.KindInput, nil)
	n.Name = "   "
	res := ValidateNode(n, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "name")
}

func TestValidateNode_LLM(t *testing.T) {
	tests := []struct {
		name         string
		config       map[string]any
		bindings     map[string]binding.Binding
		wantErrors   int
		wantWarnings int
	}{
		{
			name:         "defaults with binding",
			config:       nil,
			bindings:     map[string]binding.Binding{"prompt": {EdgeID: "e1"}},
			wantErrors:   0,
			wantWarnings: 0,
		},
		{
			name:         "defaults without binding warn about empty prompt",
			config:       nil,
			bindings:     noBindings(),
			wantErrors:   0,
			wantWarnings: 1,
		},
		{
			name:         "system prompt suppresses the warning",
			config:       map[string]any{"system_prompt": "You are helpful."},
			bindings:     noBindings(),
			wantErrors:   0,
			wantWarnings: 0,
		},
		{
			name:       "temperature out of range",
			config:     map[string]any{"temperature": 2.5, "system_prompt": "x"},
			bindings:   noBindings(),
			wantErrors: 1,
		},
		{
			name:       "temperature non-numeric",
			config:     map[string]any{"temperature": "hot", "system_prompt": "x"},
			bindings:   noBindings(),
			wantErrors: 1,
		},
		{
			name:       "max_tokens fractional",
			config:     map[string]any{"max_tokens": 10.5, "system_prompt": "x"},
			bindings:   noBindings(),
			wantErrors: 1,
		},
		{
			name:       "max_tokens below one",
			config:     map[string]any{"max_tokens": 0, "system_prompt": "x"},
			bindings:   noBindings(),
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNode(catalog.KindLLM, tt.config)
			res := ValidateNode(n, tt.bindings, scope.Globals)
			assert.Len(t, res.Errors, tt.wantErrors, "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarnings, "warnings: %v", res.Warnings)
		})
	}
}

// Connecting an upstream prompt suppresses the empty-prompt warning even
// with no system prompt configured.
func TestValidateNode_LLM_WithUpstreamBinding(t *testing.T) {
	g := graph.New()
	in, _ := g.AddNode(catalog.KindInput, graph.Position{})
	llm, _ := g.AddNode(catalog.KindLLM, graph.Position{})
	_, err := g.AddEdge(in.ID, "prompt", llm.ID, "prompt")
	require.NoError(t, err)

	bindings, err := binding.For(g, llm.ID)
	require.NoError(t, err)
	scopeExprs, err := scope.For(g, llm.ID)
	require.NoError(t, err)

	res := ValidateNode(llm, bindings, scopeExprs)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateNode_Retriever(t *testing.T) {
	n := newNode(catalog.KindRAGRetriever, map[string]any{"knowledge_base": "docs", "top_k": 5})
	res := ValidateNode(n, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)

	n = newNode(catalog.KindRAGRetriever, map[string]any{"top_k": 99})
	res = ValidateNode(n, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 2, "missing knowledge base and top_k out of range")
}

func TestValidateNode_Condition(t *testing.T) {
	truthy := newNode(catalog.KindCondition, map[string]any{"condition_type": "truthy"})
	res := ValidateNode(truthy, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	equals := newNode(catalog.KindCondition, map[string]any{"condition_type": "equals"})
	res = ValidateNode(equals, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Warnings, 1, "empty condition_value warns for non-truthy comparison")

	bogus := newNode(catalog.KindCondition, map[string]any{"condition_type": "sounds_like"})
	res = ValidateNode(bogus, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 1)

	noField := newNode(catalog.KindCondition, map[string]any{"field_path": "", "condition_type": "truthy"})
	res = ValidateNode(noField, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 1)
}

func TestValidateNode_CodeExecutor(t *testing.T) {
	ok := newNode(catalog.KindCodeExecutor, map[string]any{"code": "result = input_data"})
	res := ValidateNode(ok, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	empty := newNode(catalog.KindCodeExecutor, nil)
	res = ValidateNode(empty, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 1)

	noResult := newNode(catalog.KindCodeExecutor, map[string]any{"code": "x = 1"})
	res = ValidateNode(noResult, noBindings(), scope.Globals)
	assert.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "result")

	imports := newNode(catalog.KindCodeExecutor, map[string]any{"code": "import os\nresult = os.name"})
	res = ValidateNode(imports, noBindings(), scope.Globals)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "sandbox")

	dunder := newNode(catalog.KindCodeExecutor, map[string]any{"code": "result = x.__class__"})
	res = ValidateNode(dunder, noBindings(), scope.Globals)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "dunder")

	limits := newNode(catalog.KindCodeExecutor, map[string]any{
		"code":            "result = 1",
		"timeout_seconds": 301,
		"memory_limit_mb": 8,
	})
	res = ValidateNode(limits, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 2)
}

func TestValidateNode_Output(t *testing.T) {
	ok := newNode(catalog.KindOutput, map[string]any{"format": "json", "template": "{{result}}"})
	res := ValidateNode(ok, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	badFormat := newNode(catalog.KindOutput, map[string]any{"format": "yaml", "template": "{{result}}"})
	res = ValidateNode(badFormat, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 1)

	emptyTemplate := newNode(catalog.KindOutput, nil)
	res = ValidateNode(emptyTemplate, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)
	assert.Len(t, res.Warnings, 1)

	static := newNode(catalog.KindOutput, map[string]any{"template": "just text"})
	res = ValidateNode(static, noBindings(), scope.Globals)
	assert.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "variable markers")
}

func TestValidateNode_HTTPRequest(t *testing.T) {
	ok := newNode(catalog.KindHTTPRequest, map[string]any{
		"url":     "https://api.example.com",
		"method":  "POST",
		"headers": map[string]any{"Authorization": "Bearer x"},
	})
	res := ValidateNode(ok, noBindings(), scope.Globals)
	assert.Empty(t, res.Errors)

	bad := newNode(catalog.KindHTTPRequest, map[string]any{
		"method":          "FETCH",
		"timeout_seconds": 0,
		"headers":         "not-a-map",
	})
	res = ValidateNode(bad, noBindings(), scope.Globals)
	assert.Len(t, res.Errors, 4, "url, method, timeout, headers: %v", res.Errors)
}

func TestValidateNode_ReferenceCheck(t *testing.T) {
	n := newNode(catalog.KindOutput, map[string]any{
		"format":   "text",
		"template": "{{response}} and {{nonsense.value}}",
	})
	res := ValidateNode(n, noBindings(), []string{"input", "response"})
	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1, "warnings: %v", res.Warnings)
	assert.Contains(t, res.Warnings[0], "nonsense.value")
}

func TestValidateNode_ReferenceCheck_ImplicitRoots(t *testing.T) {
	n := newNode(catalog.KindOutput, map[string]any{
		"format":   "text",
		"template": "{{result}} {{item.name}} {{env.HOME}}",
	})
	res := ValidateNode(n, noBindings(), scope.Globals)
	assert.Empty(t, res.Warnings, "implicit roots never warn")
}

func TestValidateNode_ReferenceCheck_NestedConfig(t *testing.T) {
	n := newNode(catalog.KindHTTPRequest, map[string]any{
		"url":    "https://api.example.com",
		"method": "GET",
		"headers": map[string]any{
			"X-Trace": "{{ghost_field}}",
		},
	})
	res := ValidateNode(n, noBindings(), scope.Globals)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "ghost_field")
}
