package catalog

// DefaultConfig returns the configuration a freshly instantiated node of
// kind k starts with. The returned map is owned by the caller.
func DefaultConfig(k Kind) map[string]any {
	switch k {
	case KindLLM:
		return map[string]any{
			"model":         "",
			"system_prompt": "",
			"temperature":   0.7,
			"max_tokens":    1000,
		}
	case KindRAGRetriever:
		return map[string]any{
			"knowledge_base": "",
			"top_k":          5,
		}
	case KindCondition:
		return map[string]any{
			"field_path":      "value",
			"condition_type":  "equals",
			"condition_value": "",
		}
	case KindCodeExecutor:
		return map[string]any{
			"language":         "python",
			"code":             "",
			"timeout_seconds":  30,
			"memory_limit_mb":  256,
			"max_stdout_bytes": 65536,
			"max_input_bytes":  65536,
			"max_result_bytes": 65536,
		}
	case KindHTTPRequest:
		return map[string]any{
			"url":             "",
			"method":          "GET",
			"timeout_seconds": 30,
		}
	case KindOutput:
		return map[string]any{
			"format":   "json",
			"template": "",
		}
	default:
		return map[string]any{}
	}
}
