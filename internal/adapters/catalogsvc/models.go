// Package catalogsvc looks up the selection options the editor offers:
// which chat-capable models and which knowledge bases currently exist.
// It is an external collaborator of the authoring core; nothing here
// participates in graph logic.
package catalogsvc

import (
	"context"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ModelCatalog lists chat-capable models from an OpenAI-compatible API.
type ModelCatalog struct {
	client *openai.Client
}

// NewModelCatalog builds a catalog against the given endpoint. baseURL
// may be empty for the default OpenAI endpoint.
func NewModelCatalog(apiKey, baseURL string) *ModelCatalog {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &ModelCatalog{client: openai.NewClientWithConfig(cfg)}
}

// nonChatFragments mark model ids that cannot serve chat completion.
var nonChatFragments = []string{"embed", "whisper", "tts", "dall-e", "moderation", "audio"}

// ChatModels returns the sorted ids of models usable in an llm node.
func (c *ModelCatalog) ChatModels(ctx context.Context) ([]string, error) {
	resp, err := c.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range resp.Models {
		if isChatModel(m.ID) {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func isChatModel(id string) bool {
	lower := strings.ToLower(id)
	for _, frag := range nonChatFragments {
		if strings.Contains(lower, frag) {
			return false
		}
	}
	return true
}
