package catalogsvc

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// KnowledgeBaseCatalog lists the knowledge bases a rag_retriever node
// may target, read from the platform database.
type KnowledgeBaseCatalog struct {
	pool *pgxpool.Pool
}

// NewKnowledgeBaseCatalog builds a catalog over the given pool.
func NewKnowledgeBaseCatalog(pool *pgxpool.Pool) *KnowledgeBaseCatalog {
	return &KnowledgeBaseCatalog{pool: pool}
}

// KnowledgeBases returns the names of every available knowledge base.
func (c *KnowledgeBaseCatalog) KnowledgeBases(ctx context.Context) ([]string, error) {
	rows, err := c.pool.Query(ctx, "SELECT name FROM knowledge_bases ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list knowledge bases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan knowledge base row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// StaticCatalog serves fixed option lists; used when the editor runs
// without platform services.
type StaticCatalog struct {
	Models []string
	Bases  []string
}

func (c *StaticCatalog) ChatModels(ctx context.Context) ([]string, error) {
	return append([]string(nil), c.Models...), nil
}

func (c *StaticCatalog) KnowledgeBases(ctx context.Context) ([]string, error) {
	return append([]string(nil), c.Bases...), nil
}
