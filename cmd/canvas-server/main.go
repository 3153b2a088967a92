// Package main runs the workflow authoring HTTP facade: document CRUD
// against the configured store plus validation, layout, and autocomplete
// endpoints. All graph logic stays in the core packages; handlers only
// translate between HTTP and the editor operations.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/chongliujia/ragJ-platform-sub002/internal/adapters/catalogsvc"
	"github.com/chongliujia/ragJ-platform-sub002/internal/adapters/repository/memory"
	"github.com/chongliujia/ragJ-platform-sub002/internal/adapters/repository/postgres"
	"github.com/chongliujia/ragJ-platform-sub002/internal/adapters/repository/sqlite"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/layout"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/scope"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/store"
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/template"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/validation"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

func main() {
	_ = godotenv.Load()

	st, pool, cleanup, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	models, knowledgeBases := openCatalogs(pool)

	app := fiber.New()

	app.Get("/api/v1/catalog/kinds", func(c fiber.Ctx) error {
		kinds := make([]fiber.Map, 0)
		for _, k := range catalog.Kinds() {
			kinds = append(kinds, fiber.Map{
				"kind":    k,
				"inputs":  catalog.Inputs(k),
				"outputs": catalog.Outputs(k),
				"config":  catalog.DefaultConfig(k),
			})
		}
		return c.JSON(kinds)
	})

	app.Get("/api/v1/catalog/models", func(c fiber.Ctx) error {
		ids, err := models.ChatModels(c.Context())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"models": ids})
	})

	app.Get("/api/v1/catalog/knowledge-bases", func(c fiber.Ctx) error {
		names, err := knowledgeBases.KnowledgeBases(c.Context())
		if err != nil {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"knowledge_bases": names})
	})

	app.Get("/api/v1/workflows", func(c fiber.Ctx) error {
		entries, err := st.List(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(entries)
	})

	app.Get("/api/v1/workflows/:id", func(c fiber.Ctx) error {
		doc, err := st.Get(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrWorkflowNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(doc)
	})

	app.Put("/api/v1/workflows/:id", func(c fiber.Ctx) error {
		var doc wire.Document
		if err := c.Bind().JSON(&doc); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := validation.ValidateDocument(&doc); err != nil {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err := st.Save(c.Context(), c.Params("id"), &doc); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Delete("/api/v1/workflows/:id", func(c fiber.Ctx) error {
		err := st.Delete(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrWorkflowNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "workflow not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	app.Post("/api/v1/workflows/validate", func(c fiber.Ctx) error {
		var doc wire.Document
		if err := c.Bind().JSON(&doc); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := validation.ValidateDocument(&doc); err != nil {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		g := wire.FromWire(&doc)
		perNode, structural := validation.ValidateAll(g)
		return c.JSON(fiber.Map{"graph": structural, "nodes": perNode})
	})

	app.Post("/api/v1/workflows/layout", func(c fiber.Ctx) error {
		var doc wire.Document
		if err := c.Bind().JSON(&doc); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		g := wire.FromWire(&doc)
		positions := layout.Plan(g)
		for _, n := range g.Nodes {
			n.Position = positions[n.ID]
		}
		return c.JSON(wire.ToWire(g))
	})

	app.Post("/api/v1/workflows/suggest", func(c fiber.Ctx) error {
		var req struct {
			Document wire.Document `json:"document"`
			NodeID   string        `json:"node_id"`
			Buffer   string        `json:"buffer"`
			Cursor   int           `json:"cursor"`
		}
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		g := wire.FromWire(&req.Document)
		tctx, ok := template.ContextAt(req.Buffer, req.Cursor)
		if !ok {
			return c.JSON(fiber.Map{"candidates": []string{}})
		}
		scopeExprs, err := scope.For(g, req.NodeID)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		return c.JSON(fiber.Map{
			"context":    tctx,
			"candidates": template.SuggestionsFor(scopeExprs, tctx.Query),
		})
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	log.Fatal(app.Listen(addr))
}

// openStore picks the store from the environment: DATABASE_URL wins,
// then SQLITE_PATH, then an in-memory store for local editing. The pgx
// pool is returned alongside the store so collaborators can share it.
func openStore() (store.Store, *pgxpool.Pool, func(), error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			return nil, nil, nil, err
		}
		st := postgres.New(pool)
		if err := st.CreateTables(context.Background()); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return st, pool, pool.Close, nil
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		st, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, nil, err
		}
		return st, nil, func() { st.Close() }, nil
	}
	return memory.New(), nil, func() {}, nil
}

type modelSource interface {
	ChatModels(ctx context.Context) ([]string, error)
}

type knowledgeBaseSource interface {
	KnowledgeBases(ctx context.Context) ([]string, error)
}

// openCatalogs picks the option-catalog collaborators from the
// environment: OPENAI_API_KEY (plus optional OPENAI_BASE_URL) turns on
// live model listing, a Postgres pool turns on knowledge-base listing,
// and anything unconfigured falls back to the static lists in
// CHAT_MODELS / KNOWLEDGE_BASES.
func openCatalogs(pool *pgxpool.Pool) (modelSource, knowledgeBaseSource) {
	static := &catalogsvc.StaticCatalog{
		Models: splitList(os.Getenv("CHAT_MODELS")),
		Bases:  splitList(os.Getenv("KNOWLEDGE_BASES")),
	}
	var models modelSource = static
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		models = catalogsvc.NewModelCatalog(key, os.Getenv("OPENAI_BASE_URL"))
	}
	var bases knowledgeBaseSource = static
	if pool != nil {
		bases = catalogsvc.NewKnowledgeBaseCatalog(pool)
	}
	return models, bases
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
