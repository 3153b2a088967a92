// Package main provides the canvas CLI: validate and lay out workflow
// documents from the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/chongliujia/ragJ-platform-sub002/internal/core/layout"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/validation"
	"github.com/chongliujia/ragJ-platform-sub002/pkg/wire"
)

// Version information set during build
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	_ = godotenv.Load()

	var (
		file        = flag.String("file", "", "workflow document to read (JSON)")
		applyLayout = flag.Bool("layout", false, "recompute node positions and rewrite the file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("canvas %s (commit: %s)\n", Version, Commit)
		return
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: canvas -file workflow.json [-layout]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fatal(err)
	}
	doc, err := wire.Decode(data)
	if err != nil {
		fatal(fmt.Errorf("parse document: %w", err))
	}
	if err := validation.ValidateDocument(doc); err != nil {
		fatal(err)
	}

	g := wire.FromWire(doc)
	perNode, structural := validation.ValidateAll(g)

	blocking := len(structural.Errors)
	for _, w := range structural.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range structural.Errors {
		fmt.Printf("error: %s\n", e)
	}
	for _, n := range g.Nodes {
		res := perNode[n.ID]
		for _, w := range res.Warnings {
			fmt.Printf("warning: node %s (%s): %s\n", n.Name, n.ID, w)
		}
		for _, e := range res.Errors {
			fmt.Printf("error: node %s (%s): %s\n", n.Name, n.ID, e)
		}
		blocking += len(res.Errors)
	}

	if *applyLayout {
		positions := layout.Plan(g)
		for _, n := range g.Nodes {
			n.Position = positions[n.ID]
		}
		out, err := wire.Encode(wire.ToWire(g))
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(*file, out, 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("layout written to %s\n", *file)
	}

	if blocking > 0 {
		fmt.Printf("%d blocking error(s)\n", blocking)
		os.Exit(1)
	}
	fmt.Println("ok")
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "canvas: %v\n", err)
	os.Exit(1)
}
