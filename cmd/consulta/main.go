// Copyright 2025 the consulta authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/agc2020/consulta"
	"github.com/agc2020/consulta/catalog"
	"github.com/agc2020/consulta/core"
	"github.com/agc2020/consulta/deepsearch"
	"github.com/agc2020/consulta/ingest"
)

func main() {
	app := &cli.App{
		Name:  "consulta",
		Usage: "Search and filter the legal act catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "Extract the act records from a catalog page",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the catalog HTML page",
						Required: true,
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Fuzzy-search and filter the catalog page",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to the catalog HTML page",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text query",
					},
					&cli.StringSliceFlag{
						Name:  "orgao",
						Usage: "Filter by issuing body (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "tipo",
						Usage: "Filter by act type (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "ano",
						Usage: "Filter by year (repeatable)",
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Build the deep-search index from published act pages",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the deep-index database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "pages",
						Aliases:  []string{"p"},
						Usage:    "Directory holding the per-act HTML pages",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent indexing workers",
					},
				},
			},
			{
				Name:   "deep",
				Usage:  "Query the deep-search index",
				Action: deepCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the deep-index database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free-text query",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "orgao",
						Usage: "Filter by issuing body (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "tipo",
						Usage: "Filter by act type (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "ano",
						Usage: "Filter by year (repeatable)",
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of hits to print",
						Value: 10,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Print deep-index statistics",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the deep-index database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractCommand(c *cli.Context) error {
	f, err := os.Open(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to open catalog page: %w", err)
	}
	defer f.Close()

	page, records, err := catalog.Extract(f)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("Extracted %d records in %d sections\n", page.Total(), len(page.Groups))
	for _, r := range records {
		fmt.Printf("%4d  %-20s %-6s %-10s %s\n",
			r.StableIndex, r.Type, r.Year, r.IssuingBody, r.Title)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	sess, err := consulta.NewSession(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	defer sess.Close()

	for category, values := range categoryFlags(c) {
		for _, value := range values {
			if _, err := sess.Toggle(ctx, category, value); err != nil {
				return err
			}
		}
	}
	sess.SetQuery(ctx, c.String("query"))
	sess.FlushQuery()

	records := sess.Records()
	for _, m := range sess.Ranked() {
		r := records[m.StableIndex]
		fmt.Printf("%-20s %-6s %s\n", r.Type, r.Year, r.Title)
	}
	fmt.Println(sess.Summary().Message)
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := consulta.OpenStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	var opts []ingest.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingest.WithPoolSize(size))
	}
	pipeline, err := store.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	indexed, err := pipeline.IngestDirectory(ctx, c.String("pages"))
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	stats, err := pipeline.Finalize(ctx)
	if err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}

	fmt.Printf("Indexed %d pages: %d documents, %d terms, %d tokens\n",
		indexed, stats.DocCount, stats.TermCount, stats.TotalLength)
	return nil
}

func deepCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := consulta.OpenStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	index, err := store.NewDeepIndex()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if err := index.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize index: %w", err)
	}

	filters := deepsearch.Filters{}
	for category, values := range categoryFlags(c) {
		if len(values) > 0 {
			filters[category] = values
		}
	}

	resp, err := index.Search(ctx, c.String("query"), filters, c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", resp.Total)
	for i, hit := range resp.Hits {
		fmt.Printf("%d: %s (%s)[%0.3f]\n", i, hit.Document.Title, hit.Document.Slug, hit.Score)
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	store, err := consulta.OpenStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	stats, err := store.PostingRepository().GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read statistics: %w", err)
	}

	fmt.Printf("Documents: %d\n", stats.DocCount)
	fmt.Printf("Terms:     %d\n", stats.TermCount)
	fmt.Printf("Tokens:    %d\n", stats.TotalLength)
	return nil
}

// categoryFlags collects the repeatable filter flags shared by the search
// and deep commands.
func categoryFlags(c *cli.Context) map[string][]string {
	return map[string][]string{
		core.CategoryOrgao: c.StringSlice("orgao"),
		core.CategoryTipo:  c.StringSlice("tipo"),
		core.CategoryAno:   c.StringSlice("ano"),
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
