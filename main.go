package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rishav781/Test-Agent/internal/config"
	"github.com/rishav781/Test-Agent/internal/generator"
	"github.com/rishav781/Test-Agent/internal/llm"
	"github.com/rishav781/Test-Agent/internal/logger"
	"github.com/rishav781/Test-Agent/internal/parser"
	"github.com/rishav781/Test-Agent/internal/server"
	"github.com/rishav781/Test-Agent/internal/types"
	"github.com/rishav781/Test-Agent/internal/website"
)

func main() {
	swaggerURL := flag.String("url", "", "Fetch the OpenAPI doc of a live service and generate test cases once")
	outputPath := flag.String("output", "", "Write one-shot generation output to this file instead of stdout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		}
		os.Exit(1)
	}

	appLogger, err := logger.NewLogger(cfg.Logging.Dir)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Close()

	client, err := llm.NewClient(&cfg.LLM, appLogger)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	gen := generator.New(client, cfg, appLogger)

	if *swaggerURL != "" {
		if err := generateFromURL(gen, *swaggerURL, *outputPath); err != nil {
			log.Fatalf("Failed to generate test cases: %v", err)
		}
		return
	}

	analyzer := website.NewAnalyzer(client, cfg, appLogger)
	srv := server.New(cfg, appLogger, gen, analyzer)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// generateFromURL runs the full two-phase workflow against a live service's
// OpenAPI document and writes the result as JSON.
func generateFromURL(gen *generator.Generator, baseURL, outputPath string) error {
	doc, err := parser.NewFetcher(baseURL).Fetch()
	if err != nil {
		return err
	}
	fmt.Printf("Found %d endpoints to test\n", len(doc.Endpoints))

	ctx := context.Background()
	discovery := gen.GenerateScenarios(ctx, generator.Input{
		Document:      doc,
		DocumentKind:  types.KindSwagger,
		ScenariosOnly: true,
	})
	if discovery.Error != "" {
		return fmt.Errorf("scenario generation failed: %s", discovery.Error)
	}

	expansion := gen.ExpandScenarios(ctx, discovery.Scenarios, types.KindSwagger)

	data, err := json.MarshalIndent(expansion, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Test cases written to %s\n", outputPath)
	return nil
}
