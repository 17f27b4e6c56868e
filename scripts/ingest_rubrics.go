package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/config"
	"github.com/ShrijalShrestha/Mockly-Ai-based-interviewing-system/internal/services"
)

// Ingests interviewer rubric / question-bank PDFs into the qdrant collection
// so question generation can retrieve them as prompt context.
func main() {
	dir := flag.String("dir", "./reference_docs", "directory of rubric PDFs to ingest")
	flag.Parse()

	log.Println("🚀 Starting rubric ingestion...")

	cfg := config.Load()

	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL must be set to ingest rubrics")
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.AgentTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("❌ Failed to read directory %s: %v", *dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		docID := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		log.Printf("\n📄 Processing: %s", entry.Name())

		text, err := pdfParser.ExtractText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			err = qdrantService.UpsertChunk(ctx, services.ContextChunk{
				DocID:   fmt.Sprintf("%s_chunk_%d", docID, i),
				DocType: services.DocTypeRubric,
				Text:    chunk,
			}, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   📊 Stored %d/%d chunks", stored, len(chunks))
		if stored > 0 {
			successCount++
		} else {
			failCount++
		}
	}

	log.Printf("\n✅ Ingestion complete: %d succeeded, %d failed\n", successCount, failCount)
}
