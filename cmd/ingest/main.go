package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/qusailover-design/cv-doctor/internal/config"
	"github.com/qusailover-design/cv-doctor/internal/services"
)

// Ingests CV-writing guidance documents into the Qdrant guide corpus so the
// API can enrich analysis and enhancement prompts with retrieved context.
func main() {
	log.Println("🚀 Starting guide ingestion...")

	// Load configuration
	cfg := config.Load()

	if !cfg.Qdrant.Enabled {
		log.Fatal("❌ QDRANT_URL is not set; nothing to ingest into")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	knowledgeService, err := services.NewKnowledgeService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := knowledgeService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewTextExtractor()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	guides := []struct {
		Path  string
		Topic string
		Name  string
	}{
		{
			Path:  "./reference_docs/cv_writing_guide.pdf",
			Topic: "cv_guide",
			Name:  "CV Writing Guide",
		},
		{
			Path:  "./reference_docs/ats_best_practices.pdf",
			Topic: "cv_guide",
			Name:  "ATS Best Practices",
		},
		{
			Path:  "./reference_docs/action_verbs.pdf",
			Topic: "cv_guide",
			Name:  "Action Verbs and Quantified Achievements",
		},
	}

	successCount := 0
	failCount := 0

	for _, guide := range guides {
		log.Printf("\n📄 Processing: %s", guide.Name)
		log.Printf("   Path: %s", guide.Path)
		log.Printf("   Topic: %s", guide.Topic)

		data, err := os.ReadFile(guide.Path)
		if err != nil {
			log.Printf("   ⚠️  File not readable, skipping: %v", err)
			failCount++
			continue
		}

		// Extract text
		log.Printf("   📖 Extracting text...")
		text, err := extractor.ExtractText(data, guide.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		text = services.CleanText(text)
		if text == "" {
			log.Printf("   ❌ No text content extracted")
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			guideID := fmt.Sprintf("%s_chunk_%d", guide.Topic, i)

			err = knowledgeService.UpsertGuide(ctx, guideID, guide.Topic, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", guide.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
