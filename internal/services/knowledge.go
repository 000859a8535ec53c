package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// KnowledgeService holds the optional CV-writing guide corpus. Analysis and
// enhancement prompts get enriched with retrieved snippets when it is
// configured; when it is absent or failing, prompts go out without context.
type KnowledgeService interface {
	InitCollection() error
	UpsertGuide(ctx context.Context, guideID string, topic string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, topic string, limit int) ([]SearchResult, error)
}

type SearchResult struct {
	ID    string
	Score float32
	Text  string
	Topic string
}

type knowledgeService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewKnowledgeService(urlStr, apiKey, collectionName string) (KnowledgeService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &knowledgeService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements KnowledgeService.
func (k *knowledgeService) InitCollection() error {
	ctx := context.Background()

	exists, err := k.client.CollectionExists(ctx, k.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = k.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: k.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     k.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", k.collectionName)
	return nil
}

// UpsertGuide implements KnowledgeService.
func (k *knowledgeService) UpsertGuide(ctx context.Context, guideID string, topic string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"guide_id": guideID,
			"topic":    topic,
			"text":     text,
		}),
	}

	_, err := k.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: k.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements KnowledgeService.
func (k *knowledgeService) SearchSimilar(ctx context.Context, queryEmbedding []float32, topic string, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if topic != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("topic", topic),
			},
		}
	}

	searchResult, err := k.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: k.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range searchResult {
		payload := point.Payload

		result := SearchResult{
			Score: point.Score,
		}

		if guideID, ok := payload["guide_id"]; ok {
			if val, ok := guideID.GetKind().(*qdrant.Value_StringValue); ok {
				result.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		if topicVal, ok := payload["topic"]; ok {
			if val, ok := topicVal.GetKind().(*qdrant.Value_StringValue); ok {
				result.Topic = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
