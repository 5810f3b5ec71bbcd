package googleEmbedding

import (
	"context"
	"errors"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/customHttpClient"
	"github.com/docurag/DocuRAG/pkg/logger_i"
	"google.golang.org/genai"
)

// Client wraps the Gemini embedding API. It is constructed explicitly and
// passed to whoever needs it - no package-level instance, so tests and
// concurrent runs never share state.
type Client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

func NewGoogleEmbedder(ctx context.Context, modelName string, apikey string) (*Client, error) {
	logger := logger_i.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, HTTPClient: customHttpClient.New()})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return nil, err
	}
	if c == nil {
		return nil, errors.New("nil genai client")
	}

	logger.Info("Google Embedding client created", "model", modelName)
	return &Client{
		genAi:  c,
		model:  modelName,
		logger: logger,
	}, nil
}

func (c *Client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	dimension := config.EmbeddingOutputDimensionality
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query), &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_QUERY",
	})
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	dimension := config.EmbeddingOutputDimensionality
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}
