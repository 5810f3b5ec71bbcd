package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/customHttpClient"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/internal/rag/llm"
	"github.com/docurag/DocuRAG/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewGeminiClient(ctx context.Context, modelName string, apikey string) (llm.Provider, error) {
	logger := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey, HTTPClient: customHttpClient.New()})
	if err != nil {
		logger.Error("Error creating Gemini client", "err", err)
		return nil, err
	}
	if c == nil {
		return nil, errors.New("nil genai client")
	}

	logger.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: logger}, nil
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, docContext []commonModels.SearchCandidate, messageHistory []string) (string, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.ModelContext},
		},
	}

	userPrompt := fmt.Sprintf(
		"DOCUMENT CONTEXT:\n%s\n\nCONVERSATION HISTORY:\n%s\n\nCURRENT USER QUERY: %s",
		formatContext(docContext),
		formatHistory(messageHistory),
		userQuery,
	)

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		Temperature:       genai.Ptr(config.ModelTemperature),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(userPrompt), contentConfig)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// formatContext renders each retrieved chunk with its derived metadata so
// the model can weigh content type and relevance, mirroring how the chunks
// were scored at retrieval.
func formatContext(docContext []commonModels.SearchCandidate) string {
	if len(docContext) == 0 {
		return "No relevant documents found."
	}

	blocks := make([]string, 0, len(docContext))
	for i, doc := range docContext {
		blocks = append(blocks, fmt.Sprintf(
			"[Document %d - %s]:\nContent: %s\nType: %s\nComplexity: %s\nKey Topics: %s\nRelevance Score: %.3f",
			i+1,
			strings.ToUpper(string(doc.Derived.ContentType)),
			doc.Content,
			doc.Derived.ContentType,
			doc.Derived.Complexity,
			strings.Join(doc.Derived.KeyPhrases, ", "),
			doc.EnhancedScore,
		))
	}
	return strings.Join(blocks, "\n\n")
}

func formatHistory(messageHistory []string) string {
	if len(messageHistory) == 0 {
		return "No previous conversation history."
	}
	return strings.Join(messageHistory, "\n")
}
