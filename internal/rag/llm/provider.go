package llm

import (
	"context"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

type Provider interface {
	Generate(ctx context.Context, query string, docContext []commonModels.SearchCandidate, messageHistory []string) (string, error)
}
