package processor

import (
	"math"
	"testing"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

func candidate(content string, rawScore float64) commonModels.SearchCandidate {
	return commonModels.SearchCandidate{
		Content:  content,
		Derived:  Classify(content),
		RawScore: rawScore,
	}
}

func TestRerank_ExactMatchShortCircuits(t *testing.T) {
	c := candidate("the quick brown fox jumps over the lazy dog near the river", 0.9)

	ranked := Rerank([]commonModels.SearchCandidate{c}, "quick brown fox", 0.1)
	if len(ranked) != 1 {
		t.Fatalf("Rerank() returned %d candidates; want 1", len(ranked))
	}
	if ranked[0].SemanticScore != 1.0 {
		t.Errorf("SemanticScore = %v; want 1.0 for an exact substring match", ranked[0].SemanticScore)
	}
	if math.Abs(ranked[0].EnhancedScore-0.9) > 1e-9 {
		t.Errorf("EnhancedScore = %v; want rawScore 0.9 unchanged", ranked[0].EnhancedScore)
	}
}

func TestRerank_DropsBelowThreshold(t *testing.T) {
	strong := candidate("deployment guide covering the deployment of services end to end", 0.9)
	weak := candidate("an unrelated paragraph about gardening and the weather outside", 0.2)

	ranked := Rerank([]commonModels.SearchCandidate{weak, strong}, "deployment of services", 0.5)
	if len(ranked) != 1 {
		t.Fatalf("Rerank() returned %d candidates; want 1 survivor", len(ranked))
	}
	if ranked[0].Content != strong.Content {
		t.Errorf("surviving candidate = %q; want the strong match", ranked[0].Content)
	}
}

func TestRerank_SortsByEnhancedScore(t *testing.T) {
	low := candidate("the release and deployment of services happens on fridays only", 0.5)
	high := candidate("full guide to the deployment of services with rollback steps", 0.95)

	ranked := Rerank([]commonModels.SearchCandidate{low, high}, "deployment of services", 0.1)
	if len(ranked) != 2 {
		t.Fatalf("Rerank() returned %d candidates; want 2", len(ranked))
	}
	if ranked[0].EnhancedScore < ranked[1].EnhancedScore {
		t.Errorf("ranking not descending: %v then %v", ranked[0].EnhancedScore, ranked[1].EnhancedScore)
	}
	if ranked[0].Content != high.Content {
		t.Errorf("top candidate = %q; want the high raw score match", ranked[0].Content)
	}
}

func TestRerank_StableForEqualScores(t *testing.T) {
	first := candidate("identical wording in both of these stored candidate chunks", 0.8)
	second := candidate("identical wording in both of these stored candidate chunks", 0.8)
	second.Source.ChunkIndex = 1

	ranked := Rerank([]commonModels.SearchCandidate{first, second}, "identical wording", 0.1)
	if len(ranked) != 2 {
		t.Fatalf("Rerank() returned %d candidates; want 2", len(ranked))
	}
	if ranked[0].Source.ChunkIndex != 0 || ranked[1].Source.ChunkIndex != 1 {
		t.Errorf("equal scores did not keep retrieval order: got indexes %d, %d",
			ranked[0].Source.ChunkIndex, ranked[1].Source.ChunkIndex)
	}
}

func TestRerank_EmptyInput(t *testing.T) {
	if ranked := Rerank(nil, "anything", 0.5); len(ranked) != 0 {
		t.Errorf("Rerank(nil) returned %d candidates; want 0", len(ranked))
	}
}

func TestContentTypeRelevance(t *testing.T) {
	tests := []struct {
		name        string
		contentType commonModels.ContentType
		query       string
		expected    float64
	}{
		{"list for steps query", commonModels.ContentTypeList, "steps to deploy", 0.9},
		{"list for unrelated query", commonModels.ContentTypeList, "tell me more", 0.5},
		{"statistics for numeric query", commonModels.ContentTypeStatistics, "revenue in 2024", 0.9},
		{"statistics without numbers", commonModels.ContentTypeStatistics, "revenue trends", 0.4},
		{"header for what query", commonModels.ContentTypeHeader, "what is covered", 0.8},
		{"title is fixed", commonModels.ContentTypeTitle, "anything at all", 0.7},
		{"plain content baseline", commonModels.ContentTypeContent, "anything at all", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentTypeRelevance(tt.contentType, tt.query); got != tt.expected {
				t.Errorf("contentTypeRelevance(%v, %q) = %v; want %v", tt.contentType, tt.query, got, tt.expected)
			}
		})
	}
}
