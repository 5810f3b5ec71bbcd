package processor

import (
	"sort"
	"strings"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

// Rerank recomputes relevance for raw vector-similarity candidates from
// lexical and metadata signals, drops everything under threshold, and sorts
// the survivors by enhanced score. The sort is stable: equal scores keep
// their original retrieval order.
func Rerank(candidates []commonModels.SearchCandidate, query string, threshold float64) []commonModels.SearchCandidate {
	ranked := make([]commonModels.SearchCandidate, 0, len(candidates))

	for _, candidate := range candidates {
		candidate.SemanticScore = semanticRelevance(candidate, query)
		candidate.EnhancedScore = candidate.RawScore * candidate.SemanticScore
		if candidate.EnhancedScore < threshold {
			continue
		}
		ranked = append(ranked, candidate)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EnhancedScore > ranked[j].EnhancedScore
	})
	return ranked
}

// semanticRelevance blends word overlap, key-phrase matches and content-type
// alignment. An exact substring match of the whole query short-circuits to
// 1.0 regardless of the blend.
func semanticRelevance(candidate commonModels.SearchCandidate, query string) float64 {
	content := strings.ToLower(candidate.Content)
	queryLower := strings.ToLower(query)

	if strings.Contains(content, queryLower) {
		return 1.0
	}

	queryWords := strings.Fields(queryLower)
	if len(queryWords) == 0 {
		return 0
	}
	contentWords := strings.Fields(content)

	matching := 0
	for _, queryWord := range queryWords {
		for _, contentWord := range contentWords {
			if strings.Contains(contentWord, queryWord) || strings.Contains(queryWord, contentWord) {
				matching++
				break
			}
		}
	}
	wordOverlap := float64(matching) / float64(len(queryWords))

	phraseMatches := 0
	for _, queryWord := range queryWords {
		for _, phrase := range candidate.Derived.KeyPhrases {
			if strings.Contains(phrase, queryWord) {
				phraseMatches++
				break
			}
		}
	}
	phraseScore := float64(phraseMatches) / float64(len(queryWords))

	typeRelevance := contentTypeRelevance(candidate.Derived.ContentType, query)

	return wordOverlap*config.WordOverlapWeight +
		phraseScore*config.PhraseMatchWeight +
		typeRelevance*config.TypeRelevanceWeight
}

// contentTypeRelevance is a lookup of how well a chunk's content type suits
// the query's phrasing. Constants were tuned empirically upstream.
func contentTypeRelevance(contentType commonModels.ContentType, query string) float64 {
	queryLower := strings.ToLower(query)

	switch contentType {
	case commonModels.ContentTypeHeader:
		if strings.Contains(queryLower, "what") || strings.Contains(queryLower, "how") {
			return 0.8
		}
		return 0.6
	case commonModels.ContentTypeList:
		if strings.Contains(queryLower, "list") || strings.Contains(queryLower, "steps") {
			return 0.9
		}
		return 0.5
	case commonModels.ContentTypeStatistics:
		if digitPattern.MatchString(query) {
			return 0.9
		}
		return 0.4
	case commonModels.ContentTypeTitle:
		return 0.7
	case commonModels.ContentTypeSummary:
		if strings.Contains(queryLower, "summary") || strings.Contains(queryLower, "overview") {
			return 0.8
		}
		return 0.6
	default:
		return 0.5
	}
}
