package processor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

var (
	allCapsHeaderPattern  = regexp.MustCompile(`(?m)^[A-Z][A-Z\s]{2,}$`)
	numberedHeaderPattern = regexp.MustCompile(`(?m)^\d+\.\s+[A-Z]`)
	titleCaseLinePattern  = regexp.MustCompile(`(?m)^[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`)
	markdownHeaderPattern = regexp.MustCompile(`(?m)^#{1,6}\s`)

	bulletListPattern   = regexp.MustCompile(`(?m)^\s*[-•*]\s+`)
	numberedListPattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	letteredListPattern = regexp.MustCompile(`(?m)^\s*[a-z]\)\s+`)

	digitPattern      = regexp.MustCompile(`\d+`)
	percentagePattern = regexp.MustCompile(`\d+%|\d+\.\d+%`)

	// titleOnlyPattern must match the whole content, not just one line of it
	titleOnlyPattern = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`)

	sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	punctuationPattern   = regexp.MustCompile(`[^\w\s]`)
)

func containsHeaders(text string) bool {
	return allCapsHeaderPattern.MatchString(text) ||
		numberedHeaderPattern.MatchString(text) ||
		titleCaseLinePattern.MatchString(text) ||
		markdownHeaderPattern.MatchString(text)
}

func containsLists(text string) bool {
	return bulletListPattern.MatchString(text) ||
		numberedListPattern.MatchString(text) ||
		letteredListPattern.MatchString(text)
}

func containsNumbers(text string) bool {
	return digitPattern.MatchString(text)
}

func assessComplexity(text string) commonModels.Complexity {
	words := len(strings.Fields(text))
	sentences := len(sentenceSplitPattern.Split(text, -1))
	if sentences == 0 {
		sentences = 1
	}
	avgWordsPerSentence := float64(words) / float64(sentences)

	switch {
	case avgWordsPerSentence > 25 || words > 200:
		return commonModels.ComplexityHigh
	case avgWordsPerSentence > 15 || words > 100:
		return commonModels.ComplexityMedium
	default:
		return commonModels.ComplexityLow
	}
}

// contentTypeRules is an ordered first-match-wins cascade. The order is a
// contract: a short all-caps line is a header, never a summary, because the
// header rule fires first. Do not reorder.
var contentTypeRules = []struct {
	matches func(string) bool
	label   commonModels.ContentType
}{
	{containsHeaders, commonModels.ContentTypeHeader},
	{containsLists, commonModels.ContentTypeList},
	{percentagePattern.MatchString, commonModels.ContentTypeStatistics},
	{titleOnlyPattern.MatchString, commonModels.ContentTypeTitle},
	{func(text string) bool { return len(text) < 100 }, commonModels.ContentTypeSummary},
}

func detectContentType(text string) commonModels.ContentType {
	for _, rule := range contentTypeRules {
		if rule.matches(text) {
			return rule.label
		}
	}
	return commonModels.ContentTypeContent
}

// extractKeyPhrases returns the most frequent interesting tokens, most
// frequent first. Ties keep first-occurrence order so the output is
// deterministic.
func extractKeyPhrases(text string) []string {
	cleaned := punctuationPattern.ReplaceAllString(strings.ToLower(text), "")

	frequency := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) < config.KeyPhraseMinWordSize {
			continue
		}
		if frequency[word] == 0 {
			order = append(order, word)
		}
		frequency[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if len(order) > config.KeyPhraseLimit {
		order = order[:config.KeyPhraseLimit]
	}
	return order
}

// Classify derives per-chunk metadata from content alone. Pure function:
// identical input yields identical metadata, including key phrase order.
// ProcessedAt is stamped by the pipeline, not here, to keep this pure.
func Classify(content string) commonModels.DerivedMetadata {
	return commonModels.DerivedMetadata{
		ContentType: detectContentType(content),
		Complexity:  assessComplexity(content),
		HasHeaders:  containsHeaders(content),
		HasLists:    containsLists(content),
		HasNumbers:  containsNumbers(content),
		KeyPhrases:  extractKeyPhrases(content),
	}
}
