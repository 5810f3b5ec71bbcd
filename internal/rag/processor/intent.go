package processor

import (
	"strings"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

// AnalyzeIntent classifies a query's expected answer shape. The rules are an
// ordered cascade and the first match wins: "List the steps to deploy" is
// procedural, not enumerative, because the steps rule fires before the list
// rule. Do not reorder.
func AnalyzeIntent(query string) commonModels.QueryIntent {
	queryLower := strings.ToLower(query)
	intent := commonModels.QueryIntent{Type: commonModels.IntentGeneral}

	switch {
	case strings.Contains(queryLower, "how") ||
		strings.Contains(queryLower, "steps") ||
		strings.Contains(queryLower, "process"):
		intent.Type = commonModels.IntentProcedural
		intent.NeedsSteps = true

	case strings.Contains(queryLower, "what") &&
		(strings.Contains(queryLower, "is") || strings.Contains(queryLower, "are")):
		intent.Type = commonModels.IntentDefinition
		intent.RequiresSpecifics = true

	case digitPattern.MatchString(query) ||
		strings.Contains(queryLower, "percentage") ||
		strings.Contains(queryLower, "number"):
		intent.Type = commonModels.IntentStatistical
		intent.NeedsNumbers = true

	case strings.Contains(queryLower, "list") ||
		strings.Contains(queryLower, "examples"):
		intent.Type = commonModels.IntentEnumerative
		intent.NeedsExamples = true

	case strings.Contains(queryLower, "summary") ||
		strings.Contains(queryLower, "overview"):
		intent.Type = commonModels.IntentSummarization
		intent.NeedsSummary = true
	}

	return intent
}

// IntentFilter maps an intent to a content-type pre-filter applied at
// retrieval. Empty string means no pre-filter.
func IntentFilter(intent commonModels.QueryIntent) commonModels.ContentType {
	switch {
	case intent.NeedsSteps:
		return commonModels.ContentTypeList
	case intent.NeedsNumbers:
		return commonModels.ContentTypeStatistics
	case intent.NeedsSummary:
		return commonModels.ContentTypeSummary
	default:
		return ""
	}
}
