package processor

import (
	"testing"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected commonModels.IntentType
	}{
		{"how question", "How do I deploy the backend?", commonModels.IntentProcedural},
		{"steps beats list", "List the steps to deploy", commonModels.IntentProcedural},
		{"process keyword", "Describe the approval process", commonModels.IntentProcedural},
		{"definition", "What is machine learning?", commonModels.IntentDefinition},
		{"plural definition", "What are embeddings?", commonModels.IntentDefinition},
		{"digits in query", "Compare Q3 and Q4 revenue", commonModels.IntentStatistical},
		{"percentage keyword", "What percentage of users churned?", commonModels.IntentStatistical},
		{"enumeration", "Give me examples of good prompts", commonModels.IntentEnumerative},
		{"summary request", "Provide an overview of the report", commonModels.IntentSummarization},
		{"fallback", "Tell me about the quarterly report", commonModels.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeIntent(tt.query)
			if got.Type != tt.expected {
				t.Errorf("AnalyzeIntent(%q).Type = %v; want %v", tt.query, got.Type, tt.expected)
			}
		})
	}
}

func TestAnalyzeIntent_Flags(t *testing.T) {
	if got := AnalyzeIntent("How do I deploy?"); !got.NeedsSteps {
		t.Errorf("procedural intent should set NeedsSteps, got %+v", got)
	}
	if got := AnalyzeIntent("What is a vector store?"); !got.RequiresSpecifics {
		t.Errorf("definition intent should set RequiresSpecifics, got %+v", got)
	}
	if got := AnalyzeIntent("What percentage failed?"); !got.NeedsNumbers {
		t.Errorf("statistical intent should set NeedsNumbers, got %+v", got)
	}
}

func TestIntentFilter(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected commonModels.ContentType
	}{
		{"procedural prefers lists", "How do I deploy?", commonModels.ContentTypeList},
		{"statistical prefers statistics", "What percentage failed?", commonModels.ContentTypeStatistics},
		{"summarization prefers summaries", "Give me an overview", commonModels.ContentTypeSummary},
		{"definition has no prefilter", "What is a vector store?", ""},
		{"general has no prefilter", "Tell me about the report", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntentFilter(AnalyzeIntent(tt.query)); got != tt.expected {
				t.Errorf("IntentFilter(%q) = %v; want %v", tt.query, got, tt.expected)
			}
		})
	}
}
