package processor

import (
	"reflect"
	"strings"
	"testing"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected commonModels.ContentType
	}{
		{
			name:     "all caps header",
			content:  "INTRODUCTION\nThis section introduces the system.",
			expected: commonModels.ContentTypeHeader,
		},
		{
			name:     "numbered header",
			content:  "1. Overview\nthe system consists of several parts.",
			expected: commonModels.ContentTypeHeader,
		},
		{
			name:     "header wins over list",
			content:  "REQUIREMENTS\n- at least 4GB of memory\n- a running redis instance",
			expected: commonModels.ContentTypeHeader,
		},
		{
			name:     "markdown heading wins over summary",
			content:  "## Summary\n\nThis is a short summary of results.",
			expected: commonModels.ContentTypeHeader,
		},
		{
			name:     "bullet list",
			content:  "- first item in the list\n- second item in the list",
			expected: commonModels.ContentTypeList,
		},
		{
			name:     "numbered list",
			content:  "1. download the installer\n2. run it with defaults",
			expected: commonModels.ContentTypeList,
		},
		{
			name:     "statistics",
			content:  "revenue grew 15% while costs fell 3.5% over the same period.",
			expected: commonModels.ContentTypeStatistics,
		},
		{
			name:     "short plain text is summary",
			content:  "a short plain note about nothing in particular.",
			expected: commonModels.ContentTypeSummary,
		},
		{
			name:     "long plain text is content",
			content:  strings.Repeat("plain prose without structure keeps flowing here and on. ", 4),
			expected: commonModels.ContentTypeContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.content); got != tt.expected {
				t.Errorf("detectContentType() = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestAssessComplexity(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected commonModels.Complexity
	}{
		{
			name:     "short simple sentence",
			content:  "the cat sat on the mat.",
			expected: commonModels.ComplexityLow,
		},
		{
			name:     "long sentence raises average",
			content:  strings.Repeat("word ", 40) + ".",
			expected: commonModels.ComplexityMedium,
		},
		{
			name:     "very long text",
			content:  strings.Repeat("short words here. ", 80),
			expected: commonModels.ComplexityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assessComplexity(tt.content); got != tt.expected {
				t.Errorf("assessComplexity() = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestExtractKeyPhrases(t *testing.T) {
	content := "alpha beta alpha gamma beta alpha the it of"
	expected := []string{"alpha", "beta", "gamma"}

	got := extractKeyPhrases(content)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("extractKeyPhrases() = %v; want %v", got, expected)
	}
}

func TestExtractKeyPhrases_TiesKeepFirstOccurrence(t *testing.T) {
	content := "zeta omega zeta omega kappa"
	expected := []string{"zeta", "omega", "kappa"}

	got := extractKeyPhrases(content)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("extractKeyPhrases() = %v; want %v", got, expected)
	}
}

func TestExtractKeyPhrases_Limit(t *testing.T) {
	content := "alpha beta gamma delta epsilon zeta omega"
	if got := extractKeyPhrases(content); len(got) != 5 {
		t.Errorf("extractKeyPhrases() returned %d phrases; want 5", len(got))
	}
}

func TestClassify_Pure(t *testing.T) {
	content := "REQUIREMENTS\n- at least 4GB of memory\n- 2 free ports for the services"

	first := Classify(content)
	second := Classify(content)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	if !first.HasHeaders || !first.HasLists || !first.HasNumbers {
		t.Errorf("Classify() flags = %+v; want headers, lists and numbers all detected", first)
	}
	if first.ContentType != commonModels.ContentTypeHeader {
		t.Errorf("Classify() content type = %v; want %v", first.ContentType, commonModels.ContentTypeHeader)
	}
}

func TestClassify_MarkdownHeading(t *testing.T) {
	meta := Classify("## Summary\n\nThis is a short summary of results.")

	if meta.ContentType != commonModels.ContentTypeHeader {
		t.Errorf("Classify() content type = %v; want %v", meta.ContentType, commonModels.ContentTypeHeader)
	}
	if !meta.HasHeaders {
		t.Error("Classify() HasHeaders = false; want true for a markdown heading")
	}
}
