package commonModels

import "time"

// RawDocument is one logical unit of ingested content - a PDF page or a
// crawled web page. It exists only for the duration of one processing run;
// only the chunks derived from it are persisted.
type RawDocument struct {
	Text       string    `json:"text"`
	SourceId   string    `json:"source_id"`
	PageNumber int       `json:"page_number"`
	IngestedAt time.Time `json:"ingested_at"`
}

type ContentType string

const (
	ContentTypeHeader     ContentType = "header"
	ContentTypeList       ContentType = "list"
	ContentTypeStatistics ContentType = "statistics"
	ContentTypeTitle      ContentType = "title"
	ContentTypeSummary    ContentType = "summary"
	ContentTypeContent    ContentType = "content"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

type SourceMetadata struct {
	SourceId     string `json:"source_id"`
	CollectionId string `json:"collection_id"`
	PageNumber   int    `json:"page_num"`
	ChunkIndex   int    `json:"chunk_index"`
	TotalChunks  int    `json:"total_chunks"`
}

// DerivedMetadata is computed once per chunk by the classifier and stored in
// the vector payload alongside the content.
type DerivedMetadata struct {
	ContentType ContentType `json:"content_type"`
	Complexity  Complexity  `json:"complexity"`
	HasHeaders  bool        `json:"has_headers"`
	HasLists    bool        `json:"has_lists"`
	HasNumbers  bool        `json:"has_numbers"`
	KeyPhrases  []string    `json:"key_phrases"`
	ProcessedAt time.Time   `json:"processed_at"`
}

// Chunk is the unit of storage and retrieval. Logically immutable once the
// pipeline has produced it; deleted only as part of its owning collection.
type Chunk struct {
	Id        string          `json:"chunk_id"`
	Content   string          `json:"content"`
	Source    SourceMetadata  `json:"source"`
	Derived   DerivedMetadata `json:"derived"`
	Embedding []float32       `json:"-"`
}

// SearchCandidate is a retrieved chunk carrying the raw vector-similarity
// score and, after re-ranking, the derived scores. Ephemeral - lives for one
// query only.
type SearchCandidate struct {
	Content       string          `json:"content"`
	Source        SourceMetadata  `json:"source"`
	Derived       DerivedMetadata `json:"derived"`
	RawScore      float64         `json:"raw_score"`
	SemanticScore float64         `json:"semantic_score"`
	EnhancedScore float64         `json:"enhanced_score"`
}

type IntentType string

const (
	IntentGeneral       IntentType = "general"
	IntentProcedural    IntentType = "procedural"
	IntentDefinition    IntentType = "definition"
	IntentStatistical   IntentType = "statistical"
	IntentEnumerative   IntentType = "enumerative"
	IntentSummarization IntentType = "summarization"
)

// QueryIntent is the coarse classification of a query's expected answer
// shape. Computed fresh per query, never persisted.
type QueryIntent struct {
	Type              IntentType `json:"type"`
	RequiresSpecifics bool       `json:"requires_specifics"`
	NeedsExamples     bool       `json:"needs_examples"`
	NeedsSteps        bool       `json:"needs_steps"`
	NeedsNumbers      bool       `json:"needs_numbers"`
	NeedsSummary      bool       `json:"needs_summary"`
}

// SearchOptions tunes one SemanticSearch call. Zero values fall back to the
// configured defaults. QueryVector, when set, reuses an embedding the caller
// already computed (the chat path embeds once for the answer cache).
type SearchOptions struct {
	K                   int
	ContentTypeFilter   ContentType
	SimilarityThreshold float64
	QueryVector         []float32
}
