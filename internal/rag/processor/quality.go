package processor

import (
	"regexp"
	"strings"

	"github.com/docurag/DocuRAG/internal/config"
)

// Boilerplate that carries no retrievable meaning: bare page markers,
// copyright lines, legal footers.
var lowQualityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*$`),
	regexp.MustCompile(`^[^\w]*$`),
	regexp.MustCompile(`(?i)^(page|chapter|section)\s+\d+`),
	regexp.MustCompile(`^©\s*\d{4}`),
	regexp.MustCompile(`(?i)^all\s+rights\s+reserved`),
	regexp.MustCompile(`(?i)^confidential`),
}

// IsAcceptable reports whether a chunk is worth embedding and storing.
// Rejected chunks are dropped silently by the pipeline, they are not errors.
func IsAcceptable(content string) bool {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < config.MinChunkLength || len(trimmed) > config.MaxChunkLength {
		return false
	}
	for _, pattern := range lowQualityPatterns {
		if pattern.MatchString(trimmed) {
			return false
		}
	}
	return true
}
