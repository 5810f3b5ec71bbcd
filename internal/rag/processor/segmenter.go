package processor

import "strings"

// Separators ordered from "best" to "worst" for semantic meaning.
// The empty string is the last-resort hard cut at character level.
var separators = []string{
	"\n\n## ",  // headers
	"\n\n### ", // sub-headers
	"\n\n",     // paragraphs
	"\n",       // lines
	". ",       // sentences
	"! ",
	"? ",
	"; ",
	": ",
	", ",
	" ", // words
	"",  // characters
}

// Segment splits text into chunks of roughly targetSize characters, cutting
// at the most meaningful boundary available. Adjacent chunks share overlap
// characters so context survives an arbitrary cut point. Stateless: the same
// input always yields the same output.
func Segment(text string, targetSize int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if targetSize <= 0 {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= targetSize {
		overlap = targetSize / 2
	}

	pieces := splitBySeparators(text, targetSize, separators)
	return packWithOverlap(pieces, targetSize, overlap)
}

// splitBySeparators cuts text into pieces no longer than targetSize. It
// splits on the first separator present in the text, then recurses into any
// piece still over the limit using the remaining separators. SplitAfter
// keeps the separator attached so the concatenation of all pieces is the
// original text unchanged.
func splitBySeparators(text string, targetSize int, seps []string) []string {
	if len(text) <= targetSize {
		return []string{text}
	}

	for i, sep := range seps {
		if sep == "" {
			return hardCut(text, targetSize)
		}
		if !strings.Contains(text, sep) {
			continue
		}

		var pieces []string
		for _, part := range strings.SplitAfter(text, sep) {
			if part == "" {
				continue
			}
			if len(part) > targetSize {
				pieces = append(pieces, splitBySeparators(part, targetSize, seps[i+1:])...)
			} else {
				pieces = append(pieces, part)
			}
		}
		return pieces
	}

	return hardCut(text, targetSize)
}

func hardCut(text string, targetSize int) []string {
	var pieces []string
	for len(text) > targetSize {
		pieces = append(pieces, text[:targetSize])
		text = text[targetSize:]
	}
	if text != "" {
		pieces = append(pieces, text)
	}
	return pieces
}

// packWithOverlap greedily joins pieces up to targetSize. When a chunk is
// flushed, its last overlap characters seed the next chunk. carried tracks
// how much of the builder is duplicated context so we never emit a chunk
// that is overlap alone.
func packWithOverlap(pieces []string, targetSize int, overlap int) []string {
	var chunks []string
	var current strings.Builder
	carried := 0

	for _, piece := range pieces {
		if current.Len() > carried && current.Len()+len(piece) > targetSize {
			chunk := current.String()
			chunks = append(chunks, chunk)

			tail := chunk
			if len(tail) > overlap {
				tail = tail[len(tail)-overlap:]
			}
			current.Reset()
			current.WriteString(tail)
			carried = len(tail)
		}
		current.WriteString(piece)
	}

	if current.Len() > carried {
		chunks = append(chunks, current.String())
	}
	return chunks
}
