package processor

import (
	"strings"
	"testing"
)

func TestSegment_ShortTextSingleChunk(t *testing.T) {
	text := "a short note that fits in one chunk"
	chunks := Segment(text, 800, 150)
	if len(chunks) != 1 {
		t.Fatalf("Segment() = %d chunks; want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("Segment() = %q; want input unchanged", chunks[0])
	}
}

func TestSegment_EmptyInput(t *testing.T) {
	if chunks := Segment("   \n\t ", 800, 150); chunks != nil {
		t.Errorf("Segment(blank) = %v; want nil", chunks)
	}
}

func TestSegment_Deterministic(t *testing.T) {
	text := strings.Repeat("Sentence one goes here. Sentence two follows it. ", 50)
	first := Segment(text, 200, 40)
	second := Segment(text, 200, 40)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSegment_ChunkSizeBound(t *testing.T) {
	text := strings.Repeat("Some words fill this paragraph with text. ", 100)
	targetSize, overlap := 300, 60

	for i, chunk := range Segment(text, targetSize, overlap) {
		// a flushed chunk can hold the overlap seed plus one full piece
		if len(chunk) > targetSize+overlap {
			t.Errorf("chunk %d has length %d; want <= %d", i, len(chunk), targetSize+overlap)
		}
	}
}

func TestSegment_OverlapCarried(t *testing.T) {
	text := strings.Repeat("Every sentence here is distinct and fairly long on purpose. ", 40)
	overlap := 50
	chunks := Segment(text, 250, overlap)
	if len(chunks) < 2 {
		t.Fatalf("Segment() = %d chunks; want at least 2", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		tail := prev
		if len(tail) > overlap {
			tail = tail[len(tail)-overlap:]
		}
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("chunk %d does not start with the last %d chars of chunk %d", i, overlap, i-1)
		}
	}
}

func TestSegment_PrefersParagraphBoundary(t *testing.T) {
	para1 := "first paragraph stays whole"
	para2 := "second paragraph stays whole"
	chunks := Segment(para1+"\n\n"+para2, 40, 10)
	if len(chunks) < 2 {
		t.Fatalf("Segment() = %d chunks; want at least 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk %q does not end at a paragraph boundary", chunks[0])
	}
}

func TestSegment_HardCutWithoutSeparators(t *testing.T) {
	text := strings.Repeat("x", 100)
	chunks := Segment(text, 30, 0)
	if got := strings.Join(chunks, ""); got != text {
		t.Errorf("concatenated chunks differ from input: got %d chars, want %d", len(got), len(text))
	}
	for i, chunk := range chunks {
		if len(chunk) > 30 {
			t.Errorf("chunk %d has length %d; want <= 30", i, len(chunk))
		}
	}
}
