package ingest

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/internal/domain/jobModel"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected docType
	}{
		{"test.pdf", pdfDoc},
		{"DOC.DOCX", officeDoc},
		{"notes.txt", officeDoc},
		{"letter.rtf", officeDoc},
		{"writing.odt", officeDoc},
		{"image.png", unsupportedDoc},
		{"noextension", unsupportedDoc},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestExtractText_UnsupportedType(t *testing.T) {
	if _, err := extractText("image.png", unsupportedDoc, logger_i.NewLogger("test")); err == nil {
		t.Error("extractText() on an unsupported type should fail")
	}
}

func TestExtractOfficeDoc_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	content := "plain text content that the extractor should hand back as one page"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	docs, err := extractOfficeDoc(path, logger_i.NewLogger("test"))
	if err != nil {
		t.Fatalf("extractOfficeDoc() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("extractOfficeDoc() = %d documents; want 1", len(docs))
	}
	if docs[0].PageNumber != 1 {
		t.Errorf("PageNumber = %d; want 1", docs[0].PageNumber)
	}
	if docs[0].Text != content {
		t.Errorf("Text = %q; want the file content", docs[0].Text)
	}
}

func TestProcessDocumentIngestion_UnsupportedType(t *testing.T) {
	job := jobModel.Job{
		Id: "ingest-1",
		JobPayload: jobModel.JobPayload{
			IngestFileName: "image.png",
			IngestURL:      "/tmp/image.png",
			CollectionId:   "user1",
		},
	}

	// the type check fails before the processor is touched
	result := ProcessDocumentIngestion(context.Background(), job, nil)

	if result.Status != jobModel.JobStatusError {
		t.Errorf("Status = %v; want %v", result.Status, jobModel.JobStatusError)
	}
	if result.Error.Retry {
		t.Error("an unsupported document type is not retryable")
	}
	if result.Error.FailedBatch != -1 {
		t.Errorf("FailedBatch = %d; want -1", result.Error.FailedBatch)
	}
}

func TestProcessDocumentIngestion_LogsCarryTraceId(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-ingest-42")
	job := jobModel.Job{
		Id: "ingest-2",
		JobPayload: jobModel.JobPayload{
			IngestFileName: "image.png",
			IngestURL:      "/tmp/image.png",
			CollectionId:   "user1",
		},
	}

	ProcessDocumentIngestion(ctx, job, nil)

	if !strings.Contains(buf.String(), "trace-ingest-42") {
		t.Errorf("ingest log output misses the trace id:\n%s", buf.String())
	}
}
