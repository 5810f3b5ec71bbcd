package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/pkg/logger_i"
)

type docType string

const (
	pdfDoc         docType = "PDF"
	officeDoc      docType = "DOCX"
	unsupportedDoc docType = "ERROR"
)

func getDocType(docPath string) docType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return pdfDoc
	case ".docx", ".txt", ".rtf", ".odt":
		return officeDoc
	default:
		return unsupportedDoc
	}
}

func extractText(path string, contentType docType, log *logger_i.Logger) ([]commonModels.RawDocument, error) {
	switch contentType {
	case pdfDoc:
		return extractPDF(path, log)
	case officeDoc:
		return extractOfficeDoc(path, log)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
