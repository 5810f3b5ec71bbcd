package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/docurag/DocuRAG/internal/domain/commonModels"
	"github.com/docurag/DocuRAG/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

func extractPDF(path string, log *logger_i.Logger) ([]commonModels.RawDocument, error) {
	f, err := pdf.Open(path)
	if err != nil {
		log.Error("failed opening of pdf file")
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	ingestedAt := time.Now().UTC()
	var docs []commonModels.RawDocument
	numPages := f.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)

	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page, log)
		if err != nil {
			// a single broken page should not sink the whole document
			log.Error("Error parsing page content", "page", i, "error", err)
			continue
		}

		docs = append(docs, commonModels.RawDocument{
			Text:       content,
			SourceId:   path,
			PageNumber: i,
			IngestedAt: ingestedAt,
		})
	}
	return docs, nil
}

// extractOfficeDoc reads a .odt, .docx, .rtf or plaintext file. These
// formats have no page boundaries we can recover, so the whole content
// becomes one raw document.
func extractOfficeDoc(path string, log *logger_i.Logger) ([]commonModels.RawDocument, error) {
	text, err := cat.File(path)
	if err != nil {
		log.Error("Error extracting content from doc")
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	return []commonModels.RawDocument{
		{
			Text:       text,
			SourceId:   path,
			PageNumber: 1,
			IngestedAt: time.Now().UTC(),
		},
	}, nil
}

// protectExtract guards against the pdf library hanging on malformed pages.
func protectExtract(page pdf.Page, log *logger_i.Logger) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		log.Error("pageExtract", "timeout", true)
		return "", errors.New("timeout")
	}
}
