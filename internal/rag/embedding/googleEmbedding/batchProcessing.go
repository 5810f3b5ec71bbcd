package googleEmbedding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/docurag/DocuRAG/internal/config"
	"github.com/docurag/DocuRAG/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// BatchEmbedding embeds every text and returns one vector per input, in
// input order. Calls run concurrently but the semaphore caps in-flight
// requests at config.EmbeddingConcurrency so the provider's rate limit is
// not overwhelmed - the cap is backpressure, not an optimization.
func (c *Client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	log.Debug("Starting embedding batch", "size", len(texts))

	vectors := make([][]float32, len(texts))
	semaphore := make(chan struct{}, config.EmbeddingConcurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, text := range texts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(index int, content string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			vector, err := c.embedOne(ctx, content, log)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			vectors[index] = vector
		}(i, text)
	}
	wg.Wait()

	if firstErr != nil {
		log.Error("Embedding batch failed", "error", firstErr)
		return nil, firstErr
	}
	return vectors, nil
}

func (c *Client) embedOne(ctx context.Context, text string, log *logger_i.Logger) ([]float32, error) {
	res, err := c.doCall(ctx, getContent([]string{text}))
	if err != nil && doRetry(err, log) {
		log.Debug("Rate limit hit, retrying in 5 seconds")
		time.Sleep(5 * time.Second)
		res, err = c.doCall(ctx, getContent([]string{text}))
	}
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embeddings) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return res.Embeddings[0].Values, nil
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit!", "error", err)
			return true
		}
	}
	return false
}
